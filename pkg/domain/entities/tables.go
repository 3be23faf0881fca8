package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// BlockNone is the delivery-block flag value for an unblocked line.
const BlockNone = "No Block"

// BacklogRow is one raw row of the canonical backlog table, as produced by
// the input normalizer. Demand preparation turns these into BacklogLines.
type BacklogRow struct {
	CreatedOn         time.Time
	OrderID           OrderID
	RequestedDelivery time.Time
	SalesUOM          string
	BaseUOM           string
	HeaderBlock       string
	LineBlock         string
	Material          MaterialID
	Controller        string
	VendorPO          string
	OpenValue         decimal.Decimal
	OpenQty           float64
	OnHandQty         float64
	DeliveredQty      float64
	DropShip          string
}

// UOMCounterRow maps a material to its sales-unit conversion counter.
type UOMCounterRow struct {
	Material MaterialID
	Counter  float64
}

// ControllerTypeRow maps an MRP controller code to a material type.
type ControllerTypeRow struct {
	Controller string
	Type       MaterialType
}

// ScheduleLineRow is one raw open purchase-order schedule line, before
// purchasing-unit normalization.
type ScheduleLineRow struct {
	PurchasingDoc string
	Material      MaterialID
	DeliveryDate  time.Time
	OrderUnit     string
	SchOpenQty    float64
}

// PurchaseUOMRow maps a material to its purchasing-unit conversion factor.
type PurchaseUOMRow struct {
	Material  MaterialID
	OrderUnit string
	PUOM      float64
	BaseUOM   string
}
