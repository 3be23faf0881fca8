package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialID identifies a material (the "Y Material" column).
type MaterialID string

// OrderID identifies a sales order (the "Sales Document" column).
// An order usually has many backlog lines.
type OrderID string

// MaterialType classifies a material from the MRP-controller lookup.
type MaterialType string

const (
	TypeBuy     MaterialType = "BUY"
	TypeSecuroc MaterialType = "SECUROC"
)

// MRP controller codes with special handling in the resolvers.
const (
	ControllerKit         = "M80" // kit materials, resolved through their components
	ControllerNoForward   = "M50" // never forward-resolved
	ControllerNoForward2  = "M32" // never forward-resolved
	ControllerSpecialCase = "M70" // carries the two per-material type overrides
)

// VendorPONone is the sentinel for a line without a vendor purchase order.
const VendorPONone = "-"

// LineStatus is the business status derived from the delivery-complete and
// delivery-block flags. Exactly one applies per line.
type LineStatus int

const (
	LineNoBlock LineStatus = iota
	LineCompleted
	LineBlock
)

// String method for LineStatus enum
func (s LineStatus) String() string {
	switch s {
	case LineNoBlock:
		return "No Block"
	case LineCompleted:
		return "Completed"
	case LineBlock:
		return "Block"
	default:
		return "Unknown"
	}
}

// StockStatus is the availability classification assigned by the resolver
// passes. StockUnresolved is the intermediate sentinel; no line keeps it once
// a pass completes.
type StockStatus int

const (
	StockUnresolved StockStatus = iota
	StockCompleted
	StockBlock
	StockDispo
	StockPotentialDispo
	StockNoDispo
)

// String method for StockStatus enum
func (s StockStatus) String() string {
	switch s {
	case StockUnresolved:
		return "Unresolved"
	case StockCompleted:
		return "Completed"
	case StockBlock:
		return "Block"
	case StockDispo:
		return "Dispo"
	case StockPotentialDispo:
		return "Potentiellement dispo"
	case StockNoDispo:
		return "No dispo"
	default:
		return "Unknown"
	}
}

// BacklogLine is one demand unit: a single (order, material) row of the
// backlog. The preparation step populates the input and derived fields; the
// two resolver passes mutate the computed fields in place, addressing lines
// by index in their containing slice.
type BacklogLine struct {
	OrderID           OrderID
	CreatedOn         time.Time
	RequestedDelivery time.Time
	Material          MaterialID
	Controller        string
	VendorPO          string
	Type              MaterialType
	DropShip          string
	SalesUOM          string
	BaseUOM           string
	OpenValue         decimal.Decimal
	OpenQty           float64
	OnHandQty         float64
	DeliveredQty      float64

	// Derived by demand preparation.
	QteSales float64
	Statut   LineStatus

	// Computed by the initial availability pass.
	StockStatus     StockStatus
	RemainingQty    float64
	SortOrder       int
	TotalOrderValue decimal.Decimal

	// Computed by the forward delivery pass.
	UpdatedStockStatus  StockStatus
	UpdatedRemainingQty float64
	LastDeliveryDate    time.Time

	// Assigned by the order aggregator.
	OrderType OrderType
}

// HasVendorPO reports whether the line references a vendor purchase order.
func (l *BacklogLine) HasVendorPO() bool {
	return l.VendorPO != "" && l.VendorPO != VendorPONone
}
