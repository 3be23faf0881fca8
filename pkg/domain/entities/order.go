package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderType is the per-order classification rolled up from the line-level
// Updated stock statuses.
type OrderType int

const (
	OrderUnclassified OrderType = iota
	OrderCompleted
	OrderDispo
	OrderPotentialDispo
	OrderNoDispo
	OrderBlock
	OrderOthers
)

// String method for OrderType enum
func (t OrderType) String() string {
	switch t {
	case OrderCompleted:
		return "Completed"
	case OrderDispo:
		return "Dispo"
	case OrderPotentialDispo:
		return "Potentiellement dispo"
	case OrderNoDispo:
		return "No dispo"
	case OrderBlock:
		return "Block"
	case OrderOthers:
		return "Others"
	default:
		return "Unclassified"
	}
}

// OrderClassification is the per-order aggregate: classification, total open
// value, and the latest delivery date across the order's lines.
type OrderClassification struct {
	OrderID          OrderID
	Type             OrderType
	TotalValue       decimal.Decimal
	CreatedOn        time.Time
	LastDeliveryDate time.Time
	LineCount        int
}
