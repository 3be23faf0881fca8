// Package testing provides shared fixture builders for engine and pipeline
// tests.
package testing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ygroup/backlog/pkg/application/services/pipeline"
	"github.com/ygroup/backlog/pkg/domain/entities"
)

// Date parses a YYYY-MM-DD fixture date. Panics on malformed input so a bad
// fixture fails loudly.
func Date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// Line builds an unblocked BUY line with matching sales and base units. The
// open quantity doubles as the sales quantity; availability fields start
// unresolved.
func Line(order, material, created string, qty float64) entities.BacklogLine {
	return entities.BacklogLine{
		OrderID:    entities.OrderID(order),
		CreatedOn:  Date(created),
		Material:   entities.MaterialID(material),
		Controller: "M10",
		VendorPO:   entities.VendorPONone,
		Type:       entities.TypeBuy,
		SalesUOM:   "PC",
		BaseUOM:    "PC",
		OpenQty:    qty,
		QteSales:   qty,
		Statut:     entities.LineNoBlock,
	}
}

// LineWithStock builds a Line with the given on-hand stock.
func LineWithStock(order, material, created string, qty, onHand float64) entities.BacklogLine {
	line := Line(order, material, created, qty)
	line.OnHandQty = onHand
	return line
}

// SecurocLine builds an unblocked SECUROC line.
func SecurocLine(order, material, created string, qty float64) entities.BacklogLine {
	line := Line(order, material, created, qty)
	line.Controller = "M60"
	line.Type = entities.TypeSecuroc
	return line
}

// KitLine builds an unblocked kit line.
func KitLine(order, material, created string) entities.BacklogLine {
	line := Line(order, material, created, 1)
	line.Controller = entities.ControllerKit
	return line
}

// WithValue sets the line's open value from a float fixture amount.
func WithValue(line entities.BacklogLine, value float64) entities.BacklogLine {
	line.OpenValue = decimal.NewFromFloat(value)
	return line
}

// Delivery builds a purchasing-unit delivery record.
func Delivery(po, material, date string, qty float64) entities.DeliveryRecord {
	return entities.DeliveryRecord{
		PurchasingDoc: po,
		Material:      entities.MaterialID(material),
		DeliveryDate:  Date(date),
		BaseUOM:       "PC",
		QtyPurchasing: qty,
	}
}

// EmptyKits builds an empty kit bill of materials.
func EmptyKits() *entities.KitBOM {
	return entities.NewKitBOM(nil)
}

// EmptyRestricted builds an empty restricted-component map.
func EmptyRestricted() *entities.RestrictedComponentMap {
	return entities.NewRestrictedComponentMap(nil)
}

// BuildSnapshotInputs builds a small but complete snapshot covering stock
// coverage, shortage with a matching delivery, an order-wide block, and a
// completed line. Used by pipeline and output tests.
func BuildSnapshotInputs() pipeline.Inputs {
	return pipeline.Inputs{
		Backlog: []entities.BacklogRow{
			{
				CreatedOn:   Date("2024-01-10"),
				OrderID:     "100001",
				SalesUOM:    "PC",
				BaseUOM:     "PC",
				HeaderBlock: entities.BlockNone,
				LineBlock:   entities.BlockNone,
				Material:    "Y1000",
				Controller:  "M10",
				VendorPO:    entities.VendorPONone,
				OpenValue:   decimal.NewFromInt(500),
				OpenQty:     5,
				OnHandQty:   10,
			},
			{
				CreatedOn:   Date("2024-01-11"),
				OrderID:     "100002",
				SalesUOM:    "PC",
				BaseUOM:     "PC",
				HeaderBlock: entities.BlockNone,
				LineBlock:   entities.BlockNone,
				Material:    "Y1000",
				Controller:  "M10",
				VendorPO:    entities.VendorPONone,
				OpenValue:   decimal.NewFromInt(800),
				OpenQty:     8,
				OnHandQty:   10,
			},
			{
				CreatedOn:   Date("2024-01-12"),
				OrderID:     "100003",
				SalesUOM:    "PC",
				BaseUOM:     "PC",
				HeaderBlock: entities.BlockNone,
				LineBlock:   "Credit Block",
				Material:    "Y2000",
				Controller:  "M10",
				VendorPO:    entities.VendorPONone,
				OpenValue:   decimal.NewFromInt(300),
				OpenQty:     3,
			},
			{
				CreatedOn:    Date("2024-01-13"),
				OrderID:      "100004",
				SalesUOM:     "PC",
				BaseUOM:      "PC",
				HeaderBlock:  entities.BlockNone,
				LineBlock:    entities.BlockNone,
				Material:     "Y3000",
				Controller:   "M10",
				VendorPO:     entities.VendorPONone,
				OpenValue:    decimal.NewFromInt(200),
				OpenQty:      2,
				DeliveredQty: 2,
			},
		},
		Controllers: []entities.ControllerTypeRow{
			{Controller: "M10", Type: entities.TypeBuy},
			{Controller: "M60", Type: entities.TypeSecuroc},
		},
		Schedule: []entities.ScheduleLineRow{
			{PurchasingDoc: "PO500", Material: "Y1000", DeliveryDate: Date("2024-02-01"), SchOpenQty: 20},
		},
	}
}
