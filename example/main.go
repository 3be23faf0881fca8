// Programmatic use of the availability pipeline, without the CLI or file
// loaders.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ygroup/backlog/pkg/application/services/pipeline"
	"github.com/ygroup/backlog/pkg/domain/entities"
)

func main() {
	day := func(d int) time.Time {
		return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
	}

	inputs := pipeline.Inputs{
		Backlog: []entities.BacklogRow{
			{
				CreatedOn:   day(10),
				OrderID:     "100001",
				SalesUOM:    "PC",
				BaseUOM:     "PC",
				HeaderBlock: entities.BlockNone,
				LineBlock:   entities.BlockNone,
				Material:    "Y4000001",
				Controller:  "M10",
				VendorPO:    entities.VendorPONone,
				OpenValue:   decimal.NewFromInt(1200),
				OpenQty:     6,
				OnHandQty:   10,
			},
			{
				CreatedOn:   day(12),
				OrderID:     "100002",
				SalesUOM:    "PC",
				BaseUOM:     "PC",
				HeaderBlock: entities.BlockNone,
				LineBlock:   entities.BlockNone,
				Material:    "Y4000001",
				Controller:  "M10",
				VendorPO:    entities.VendorPONone,
				OpenValue:   decimal.NewFromInt(1600),
				OpenQty:     8,
				OnHandQty:   10,
			},
		},
		Controllers: []entities.ControllerTypeRow{
			{Controller: "M10", Type: entities.TypeBuy},
		},
		Schedule: []entities.ScheduleLineRow{
			{PurchasingDoc: "4500000001", Material: "Y4000001", DeliveryDate: day(25), SchOpenQty: 20},
		},
	}

	result, err := pipeline.NewRunner(nil).Run(context.Background(), inputs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Run %s resolved %d lines into %d orders\n",
		result.RunID, len(result.Lines), len(result.Orders))
	for _, o := range result.Orders {
		date := "-"
		if !o.LastDeliveryDate.IsZero() {
			date = o.LastDeliveryDate.Format("2006-01-02")
		}
		fmt.Printf("  %s  %-22s total %s  available %s\n",
			o.OrderID, o.Type, o.TotalValue.StringFixed(2), date)
	}
}
