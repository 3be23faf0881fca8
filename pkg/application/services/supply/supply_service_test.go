package supply

import (
	"testing"
	"time"

	"github.com/ygroup/backlog/pkg/domain/entities"
)

func scheduleLine(po, material string, qty float64) entities.ScheduleLineRow {
	return entities.ScheduleLineRow{
		PurchasingDoc: po,
		Material:      entities.MaterialID(material),
		DeliveryDate:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		SchOpenQty:    qty,
	}
}

func TestPrepareConvertsToPurchasingUnits(t *testing.T) {
	tests := []struct {
		name        string
		puom        float64
		baseUOM     string
		schOpenQty  float64
		wantQty     float64
		wantBaseUOM string
	}{
		{"multiplies by PUOM", 12, "PC", 10, 120, "PC"},
		{"zero PUOM defaults to 1", 0, "PC", 10, 10, "PC"},
		{"empty base unit defaults to PC", 12, "", 10, 120, "PC"},
		{"keeps declared base unit", 6, "pac", 10, 60, "pac"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uom := []entities.PurchaseUOMRow{
				{Material: "Y1000", PUOM: tt.puom, BaseUOM: tt.baseUOM},
			}

			deliveries := Prepare([]entities.ScheduleLineRow{scheduleLine("PO1", "Y1000", tt.schOpenQty)}, uom)
			if len(deliveries) != 1 {
				t.Fatalf("expected 1 delivery, got %d", len(deliveries))
			}
			if deliveries[0].QtyPurchasing != tt.wantQty {
				t.Errorf("expected quantity %v, got %v", tt.wantQty, deliveries[0].QtyPurchasing)
			}
			if deliveries[0].BaseUOM != tt.wantBaseUOM {
				t.Errorf("expected base unit %s, got %s", tt.wantBaseUOM, deliveries[0].BaseUOM)
			}
		})
	}
}

func TestPrepareUnknownMaterialDefaults(t *testing.T) {
	deliveries := Prepare([]entities.ScheduleLineRow{scheduleLine("PO1", "Y9999", 7)}, nil)
	if len(deliveries) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(deliveries))
	}
	if deliveries[0].QtyPurchasing != 7 {
		t.Errorf("expected quantity 7, got %v", deliveries[0].QtyPurchasing)
	}
	if deliveries[0].BaseUOM != "PC" {
		t.Errorf("expected base unit PC, got %s", deliveries[0].BaseUOM)
	}
}

func TestPreparePreservesScheduleOrder(t *testing.T) {
	schedule := []entities.ScheduleLineRow{
		scheduleLine("PO3", "Y1000", 1),
		scheduleLine("PO1", "Y2000", 2),
		scheduleLine("PO2", "Y1000", 3),
	}

	deliveries := Prepare(schedule, nil)
	if len(deliveries) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(deliveries))
	}
	want := []string{"PO3", "PO1", "PO2"}
	for i, po := range want {
		if deliveries[i].PurchasingDoc != po {
			t.Errorf("delivery %d: expected %s, got %s", i, po, deliveries[i].PurchasingDoc)
		}
	}
}
