// Package supply converts open purchase-order schedule lines into the
// purchasing-unit-normalized delivery stream the resolvers consume.
package supply

import (
	"github.com/ygroup/backlog/pkg/domain/entities"
)

// defaultBaseUOM is assumed for materials absent from the purchase-UOM table.
const defaultBaseUOM = "PC"

// Prepare normalizes every schedule line to purchasing units:
// QtyPurchasing = PUOM x scheduled open quantity, with PUOM defaulting to 1
// for materials not in the purchase-UOM table. Output preserves input order.
func Prepare(
	schedule []entities.ScheduleLineRow,
	purchaseUOM []entities.PurchaseUOMRow,
) []entities.DeliveryRecord {
	type conversion struct {
		puom    float64
		baseUOM string
	}

	convByMaterial := make(map[entities.MaterialID]conversion, len(purchaseUOM))
	for _, row := range purchaseUOM {
		conv := conversion{puom: row.PUOM, baseUOM: row.BaseUOM}
		if conv.puom == 0 {
			conv.puom = 1
		}
		if conv.baseUOM == "" {
			conv.baseUOM = defaultBaseUOM
		}
		convByMaterial[row.Material] = conv
	}

	deliveries := make([]entities.DeliveryRecord, 0, len(schedule))
	for _, row := range schedule {
		conv, ok := convByMaterial[row.Material]
		if !ok {
			conv = conversion{puom: 1, baseUOM: defaultBaseUOM}
		}

		deliveries = append(deliveries, entities.DeliveryRecord{
			PurchasingDoc: row.PurchasingDoc,
			Material:      row.Material,
			DeliveryDate:  row.DeliveryDate,
			BaseUOM:       conv.baseUOM,
			QtyPurchasing: conv.puom * row.SchOpenQty,
		})
	}

	return deliveries
}
