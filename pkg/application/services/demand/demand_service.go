// Package demand turns raw backlog rows into BacklogLines: it derives the
// sales-normalized quantity, merges the material-type classification, and
// assigns the line-level business status.
package demand

import (
	"strings"

	"github.com/ygroup/backlog/pkg/domain/entities"
)

// Materials excluded from the backlog before any resolution. Y4963053 is a
// phantom article kept in the source system for invoicing only.
const excludedMaterial = entities.MaterialID("Y4963053")

// Per-material type overrides for controller M70. These take precedence over
// the general controller lookup.
var typeOverrides = map[entities.MaterialID]entities.MaterialType{
	"Y4950101": entities.TypeSecuroc,
	"Y4950100": entities.TypeBuy,
}

// Prepare derives QteSales, Type and Statut for every backlog row and
// returns the resulting lines in input order. The MRP controller table is
// required; a material absent from the sales-UOM table falls back to a
// conversion counter of 1.
func Prepare(
	rows []entities.BacklogRow,
	counters []entities.UOMCounterRow,
	types []entities.ControllerTypeRow,
) ([]entities.BacklogLine, error) {
	if len(types) == 0 {
		return nil, entities.NewValidationError("mrp", "MRP Controller", "Type")
	}

	counterByMaterial := make(map[entities.MaterialID]float64, len(counters))
	for _, c := range counters {
		counterByMaterial[c.Material] = c.Counter
	}

	typeByController := make(map[string]entities.MaterialType, len(types))
	for _, t := range types {
		typeByController[t.Controller] = t.Type
	}

	lines := make([]entities.BacklogLine, 0, len(rows))
	for _, row := range rows {
		if row.Material == excludedMaterial {
			continue
		}

		line := entities.BacklogLine{
			OrderID:           row.OrderID,
			CreatedOn:         row.CreatedOn,
			RequestedDelivery: row.RequestedDelivery,
			Material:          row.Material,
			Controller:        row.Controller,
			VendorPO:          row.VendorPO,
			DropShip:          row.DropShip,
			SalesUOM:          normalizeUnit(row.SalesUOM),
			BaseUOM:           normalizeUnit(row.BaseUOM),
			OpenValue:         row.OpenValue,
			OpenQty:           row.OpenQty,
			OnHandQty:         row.OnHandQty,
			DeliveredQty:      row.DeliveredQty,
		}

		line.Type = materialType(line.Controller, line.Material, typeByController)
		line.QteSales = salesQuantity(&line, counterByMaterial)
		line.Statut = lineStatus(&row)

		lines = append(lines, line)
	}

	return lines, nil
}

// normalizeUnit fixes the legacy "pak" spelling of the pack unit.
func normalizeUnit(unit string) string {
	if unit == "pak" {
		return "pac"
	}
	return unit
}

func materialType(
	controller string,
	material entities.MaterialID,
	lookup map[string]entities.MaterialType,
) entities.MaterialType {
	if controller == entities.ControllerSpecialCase {
		if override, ok := typeOverrides[material]; ok {
			return override
		}
	}
	return lookup[controller]
}

// salesQuantity converts the open order quantity into sales units. "EA" and
// "PC" are synonym units, so no conversion applies between them or when the
// units already match; any other pair multiplies by the material's counter.
func salesQuantity(line *entities.BacklogLine, counters map[entities.MaterialID]float64) float64 {
	sales := strings.TrimSpace(line.SalesUOM)
	base := strings.TrimSpace(line.BaseUOM)

	if sales == base {
		return line.OpenQty
	}
	if (sales == "EA" && base == "PC") || (sales == "PC" && base == "EA") {
		return line.OpenQty
	}

	counter, ok := counters[line.Material]
	if !ok {
		counter = 1
	}
	return line.OpenQty * counter
}

// lineStatus applies the three mutually exclusive status rules: fully
// delivered, unblocked, or blocked.
func lineStatus(row *entities.BacklogRow) entities.LineStatus {
	if row.OpenQty == row.DeliveredQty {
		return entities.LineCompleted
	}
	if row.HeaderBlock == entities.BlockNone && row.LineBlock == entities.BlockNone {
		return entities.LineNoBlock
	}
	return entities.LineBlock
}
