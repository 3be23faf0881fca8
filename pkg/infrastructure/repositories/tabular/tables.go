// Package tabular maps raw table records (a header row plus data rows, as
// read from CSV files or workbook sheets) onto the canonical input row
// types. Headers are matched by name, so column order and extra columns do
// not matter; a missing required column is a ValidationError naming the
// table and the column.
package tabular

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ygroup/backlog/pkg/domain/entities"
)

// Dates in the snapshot exports. Unparseable values coerce to the zero time
// rather than failing the load; a missing date is a business fact, not an
// input error.
var dateLayouts = []string{
	"1/2/2006",
	"1/2/2006 15:04:05",
	"2006-01-02",
}

// Backlog maps raw records onto backlog rows.
func Backlog(records [][]string) ([]entities.BacklogRow, error) {
	cols, err := indexColumns("backlog", records,
		"Created on", "Sales Document", "Requested Delivery Date", "Sales UOM",
		"Base UOM", "Header Delivery Block", "Line Delivery Block", "Y Material",
		"MRP Controller", "Vendor PO #", "Open Value", "Open Order Quantity",
		"On Hand Quantity", "Delivery Qty - Complete", "DropShip")
	if err != nil {
		return nil, err
	}

	rows := make([]entities.BacklogRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, entities.BacklogRow{
			CreatedOn:         parseDate(field(record, cols["Created on"])),
			OrderID:           entities.OrderID(field(record, cols["Sales Document"])),
			RequestedDelivery: parseDate(field(record, cols["Requested Delivery Date"])),
			SalesUOM:          field(record, cols["Sales UOM"]),
			BaseUOM:           field(record, cols["Base UOM"]),
			HeaderBlock:       field(record, cols["Header Delivery Block"]),
			LineBlock:         field(record, cols["Line Delivery Block"]),
			Material:          entities.MaterialID(field(record, cols["Y Material"])),
			Controller:        field(record, cols["MRP Controller"]),
			VendorPO:          field(record, cols["Vendor PO #"]),
			OpenValue:         parseDecimal(field(record, cols["Open Value"])),
			OpenQty:           parseFloat(field(record, cols["Open Order Quantity"])),
			OnHandQty:         parseFloat(field(record, cols["On Hand Quantity"])),
			DeliveredQty:      parseFloat(field(record, cols["Delivery Qty - Complete"])),
			DropShip:          field(record, cols["DropShip"]),
		})
	}
	return rows, nil
}

// SalesUOM maps raw records onto sales unit conversion rows.
func SalesUOM(records [][]string) ([]entities.UOMCounterRow, error) {
	cols, err := indexColumns("sales_uom", records, "Y Material", "Counter")
	if err != nil {
		return nil, err
	}

	rows := make([]entities.UOMCounterRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, entities.UOMCounterRow{
			Material: entities.MaterialID(field(record, cols["Y Material"])),
			Counter:  parseFloat(field(record, cols["Counter"])),
		})
	}
	return rows, nil
}

// Controllers maps raw records onto controller classification rows.
func Controllers(records [][]string) ([]entities.ControllerTypeRow, error) {
	cols, err := indexColumns("mrp", records, "MRP Controller", "Type")
	if err != nil {
		return nil, err
	}

	rows := make([]entities.ControllerTypeRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, entities.ControllerTypeRow{
			Controller: field(record, cols["MRP Controller"]),
			Type:       entities.MaterialType(field(record, cols["Type"])),
		})
	}
	return rows, nil
}

// Schedule maps raw records onto open purchase-order schedule rows.
func Schedule(records [][]string) ([]entities.ScheduleLineRow, error) {
	cols, err := indexColumns("deliveries", records,
		"Purchasing Document", "Y Material", "Delivery date", "Sch Opn Qty")
	if err != nil {
		return nil, err
	}

	rows := make([]entities.ScheduleLineRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, entities.ScheduleLineRow{
			PurchasingDoc: field(record, cols["Purchasing Document"]),
			Material:      entities.MaterialID(field(record, cols["Y Material"])),
			DeliveryDate:  parseDate(field(record, cols["Delivery date"])),
			SchOpenQty:    parseFloat(field(record, cols["Sch Opn Qty"])),
		})
	}
	return rows, nil
}

// PurchaseUOM maps raw records onto purchasing unit conversion rows.
func PurchaseUOM(records [][]string) ([]entities.PurchaseUOMRow, error) {
	cols, err := indexColumns("purchase_uom", records,
		"Y Material", "Order Unit", "PUOM", "Base UOM")
	if err != nil {
		return nil, err
	}

	rows := make([]entities.PurchaseUOMRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, entities.PurchaseUOMRow{
			Material:  entities.MaterialID(field(record, cols["Y Material"])),
			OrderUnit: field(record, cols["Order Unit"]),
			PUOM:      parseFloat(field(record, cols["PUOM"])),
			BaseUOM:   field(record, cols["Base UOM"]),
		})
	}
	return rows, nil
}

// Kits maps raw records onto kit bill-of-material rows.
func Kits(records [][]string) ([]entities.KitComponent, error) {
	cols, err := indexColumns("kits", records, "Y Material", "Component")
	if err != nil {
		return nil, err
	}

	rows := make([]entities.KitComponent, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, entities.KitComponent{
			Kit:       entities.MaterialID(field(record, cols["Y Material"])),
			Component: entities.MaterialID(field(record, cols["Component"])),
		})
	}
	return rows, nil
}

// Restricted maps raw records onto restricted-component rows.
func Restricted(records [][]string) ([]entities.RestrictedComponent, error) {
	cols, err := indexColumns("restricted", records, "Y Material", "Component")
	if err != nil {
		return nil, err
	}

	rows := make([]entities.RestrictedComponent, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, entities.RestrictedComponent{
			Product:   entities.MaterialID(field(record, cols["Y Material"])),
			Component: entities.MaterialID(field(record, cols["Component"])),
		})
	}
	return rows, nil
}

// indexColumns maps each required column name to its position in the header
// row. Matching is case-insensitive and trims surrounding whitespace. An
// empty table counts as missing every required column.
func indexColumns(table string, records [][]string, required ...string) (map[string]int, error) {
	if len(records) == 0 {
		return nil, entities.NewValidationError(table, required...)
	}

	positions := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		positions[strings.ToLower(strings.TrimSpace(col))] = i
	}

	cols := make(map[string]int, len(required))
	var missing []string
	for _, name := range required {
		idx, ok := positions[strings.ToLower(name)]
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[name] = idx
	}
	if len(missing) > 0 {
		return nil, entities.NewValidationError(table, missing...)
	}
	return cols, nil
}

// field reads a cell by index, tolerating short records. Sheet readers drop
// trailing empty cells, so a short record is not an error.
func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}
