package tabular

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygroup/backlog/pkg/domain/entities"
)

func backlogRecords() [][]string {
	return [][]string{
		{
			"Created on", "Sales Document", "Requested Delivery Date", "Sales UOM",
			"Base UOM", "Header Delivery Block", "Line Delivery Block", "Y Material",
			"MRP Controller", "Vendor PO #", "Open Value", "Open Order Quantity",
			"On Hand Quantity", "Delivery Qty - Complete", "DropShip",
		},
		{
			"1/10/2024", "100001", "2/1/2024", "PC",
			"PC", "No Block", "No Block", "Y1000",
			"M10", "-", "1,250.50", "5",
			"10", "0", "",
		},
	}
}

func TestBacklog(t *testing.T) {
	rows, err := Backlog(backlogRecords())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, entities.OrderID("100001"), row.OrderID)
	assert.Equal(t, entities.MaterialID("Y1000"), row.Material)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), row.CreatedOn)
	assert.Equal(t, "M10", row.Controller)
	assert.True(t, row.OpenValue.Equal(decimal.RequireFromString("1250.50")))
	assert.Equal(t, 5.0, row.OpenQty)
	assert.Equal(t, 10.0, row.OnHandQty)
}

func TestBacklogColumnOrderDoesNotMatter(t *testing.T) {
	records := backlogRecords()
	// Swap two columns in both header and data.
	for _, r := range records {
		r[0], r[7] = r[7], r[0]
	}

	rows, err := Backlog(records)
	require.NoError(t, err)
	assert.Equal(t, entities.MaterialID("Y1000"), rows[0].Material)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), rows[0].CreatedOn)
}

func TestBacklogMissingColumns(t *testing.T) {
	records := [][]string{
		{"Created on", "Sales Document"},
		{"1/10/2024", "100001"},
	}

	_, err := Backlog(records)
	require.Error(t, err)

	var validationErr *entities.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "backlog", validationErr.Table)
	assert.Contains(t, validationErr.Columns, "Y Material")
	assert.Contains(t, validationErr.Columns, "Open Value")
}

func TestBacklogUnparseableDateIsNull(t *testing.T) {
	records := backlogRecords()
	records[1][0] = "not a date"

	rows, err := Backlog(records)
	require.NoError(t, err)
	assert.True(t, rows[0].CreatedOn.IsZero())
}

func TestScheduleMapsDeliveries(t *testing.T) {
	records := [][]string{
		{"Purchasing Document", "Y Material", "Delivery date", "Sch Opn Qty"},
		{"PO100", "Y1000", "2/15/2024", "30"},
		{"PO101", "Y2000", "", "12.5"},
	}

	rows, err := Schedule(records)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "PO100", rows[0].PurchasingDoc)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), rows[0].DeliveryDate)
	assert.Equal(t, 30.0, rows[0].SchOpenQty)
	assert.True(t, rows[1].DeliveryDate.IsZero())
	assert.Equal(t, 12.5, rows[1].SchOpenQty)
}

func TestControllersEmptyTable(t *testing.T) {
	_, err := Controllers(nil)
	require.Error(t, err)

	var validationErr *entities.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "mrp", validationErr.Table)
}

func TestKitsAndRestrictedShareShape(t *testing.T) {
	records := [][]string{
		{"Y Material", "Component"},
		{"Y8000", "Y1000"},
	}

	kits, err := Kits(records)
	require.NoError(t, err)
	require.Len(t, kits, 1)
	assert.Equal(t, entities.MaterialID("Y8000"), kits[0].Kit)

	restricted, err := Restricted(records)
	require.NoError(t, err)
	require.Len(t, restricted, 1)
	assert.Equal(t, entities.MaterialID("Y8000"), restricted[0].Product)
	assert.Equal(t, entities.MaterialID("Y1000"), restricted[0].Component)
}

func TestShortRecordsReadAsEmpty(t *testing.T) {
	records := [][]string{
		{"Y Material", "Counter"},
		{"Y1000"},
	}

	rows, err := SalesUOM(records)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].Counter)
}
