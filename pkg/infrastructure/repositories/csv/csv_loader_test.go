package csv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygroup/backlog/pkg/domain/entities"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func writeSnapshot(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, dir, "backlog.csv",
		"Created on,Sales Document,Requested Delivery Date,Sales UOM,Base UOM,"+
			"Header Delivery Block,Line Delivery Block,Y Material,MRP Controller,"+
			"Vendor PO #,Open Value,Open Order Quantity,On Hand Quantity,"+
			"Delivery Qty - Complete,DropShip\n"+
			"1/10/2024,100001,2/1/2024,PC,PC,No Block,No Block,Y1000,M10,-,500,5,10,0,\n")
	writeFile(t, dir, "sales_uom.csv", "Y Material,Counter\nY1000,4\n")
	writeFile(t, dir, "mrp.csv", "MRP Controller,Type\nM10,BUY\nM60,SECUROC\n")
	writeFile(t, dir, "deliveries.csv",
		"Purchasing Document,Y Material,Delivery date,Sch Opn Qty\nPO100,Y1000,2/15/2024,30\n")
	writeFile(t, dir, "purchase_uom.csv", "Y Material,Order Unit,PUOM,Base UOM\nY1000,BOX,12,PC\n")
	writeFile(t, dir, "kits.csv", "Y Material,Component\nY8000,Y1000\n")
	writeFile(t, dir, "restricted.csv", "Y Material,Component\nY5000,C1\n")
}

func TestLoadInputs(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir)

	inputs, err := NewLoader().LoadInputs(dir)
	require.NoError(t, err)

	require.Len(t, inputs.Backlog, 1)
	assert.Equal(t, entities.OrderID("100001"), inputs.Backlog[0].OrderID)
	assert.Equal(t, 5.0, inputs.Backlog[0].OpenQty)

	require.Len(t, inputs.SalesUOM, 1)
	assert.Equal(t, 4.0, inputs.SalesUOM[0].Counter)

	require.Len(t, inputs.Controllers, 2)
	assert.Equal(t, entities.TypeSecuroc, inputs.Controllers[1].Type)

	require.Len(t, inputs.Schedule, 1)
	assert.Equal(t, "PO100", inputs.Schedule[0].PurchasingDoc)

	require.Len(t, inputs.PurchaseUOM, 1)
	assert.Equal(t, 12.0, inputs.PurchaseUOM[0].PUOM)

	require.Len(t, inputs.Kits, 1)
	require.Len(t, inputs.Restricted, 1)
}

func TestLoadInputsMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "kits.csv")))

	_, err := NewLoader().LoadInputs(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kits")
}

func TestLoadBacklogMissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "backlog.csv", "Created on,Sales Document\n1/10/2024,100001\n")

	_, err := NewLoader().LoadBacklog(filepath.Join(dir, "backlog.csv"))
	require.Error(t, err)

	var validationErr *entities.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "backlog", validationErr.Table)
}
