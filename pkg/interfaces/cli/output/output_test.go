package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ygroup/backlog/pkg/application/dto"
	"github.com/ygroup/backlog/pkg/domain/entities"
	fixtures "github.com/ygroup/backlog/pkg/infrastructure/testing"
)

func sampleResult() *dto.RunResult {
	covered := fixtures.Line("100001", "Y1000", "2024-01-10", 5)
	covered.OpenValue = decimal.NewFromInt(500)
	covered.StockStatus = entities.StockDispo
	covered.UpdatedStockStatus = entities.StockDispo
	covered.RemainingQty = 5
	covered.UpdatedRemainingQty = 5
	covered.OrderType = entities.OrderDispo

	short := fixtures.Line("100002", "Y2000", "2024-01-11", 3)
	short.OpenValue = decimal.NewFromInt(300)
	short.StockStatus = entities.StockNoDispo
	short.UpdatedStockStatus = entities.StockNoDispo
	short.RemainingQty = -3
	short.UpdatedRemainingQty = -3
	short.OrderType = entities.OrderNoDispo

	lines := []entities.BacklogLine{covered, short}
	orders := []entities.OrderClassification{
		{OrderID: "100001", Type: entities.OrderDispo, TotalValue: decimal.NewFromInt(500), LineCount: 1},
		{OrderID: "100002", Type: entities.OrderNoDispo, TotalValue: decimal.NewFromInt(300), LineCount: 1},
	}

	return &dto.RunResult{
		RunID:   uuid.New(),
		Lines:   lines,
		Orders:  orders,
		Summary: dto.Summarize(lines, orders),
	}
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	err := Generate(sampleResult(), Config{Format: "yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestGenerateCSVRequiresOutputDir(t *testing.T) {
	err := Generate(sampleResult(), Config{Format: "csv"})
	require.Error(t, err)
}

func TestGenerateCSVWritesLinesAndOrders(t *testing.T) {
	dir := t.TempDir()

	err := Generate(sampleResult(), Config{Format: "csv", OutputDir: dir})
	require.NoError(t, err)

	linesFile, err := os.Open(filepath.Join(dir, "lines.csv"))
	require.NoError(t, err)
	defer linesFile.Close()

	records, err := csv.NewReader(linesFile).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, lineHeader, records[0])
	assert.Equal(t, "100001", records[1][0])
	assert.Equal(t, "Dispo", records[1][8])
	assert.Equal(t, "No dispo", records[2][8])

	ordersFile, err := os.Open(filepath.Join(dir, "orders.csv"))
	require.NoError(t, err)
	defer ordersFile.Close()

	orderRecords, err := csv.NewReader(ordersFile).ReadAll()
	require.NoError(t, err)
	require.Len(t, orderRecords, 3)
	assert.Equal(t, "500.00", orderRecords[1][2])
}

func TestGenerateJSONWritesFile(t *testing.T) {
	dir := t.TempDir()

	err := Generate(sampleResult(), Config{Format: "json", OutputDir: dir})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "availability.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "100001")
}

func TestGenerateXLSXWritesWorkbook(t *testing.T) {
	dir := t.TempDir()

	err := Generate(sampleResult(), Config{Format: "xlsx", OutputDir: dir})
	require.NoError(t, err)

	f, err := excelize.OpenFile(filepath.Join(dir, "availability.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("lines")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "100001", rows[1][0])

	orderRows, err := f.GetRows("orders")
	require.NoError(t, err)
	require.Len(t, orderRows, 3)
}

func TestDeficit(t *testing.T) {
	negative := entities.BacklogLine{QteSales: 5, UpdatedRemainingQty: -3}
	assert.Equal(t, 3.0, deficit(&negative))

	nonNegative := entities.BacklogLine{QteSales: 5, UpdatedRemainingQty: 2}
	assert.Equal(t, 5.0, deficit(&nonNegative))
}
