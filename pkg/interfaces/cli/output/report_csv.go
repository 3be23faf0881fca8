package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ygroup/backlog/pkg/domain/entities"
)

var lineHeader = []string{
	"Sales Document", "Created on", "Y Material", "MRP Controller", "Type",
	"Statut", "Qte Sales", "Open Value", "Stock Status", "Remaining Qty",
	"Sort Order", "Updated Stock Status", "Updated Remaining Qty",
	"Last Delivery Date", "Order Type", "Total Value Order",
}

var orderHeader = []string{
	"Sales Document", "Order Type", "Total Value", "Created on",
	"Last Delivery Date", "Lines",
}

func writeLinesCSV(lines []entities.BacklogLine, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(lineHeader); err != nil {
		return err
	}
	for i := range lines {
		if err := w.Write(lineRecord(&lines[i])); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeOrdersCSV(orders []entities.OrderClassification, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(orderHeader); err != nil {
		return err
	}
	for _, o := range orders {
		if err := w.Write(orderRecord(&o)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func lineRecord(line *entities.BacklogLine) []string {
	return []string{
		string(line.OrderID),
		formatDate(line.CreatedOn),
		string(line.Material),
		line.Controller,
		string(line.Type),
		line.Statut.String(),
		formatQty(line.QteSales),
		line.OpenValue.StringFixed(2),
		line.StockStatus.String(),
		formatQty(line.RemainingQty),
		strconv.Itoa(line.SortOrder),
		line.UpdatedStockStatus.String(),
		formatQty(line.UpdatedRemainingQty),
		formatDate(line.LastDeliveryDate),
		line.OrderType.String(),
		line.TotalOrderValue.StringFixed(2),
	}
}

func orderRecord(o *entities.OrderClassification) []string {
	return []string{
		string(o.OrderID),
		o.Type.String(),
		o.TotalValue.StringFixed(2),
		formatDate(o.CreatedOn),
		formatDate(o.LastDeliveryDate),
		strconv.Itoa(o.LineCount),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
