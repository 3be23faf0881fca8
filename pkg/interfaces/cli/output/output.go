// Package output renders availability run results as text, json, csv or an
// xlsx report workbook.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ygroup/backlog/pkg/application/dto"
	"github.com/ygroup/backlog/pkg/domain/entities"
)

// Config holds configuration for output generation.
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	InputPath string
}

// Generate creates output in the specified format.
func Generate(result *dto.RunResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	case "xlsx":
		return generateXLSXOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates the human-readable availability report.
func generateTextOutput(result *dto.RunResult, config Config) error {
	fmt.Printf("Availability Run %s\n", result.RunID)
	fmt.Printf("======================================\n\n")

	fmt.Printf("Backlog lines: %d\n", result.Summary.TotalLines)
	fmt.Printf("Orders: %d\n", result.Summary.TotalOrders)
	fmt.Printf("Run time: %v\n\n", result.Elapsed)

	printOrderTypeSummary(result)
	printAvailableOrders(result)
	printShortageOrders(result)

	return nil
}

// printOrderTypeSummary prints counts and total value per order type.
func printOrderTypeSummary(result *dto.RunResult) {
	totals := make(map[entities.OrderType]struct {
		count int
		value string
	})
	for _, t := range orderTypeDisplayOrder {
		sum := decimal.Zero
		count := 0
		for _, o := range result.Orders {
			if o.Type == t {
				sum = sum.Add(o.TotalValue)
				count++
			}
		}
		if count > 0 {
			totals[t] = struct {
				count int
				value string
			}{count, sum.StringFixed(2)}
		}
	}

	fmt.Printf("Orders by type:\n")
	fmt.Printf("%-22s %-8s %-15s\n", "Type", "Orders", "Total Value")
	fmt.Printf("%-22s %-8s %-15s\n", "----------------------", "--------", "---------------")
	for _, t := range orderTypeDisplayOrder {
		agg, ok := totals[t]
		if !ok {
			continue
		}
		fmt.Printf("%-22s %-8d %-15s\n", t.String(), agg.count, agg.value)
	}
	fmt.Println()
}

var orderTypeDisplayOrder = []entities.OrderType{
	entities.OrderDispo,
	entities.OrderPotentialDispo,
	entities.OrderNoDispo,
	entities.OrderCompleted,
	entities.OrderBlock,
	entities.OrderOthers,
}

// printAvailableOrders lists Dispo and potential-dispo orders, the latter
// sorted by expected availability date.
func printAvailableOrders(result *dto.RunResult) {
	var available []entities.OrderClassification
	for _, o := range result.Orders {
		if o.Type == entities.OrderDispo || o.Type == entities.OrderPotentialDispo {
			available = append(available, o)
		}
	}
	if len(available) == 0 {
		return
	}

	sort.SliceStable(available, func(a, b int) bool {
		return available[a].LastDeliveryDate.Before(available[b].LastDeliveryDate)
	})

	fmt.Printf("Available and expected orders:\n")
	fmt.Printf("%-15s %-22s %-15s %-12s\n", "Order", "Type", "Total Value", "Available")
	fmt.Printf("%-15s %-22s %-15s %-12s\n",
		"---------------", "----------------------", "---------------", "------------")
	for _, o := range available {
		date := ""
		if !o.LastDeliveryDate.IsZero() {
			date = o.LastDeliveryDate.Format("2006-01-02")
		}
		fmt.Printf("%-15s %-22s %-15s %-12s\n",
			o.OrderID, o.Type.String(), o.TotalValue.StringFixed(2), date)
	}
	fmt.Println()
}

// printShortageOrders lists No dispo orders with the missing materials and
// their deficit quantities.
func printShortageOrders(result *dto.RunResult) {
	shortByOrder := make(map[entities.OrderID][]*entities.BacklogLine)
	for i := range result.Lines {
		line := &result.Lines[i]
		if line.UpdatedStockStatus == entities.StockNoDispo {
			shortByOrder[line.OrderID] = append(shortByOrder[line.OrderID], line)
		}
	}

	printed := false
	for _, o := range result.Orders {
		if o.Type != entities.OrderNoDispo {
			continue
		}
		if !printed {
			fmt.Printf("Orders short of stock:\n")
			printed = true
		}
		fmt.Printf("  %s (total %s):\n", o.OrderID, o.TotalValue.StringFixed(2))
		for _, line := range shortByOrder[o.OrderID] {
			fmt.Printf("    %-15s deficit %.2f\n", line.Material, deficit(line))
		}
	}
	if printed {
		fmt.Println()
	}
}

// deficit is the uncovered quantity of a shortage line. A negative running
// balance means deficit; a non-negative one means the line itself is short
// by its full sales quantity.
func deficit(line *entities.BacklogLine) float64 {
	if line.UpdatedRemainingQty < 0 {
		return -line.UpdatedRemainingQty
	}
	return line.QteSales
}

// generateJSONOutput marshals the full annotated result.
func generateJSONOutput(result *dto.RunResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "availability.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if config.Verbose {
		fmt.Printf("JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes the annotated line table and the order rollup as
// CSV files.
func generateCSVOutput(result *dto.RunResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for csv format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	linesFile := filepath.Join(config.OutputDir, "lines.csv")
	if err := writeLinesCSV(result.Lines, linesFile); err != nil {
		return fmt.Errorf("failed to write lines CSV: %w", err)
	}

	ordersFile := filepath.Join(config.OutputDir, "orders.csv")
	if err := writeOrdersCSV(result.Orders, ordersFile); err != nil {
		return fmt.Errorf("failed to write orders CSV: %w", err)
	}

	if config.Verbose {
		fmt.Printf("CSV results saved to:\n")
		fmt.Printf("  Lines: %s\n", linesFile)
		fmt.Printf("  Orders: %s\n", ordersFile)
	}
	return nil
}
