package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ygroup/backlog/pkg/application/dto"
)

// generateXLSXOutput writes the annotated line table and the order rollup
// into one workbook, one sheet each.
func generateXLSXOutput(result *dto.RunResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for xlsx format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const linesSheet = "lines"
	const ordersSheet = "orders"

	if err := f.SetSheetName("Sheet1", linesSheet); err != nil {
		return fmt.Errorf("failed to name lines sheet: %w", err)
	}
	if _, err := f.NewSheet(ordersSheet); err != nil {
		return fmt.Errorf("failed to create orders sheet: %w", err)
	}

	if err := writeSheet(f, linesSheet, lineHeader, len(result.Lines), func(i int) []string {
		return lineRecord(&result.Lines[i])
	}); err != nil {
		return err
	}
	if err := writeSheet(f, ordersSheet, orderHeader, len(result.Orders), func(i int) []string {
		return orderRecord(&result.Orders[i])
	}); err != nil {
		return err
	}

	filename := filepath.Join(config.OutputDir, "availability.xlsx")
	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	if config.Verbose {
		fmt.Printf("Workbook saved to: %s\n", filename)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, n int, record func(int) []string) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := setRow(f, sheet, i+2, record(i)); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write sheet %s row %d: %w", sheet, row, err)
	}
	return nil
}
