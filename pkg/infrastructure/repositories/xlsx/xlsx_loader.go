// Package xlsx loads the canonical input tables from a single workbook, one
// sheet per table.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ygroup/backlog/pkg/application/services/pipeline"
	"github.com/ygroup/backlog/pkg/infrastructure/repositories/tabular"
)

// Sheet names expected in the workbook.
const (
	SheetBacklog     = "backlog"
	SheetSalesUOM    = "sales_uom"
	SheetControllers = "mrp"
	SheetSchedule    = "deliveries"
	SheetPurchaseUOM = "purchase_uom"
	SheetKits        = "kits"
	SheetRestricted  = "restricted"
)

// Loader handles loading the canonical tables from a workbook.
type Loader struct{}

// NewLoader creates a new workbook loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadInputs reads every canonical table sheet from the workbook at the
// given path.
func (l *Loader) LoadInputs(path string) (pipeline.Inputs, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return pipeline.Inputs{}, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	var inputs pipeline.Inputs

	records, err := sheetRows(f, SheetBacklog)
	if err != nil {
		return pipeline.Inputs{}, err
	}
	if inputs.Backlog, err = tabular.Backlog(records); err != nil {
		return pipeline.Inputs{}, err
	}

	if records, err = sheetRows(f, SheetSalesUOM); err != nil {
		return pipeline.Inputs{}, err
	}
	if inputs.SalesUOM, err = tabular.SalesUOM(records); err != nil {
		return pipeline.Inputs{}, err
	}

	if records, err = sheetRows(f, SheetControllers); err != nil {
		return pipeline.Inputs{}, err
	}
	if inputs.Controllers, err = tabular.Controllers(records); err != nil {
		return pipeline.Inputs{}, err
	}

	if records, err = sheetRows(f, SheetSchedule); err != nil {
		return pipeline.Inputs{}, err
	}
	if inputs.Schedule, err = tabular.Schedule(records); err != nil {
		return pipeline.Inputs{}, err
	}

	if records, err = sheetRows(f, SheetPurchaseUOM); err != nil {
		return pipeline.Inputs{}, err
	}
	if inputs.PurchaseUOM, err = tabular.PurchaseUOM(records); err != nil {
		return pipeline.Inputs{}, err
	}

	if records, err = sheetRows(f, SheetKits); err != nil {
		return pipeline.Inputs{}, err
	}
	if inputs.Kits, err = tabular.Kits(records); err != nil {
		return pipeline.Inputs{}, err
	}

	if records, err = sheetRows(f, SheetRestricted); err != nil {
		return pipeline.Inputs{}, err
	}
	if inputs.Restricted, err = tabular.Restricted(records); err != nil {
		return pipeline.Inputs{}, err
	}

	return inputs, nil
}

func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}
