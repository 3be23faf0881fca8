// Package csv loads the canonical input tables from CSV files, one file per
// table.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ygroup/backlog/pkg/application/services/pipeline"
	"github.com/ygroup/backlog/pkg/domain/entities"
	"github.com/ygroup/backlog/pkg/infrastructure/repositories/tabular"
)

// Loader handles loading the canonical tables from CSV files.
type Loader struct{}

// NewLoader creates a new CSV loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadInputs loads every canonical table from the given directory, using the
// conventional file name per table.
func (l *Loader) LoadInputs(dir string) (pipeline.Inputs, error) {
	var inputs pipeline.Inputs
	var err error

	if inputs.Backlog, err = l.LoadBacklog(filepath.Join(dir, "backlog.csv")); err != nil {
		return pipeline.Inputs{}, err
	}
	if inputs.SalesUOM, err = l.LoadSalesUOM(filepath.Join(dir, "sales_uom.csv")); err != nil {
		return pipeline.Inputs{}, err
	}
	if inputs.Controllers, err = l.LoadControllers(filepath.Join(dir, "mrp.csv")); err != nil {
		return pipeline.Inputs{}, err
	}
	if inputs.Schedule, err = l.LoadSchedule(filepath.Join(dir, "deliveries.csv")); err != nil {
		return pipeline.Inputs{}, err
	}
	if inputs.PurchaseUOM, err = l.LoadPurchaseUOM(filepath.Join(dir, "purchase_uom.csv")); err != nil {
		return pipeline.Inputs{}, err
	}
	if inputs.Kits, err = l.LoadKits(filepath.Join(dir, "kits.csv")); err != nil {
		return pipeline.Inputs{}, err
	}
	if inputs.Restricted, err = l.LoadRestricted(filepath.Join(dir, "restricted.csv")); err != nil {
		return pipeline.Inputs{}, err
	}

	return inputs, nil
}

// LoadBacklog loads the backlog table from a CSV file.
func (l *Loader) LoadBacklog(filename string) ([]entities.BacklogRow, error) {
	records, err := readAll(filename, "backlog")
	if err != nil {
		return nil, err
	}
	return tabular.Backlog(records)
}

// LoadSalesUOM loads the sales unit conversion table from a CSV file.
func (l *Loader) LoadSalesUOM(filename string) ([]entities.UOMCounterRow, error) {
	records, err := readAll(filename, "sales_uom")
	if err != nil {
		return nil, err
	}
	return tabular.SalesUOM(records)
}

// LoadControllers loads the controller classification table from a CSV file.
func (l *Loader) LoadControllers(filename string) ([]entities.ControllerTypeRow, error) {
	records, err := readAll(filename, "mrp")
	if err != nil {
		return nil, err
	}
	return tabular.Controllers(records)
}

// LoadSchedule loads the open purchase-order schedule from a CSV file.
func (l *Loader) LoadSchedule(filename string) ([]entities.ScheduleLineRow, error) {
	records, err := readAll(filename, "deliveries")
	if err != nil {
		return nil, err
	}
	return tabular.Schedule(records)
}

// LoadPurchaseUOM loads the purchasing unit conversion table from a CSV file.
func (l *Loader) LoadPurchaseUOM(filename string) ([]entities.PurchaseUOMRow, error) {
	records, err := readAll(filename, "purchase_uom")
	if err != nil {
		return nil, err
	}
	return tabular.PurchaseUOM(records)
}

// LoadKits loads the kit bill of materials from a CSV file.
func (l *Loader) LoadKits(filename string) ([]entities.KitComponent, error) {
	records, err := readAll(filename, "kits")
	if err != nil {
		return nil, err
	}
	return tabular.Kits(records)
}

// LoadRestricted loads the restricted-component table from a CSV file.
func (l *Loader) LoadRestricted(filename string) ([]entities.RestrictedComponent, error) {
	records, err := readAll(filename, "restricted")
	if err != nil {
		return nil, err
	}
	return tabular.Restricted(records)
}

func readAll(filename, table string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", table, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", table, err)
	}
	return records, nil
}
