package commands

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

// GenerateConfig holds configuration for snapshot generation.
type GenerateConfig struct {
	Orders    int     // number of sales orders to generate
	Materials int     // size of the material pool
	Coverage  float64 // on-hand stock multiplier (0.5 = half coverage, 2.0 = surplus)
	OutputDir string  // output directory for the generated tables
	Seed      int64   // random seed for reproducible generation
	Verbose   bool
}

func newGenerateCmd() *cobra.Command {
	var config GenerateConfig

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic backlog snapshot for experimentation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewGenerateCommand(config).Execute()
		},
	}

	cmd.Flags().IntVar(&config.Orders, "orders", 50, "number of sales orders")
	cmd.Flags().IntVar(&config.Materials, "materials", 20, "size of the material pool")
	cmd.Flags().Float64Var(&config.Coverage, "coverage", 0.7, "on-hand stock multiplier")
	cmd.Flags().StringVar(&config.OutputDir, "output", "snapshot", "output directory")
	cmd.Flags().Int64Var(&config.Seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "verbose output")

	return cmd
}

// GenerateCommand handles snapshot generation.
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
}

// NewGenerateCommand creates a generate command with the given configuration.
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// Execute writes the seven canonical tables as CSV files.
func (cmd *GenerateCommand) Execute() error {
	if cmd.config.Orders <= 0 || cmd.config.Materials <= 0 {
		return fmt.Errorf("orders and materials must be positive")
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	materials := cmd.materialPool()

	if err := cmd.writeBacklog(materials); err != nil {
		return err
	}
	if err := cmd.writeSalesUOM(materials); err != nil {
		return err
	}
	if err := cmd.writeControllers(); err != nil {
		return err
	}
	if err := cmd.writeSchedule(materials); err != nil {
		return err
	}
	if err := cmd.writePurchaseUOM(materials); err != nil {
		return err
	}
	if err := cmd.writeKits(); err != nil {
		return err
	}
	if err := cmd.writeRestricted(); err != nil {
		return err
	}

	if cmd.config.Verbose {
		fmt.Printf("Generated snapshot with %d orders over %d materials in %s\n",
			cmd.config.Orders, cmd.config.Materials, cmd.config.OutputDir)
	}
	return nil
}

func (cmd *GenerateCommand) materialPool() []string {
	materials := make([]string, cmd.config.Materials)
	for i := range materials {
		materials[i] = fmt.Sprintf("Y%07d", 4000000+i)
	}
	return materials
}

func (cmd *GenerateCommand) writeBacklog(materials []string) error {
	header := []string{
		"Created on", "Sales Document", "Requested Delivery Date", "Sales UOM",
		"Base UOM", "Header Delivery Block", "Line Delivery Block", "Y Material",
		"MRP Controller", "Vendor PO #", "Open Value", "Open Order Quantity",
		"On Hand Quantity", "Delivery Qty - Complete", "DropShip",
	}

	// Per-material demand totals drive on-hand quantities, so the coverage
	// multiplier actually controls how many lines resolve to Dispo.
	demand := make(map[string]float64)
	type pending struct {
		record []string
		m      string
	}
	var rows []pending

	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	controllers := []string{"M10", "M10", "M10", "M60", "M80", "M50"}

	for i := 0; i < cmd.config.Orders; i++ {
		order := fmt.Sprintf("1%06d", 100000+i)
		if cmd.rand.Float64() < 0.05 {
			order = fmt.Sprintf("RW%05d", cmd.rand.Intn(99999))
		}
		created := base.AddDate(0, 0, cmd.rand.Intn(60))

		lineCount := 1 + cmd.rand.Intn(3)
		for j := 0; j < lineCount; j++ {
			m := materials[cmd.rand.Intn(len(materials))]
			qty := float64(1 + cmd.rand.Intn(20))
			demand[m] += qty

			block := "No Block"
			if cmd.rand.Float64() < 0.08 {
				block = "Credit Block"
			}
			value := fmt.Sprintf("%.2f", qty*float64(10+cmd.rand.Intn(490)))

			rows = append(rows, pending{
				m: m,
				record: []string{
					created.Format("1/2/2006"), order,
					created.AddDate(0, 1, 0).Format("1/2/2006"),
					"PC", "PC", "No Block", block, m, controllers[cmd.rand.Intn(len(controllers))],
					"-", value, fmt.Sprintf("%g", qty), "", "0", "",
				},
			})
		}
	}

	records := [][]string{header}
	for _, row := range rows {
		onHand := demand[row.m] * cmd.config.Coverage
		row.record[12] = fmt.Sprintf("%.0f", onHand)
		records = append(records, row.record)
	}
	return cmd.writeCSV("backlog.csv", records)
}

func (cmd *GenerateCommand) writeSalesUOM(materials []string) error {
	records := [][]string{{"Y Material", "Counter"}}
	for _, m := range materials {
		if cmd.rand.Float64() < 0.3 {
			records = append(records, []string{m, fmt.Sprintf("%d", 2+cmd.rand.Intn(11))})
		}
	}
	return cmd.writeCSV("sales_uom.csv", records)
}

func (cmd *GenerateCommand) writeControllers() error {
	return cmd.writeCSV("mrp.csv", [][]string{
		{"MRP Controller", "Type"},
		{"M10", "BUY"},
		{"M32", "BUY"},
		{"M50", "BUY"},
		{"M60", "SECUROC"},
		{"M70", "BUY"},
		{"M80", "BUY"},
	})
}

func (cmd *GenerateCommand) writeSchedule(materials []string) error {
	records := [][]string{{"Purchasing Document", "Y Material", "Delivery date", "Sch Opn Qty"}}
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, m := range materials {
		deliveries := cmd.rand.Intn(3)
		for j := 0; j < deliveries; j++ {
			records = append(records, []string{
				fmt.Sprintf("45%07d", 100*i+j),
				m,
				base.AddDate(0, 0, cmd.rand.Intn(90)).Format("1/2/2006"),
				fmt.Sprintf("%d", 5+cmd.rand.Intn(50)),
			})
		}
	}
	return cmd.writeCSV("deliveries.csv", records)
}

func (cmd *GenerateCommand) writePurchaseUOM(materials []string) error {
	records := [][]string{{"Y Material", "Order Unit", "PUOM", "Base UOM"}}
	for _, m := range materials {
		if cmd.rand.Float64() < 0.25 {
			records = append(records, []string{m, "BOX", fmt.Sprintf("%d", 2+cmd.rand.Intn(23)), "PC"})
		}
	}
	return cmd.writeCSV("purchase_uom.csv", records)
}

func (cmd *GenerateCommand) writeKits() error {
	return cmd.writeCSV("kits.csv", [][]string{{"Y Material", "Component"}})
}

func (cmd *GenerateCommand) writeRestricted() error {
	return cmd.writeCSV("restricted.csv", [][]string{{"Y Material", "Component"}})
}

func (cmd *GenerateCommand) writeCSV(name string, records [][]string) error {
	file, err := os.Create(filepath.Join(cmd.config.OutputDir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
