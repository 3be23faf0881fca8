package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ygroup/backlog/pkg/application/services/pipeline"
	"github.com/ygroup/backlog/pkg/infrastructure/repositories/csv"
	"github.com/ygroup/backlog/pkg/infrastructure/repositories/xlsx"
	"github.com/ygroup/backlog/pkg/interfaces/cli/output"
)

// Config holds configuration for the run command.
type Config struct {
	InputDir  string
	Workbook  string
	OutputDir string
	Format    string
	Verbose   bool
}

func newRunCmd() *cobra.Command {
	var config Config

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an availability pass over a backlog snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			command := NewRunCommand(config)
			return command.Execute(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&config.InputDir, "input", "", "directory of canonical CSV tables")
	cmd.Flags().StringVar(&config.Workbook, "workbook", "", "workbook holding one sheet per canonical table")
	cmd.Flags().StringVar(&config.OutputDir, "output", "", "output directory for results")
	cmd.Flags().StringVar(&config.Format, "format", "text", "output format: text, json, csv, xlsx")
	cmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "enable verbose logging")

	return cmd
}

// RunCommand handles the availability run execution logic.
type RunCommand struct {
	config Config
}

// NewRunCommand creates a run command with the given configuration.
func NewRunCommand(config Config) *RunCommand {
	return &RunCommand{config: config}
}

// Execute loads the snapshot, runs the availability pipeline and renders
// the result.
func (c *RunCommand) Execute(ctx context.Context) error {
	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	logger := c.newLogger()

	inputs, inputPath, err := c.loadInputs()
	if err != nil {
		return fmt.Errorf("failed to load inputs: %w", err)
	}

	runner := pipeline.NewRunner(logger)
	result, err := runner.Run(ctx, inputs)
	if err != nil {
		return fmt.Errorf("availability run failed: %w", err)
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		InputPath: inputPath,
	}
	if err := output.Generate(result, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

func (c *RunCommand) validateInputs() error {
	if c.config.InputDir == "" && c.config.Workbook == "" {
		return fmt.Errorf("must specify either --input directory or --workbook file")
	}
	if c.config.InputDir != "" && c.config.Workbook != "" {
		return fmt.Errorf("--input and --workbook are mutually exclusive")
	}
	return nil
}

func (c *RunCommand) loadInputs() (pipeline.Inputs, string, error) {
	if c.config.Workbook != "" {
		inputs, err := xlsx.NewLoader().LoadInputs(c.config.Workbook)
		return inputs, c.config.Workbook, err
	}
	inputs, err := csv.NewLoader().LoadInputs(c.config.InputDir)
	return inputs, c.config.InputDir, err
}

func (c *RunCommand) newLogger() *slog.Logger {
	level := slog.LevelWarn
	if c.config.Verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
