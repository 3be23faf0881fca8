package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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
	writeFile(t, dir, "sales_uom.csv", "Y Material,Counter\n")
	writeFile(t, dir, "mrp.csv", "MRP Controller,Type\nM10,BUY\n")
	writeFile(t, dir, "deliveries.csv", "Purchasing Document,Y Material,Delivery date,Sch Opn Qty\n")
	writeFile(t, dir, "purchase_uom.csv", "Y Material,Order Unit,PUOM,Base UOM\n")
	writeFile(t, dir, "kits.csv", "Y Material,Component\n")
	writeFile(t, dir, "restricted.csv", "Y Material,Component\n")
}

func TestRunCommandValidation(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"no input source", Config{Format: "text"}},
		{"both input sources", Config{InputDir: "a", Workbook: "b", Format: "text"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRunCommand(tt.config).Execute(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation error")
		})
	}
}

func TestRunCommandEndToEnd(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writeSnapshot(t, inputDir)

	config := Config{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Format:    "json",
	}

	err := NewRunCommand(config).Execute(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outputDir, "availability.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "100001")
	assert.Contains(t, string(data), "Y1000")
}

func TestRunCommandMissingSnapshot(t *testing.T) {
	config := Config{
		InputDir: t.TempDir(),
		Format:   "text",
	}

	err := NewRunCommand(config).Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load inputs")
}

func TestRootCmdRegistersRun(t *testing.T) {
	root := NewRootCmd()

	run, _, err := root.Find([]string{"run"})
	require.NoError(t, err)
	assert.Equal(t, "run", run.Name())
}
