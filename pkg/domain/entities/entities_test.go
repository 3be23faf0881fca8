package entities

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestHasVendorPO(t *testing.T) {
	tests := []struct {
		vendorPO string
		want     bool
	}{
		{"4500001234", true},
		{VendorPONone, false},
		{"", false},
	}

	for _, tt := range tests {
		line := BacklogLine{VendorPO: tt.vendorPO}
		if line.HasVendorPO() != tt.want {
			t.Errorf("HasVendorPO(%q): expected %v", tt.vendorPO, tt.want)
		}
	}
}

func TestKitBOMComponents(t *testing.T) {
	bom := NewKitBOM([]KitComponent{
		{Kit: "Y8000", Component: "Y1000"},
		{Kit: "Y8000", Component: "Y2000"},
		{Kit: "Y9000", Component: "Y3000"},
	})

	components := bom.Components("Y8000")
	if len(components) != 2 || components[0] != "Y1000" || components[1] != "Y2000" {
		t.Errorf("unexpected components for Y8000: %v", components)
	}
	if bom.Components("Y7777") != nil {
		t.Error("expected nil for unknown kit")
	}
}

func TestRestrictedComponentMap(t *testing.T) {
	m := NewRestrictedComponentMap([]RestrictedComponent{
		{Product: "Y5000", Component: "C1"},
		{Product: "Y5000", Component: "C2"},
		{Product: "Y5000", Component: "C1"},
		{Product: "Y5001", Component: "C2"},
	})

	if !m.IsRestricted("Y5000") || !m.IsRestricted("Y5001") {
		t.Error("expected both products restricted")
	}
	if m.IsRestricted("C1") {
		t.Error("components are not restricted products")
	}

	components := m.Components("Y5000")
	if len(components) != 2 || components[0] != "C1" || components[1] != "C2" {
		t.Errorf("expected deduplicated components in input order, got %v", components)
	}

	all := m.AllComponents()
	if len(all) != 2 || all[0] != "C1" || all[1] != "C2" {
		t.Errorf("expected distinct components across products, got %v", all)
	}
}

func TestComputationErrorUnwraps(t *testing.T) {
	cause := errors.New("index out of range")
	err := &ComputationError{Pass: "initial availability pass", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be found")
	}

	wrapped := fmt.Errorf("run failed: %w", err)
	var compErr *ComputationError
	if !errors.As(wrapped, &compErr) {
		t.Fatal("expected ComputationError through the chain")
	}
	if compErr.Pass != "initial availability pass" {
		t.Errorf("unexpected pass: %s", compErr.Pass)
	}
}

func TestValidationErrorNamesTableAndColumns(t *testing.T) {
	err := NewValidationError("backlog", "Open Value", "Created on")

	msg := err.Error()
	for _, want := range []string{"backlog", "Open Value", "Created on"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in error message %q", want, msg)
		}
	}
}
