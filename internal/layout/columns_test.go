package layout

import (
	"testing"
)

func TestBuildColumnMap(t *testing.T) {
	header := []string{"Receipt No.", "Completion Time", "Initiation Time", "Details", "Transaction Status", "Paid In", "Withdrawn", "Balance"}
	columns := BuildColumnMap(header)

	tests := []struct {
		role     Role
		expected int
		mapped   bool
	}{
		{RoleReferenceCode, 0, true},
		{RoleTranDate, 1, true},
		{RoleDescription, 3, true},
		{RoleCredit, 5, true},
		{RoleDebit, 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			idx, ok := columns.Index(tt.role)
			if ok != tt.mapped {
				t.Fatalf("Index(%s) ok = %v, want %v", tt.role, ok, tt.mapped)
			}
			if ok && idx != tt.expected {
				t.Errorf("Index(%s) = %d, want %d", tt.role, idx, tt.expected)
			}
		})
	}

	if columns.Len() != 5 {
		t.Errorf("Len() = %d, want 5", columns.Len())
	}
	if columns.IsAmbiguous() {
		t.Error("IsAmbiguous() = true for a fully mapped header")
	}
}

func TestBuildColumnMap_InitiationTimeNeverBindsDate(t *testing.T) {
	// The initiation-time column precedes the completion-time column in
	// some layouts; the transaction date must still come from completion.
	header := []string{"Receipt No.", "Initiation Time", "Completion Time", "Details", "Paid In"}
	columns := BuildColumnMap(header)

	idx, ok := columns.Index(RoleTranDate)
	if !ok {
		t.Fatal("RoleTranDate not mapped")
	}
	if idx != 2 {
		t.Errorf("RoleTranDate bound to column %d, want 2 (completion time)", idx)
	}
}

func TestBuildColumnMap_FirstColumnPerRoleWins(t *testing.T) {
	header := []string{"Details", "Other Details"}
	columns := BuildColumnMap(header)

	idx, ok := columns.Index(RoleDescription)
	if !ok || idx != 0 {
		t.Errorf("RoleDescription = (%d, %v), want (0, true)", idx, ok)
	}
	if columns.Len() != 1 {
		t.Errorf("Len() = %d, want 1", columns.Len())
	}
}

func TestBuildColumnMap_ParticularsAlias(t *testing.T) {
	header := []string{"Tran Date", "Particulars", "Credit"}
	columns := BuildColumnMap(header)

	if idx, ok := columns.Index(RoleDescription); !ok || idx != 1 {
		t.Errorf("RoleDescription = (%d, %v), want (1, true)", idx, ok)
	}
}

func TestBuildColumnMap_Ambiguous(t *testing.T) {
	header := []string{"Alpha", "Beta", "Gamma"}
	columns := BuildColumnMap(header)

	if !columns.IsAmbiguous() {
		t.Error("IsAmbiguous() = false for a header with no role keywords")
	}
	if columns.Len() != 0 {
		t.Errorf("Len() = %d, want 0", columns.Len())
	}
}

func TestColumnMap_Cell(t *testing.T) {
	header := []string{"Receipt No.", "Completion Time", "Details", "Paid In"}
	columns := BuildColumnMap(header)
	row := []string{" TJQ8M8C3P9 ", "26-10-2025 14:55:02", "Pay Bill Online", "12,000.00"}

	tests := []struct {
		name     string
		role     Role
		row      []string
		expected string
	}{
		{"trims cell", RoleReferenceCode, row, "TJQ8M8C3P9"},
		{"mapped cell", RoleCredit, row, "12,000.00"},
		{"unmapped role", RoleDebit, row, ""},
		{"short row", RoleCredit, row[:2], ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := columns.Cell(tt.row, tt.role); got != tt.expected {
				t.Errorf("Cell() = %q, want %q", got, tt.expected)
			}
		})
	}
}
