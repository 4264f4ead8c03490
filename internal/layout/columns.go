package layout

import (
	"strings"
)

// Role names the semantic fields a ledger column can map to.
type Role int

const (
	RoleReferenceCode Role = iota
	RoleTranDate
	RoleDescription
	RoleCredit
	RoleDebit
)

func (r Role) String() string {
	switch r {
	case RoleReferenceCode:
		return "reference_code"
	case RoleTranDate:
		return "tran_date"
	case RoleDescription:
		return "description"
	case RoleCredit:
		return "credit"
	case RoleDebit:
		return "debit"
	default:
		return "unknown"
	}
}

// columnRule pairs a header keyword with the role it assigns. The list is
// evaluated top to bottom per cell and the first match wins, so precedence
// is explicit and testable. "completion time" binds the transaction date;
// "initiation time" deliberately matches nothing even though that column
// also holds date-like values.
type columnRule struct {
	keyword string
	role    Role
}

var columnRules = []columnRule{
	{"receipt no", RoleReferenceCode},
	{"completion time", RoleTranDate},
	{"details", RoleDescription},
	{"particulars", RoleDescription},
	{"paid in", RoleCredit},
	{"withdrawn", RoleDebit},
}

// ColumnMap assigns semantic roles to column indices. Built once per
// document from the canonical header and immutable afterwards.
type ColumnMap struct {
	indices map[Role]int
}

// BuildColumnMap scans the header row once, matching each cell against the
// ordered rule list (case-insensitive substring). A column holds at most
// one role and the first column matched for a role keeps it. Roles absent
// from the header stay unmapped; their fields remain empty downstream.
func BuildColumnMap(header []string) ColumnMap {
	indices := make(map[Role]int)
	claimed := make(map[int]bool)

	for idx, cell := range header {
		text := strings.ToLower(strings.TrimSpace(cell))
		if text == "" || claimed[idx] {
			continue
		}

		for _, rule := range columnRules {
			if !strings.Contains(text, rule.keyword) {
				continue
			}
			if _, taken := indices[rule.role]; !taken {
				indices[rule.role] = idx
				claimed[idx] = true
			}
			break
		}
	}

	return ColumnMap{indices: indices}
}

// Index returns the column index for a role, or ok=false when the role was
// not found in the header.
func (m ColumnMap) Index(role Role) (int, bool) {
	idx, ok := m.indices[role]
	return idx, ok
}

// Cell returns the trimmed cell value for a role in the given row, or ""
// when the role is unmapped or the row is short.
func (m ColumnMap) Cell(row []string, role Role) string {
	idx, ok := m.indices[role]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Len returns the number of mapped roles.
func (m ColumnMap) Len() int {
	return len(m.indices)
}

// IsAmbiguous reports whether the header matched no role keywords at all,
// the AmbiguousLayout degradation case: processing continues but every
// mapped field stays empty.
func (m ColumnMap) IsAmbiguous() bool {
	return len(m.indices) == 0
}
