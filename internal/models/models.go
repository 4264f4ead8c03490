package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical date form used throughout the output contract.
const DateLayout = "2006-01-02"

// TransactionRecord is the sole output entity of the reconstruction engine.
// Records are created once by an extractor and never mutated afterwards;
// the assembler only filters.
type TransactionRecord struct {
	// TranDate is the calendar date of the transaction. Required.
	TranDate time.Time
	// ValueDate is when funds became effective. Defaults to TranDate
	// when the source document does not carry one.
	ValueDate *time.Time
	// Particulars is the whitespace-normalized narrative. Required.
	Particulars string
	// Credit is the amount paid in. Zero means no credit on this line.
	Credit decimal.Decimal
	// Debit is informational only; the engine is credit-only and never
	// emits debit-only records.
	Debit decimal.Decimal
	// Balance is the optional running balance, never validated.
	Balance *decimal.Decimal
	// TransactionCode is an opaque receipt/instrument identifier.
	TransactionCode string
}

// NewTransactionRecord creates a record with the required fields set and
// the value date defaulted to the transaction date.
func NewTransactionRecord(tranDate time.Time, particulars string, credit decimal.Decimal) *TransactionRecord {
	vd := tranDate
	return &TransactionRecord{
		TranDate:    tranDate,
		ValueDate:   &vd,
		Particulars: NormalizeWhitespace(particulars),
		Credit:      credit,
		Debit:       decimal.Zero,
	}
}

// Validate checks the emission invariants: non-zero transaction date,
// non-empty particulars, credit strictly positive, no negative amounts.
func (r *TransactionRecord) Validate() error {
	if r.TranDate.IsZero() {
		return fmt.Errorf("transaction date cannot be zero")
	}

	if strings.TrimSpace(r.Particulars) == "" {
		return fmt.Errorf("particulars cannot be empty")
	}

	if r.Credit.IsNegative() {
		return fmt.Errorf("credit amount cannot be negative")
	}

	if r.Debit.IsNegative() {
		return fmt.Errorf("debit amount cannot be negative")
	}

	if !r.Credit.IsPositive() {
		return fmt.Errorf("credit amount must be positive")
	}

	return nil
}

// EffectiveValueDate returns the value date, falling back to the
// transaction date when absent.
func (r *TransactionRecord) EffectiveValueDate() time.Time {
	if r.ValueDate != nil {
		return *r.ValueDate
	}
	return r.TranDate
}

// String returns a string representation of the TransactionRecord
func (r *TransactionRecord) String() string {
	return fmt.Sprintf("TransactionRecord{Date: %s, Particulars: %q, Credit: %s}",
		r.TranDate.Format(DateLayout), r.Particulars, r.Credit.String())
}

// Equals compares two TransactionRecord instances for equality
func (r *TransactionRecord) Equals(other *TransactionRecord) bool {
	if other == nil {
		return false
	}

	if !r.TranDate.Equal(other.TranDate) ||
		r.Particulars != other.Particulars ||
		!r.Credit.Equal(other.Credit) ||
		!r.Debit.Equal(other.Debit) ||
		r.TransactionCode != other.TransactionCode {
		return false
	}

	if (r.ValueDate == nil) != (other.ValueDate == nil) {
		return false
	}
	if r.ValueDate != nil && !r.ValueDate.Equal(*other.ValueDate) {
		return false
	}

	if (r.Balance == nil) != (other.Balance == nil) {
		return false
	}
	if r.Balance != nil && !r.Balance.Equal(*other.Balance) {
		return false
	}

	return true
}

// transactionRecordJSON is the wire form of the output contract: dates as
// YYYY-MM-DD strings, amounts as JSON numbers, absent optionals as null.
type transactionRecordJSON struct {
	TranDate        string          `json:"tran_date"`
	ValueDate       *string         `json:"value_date"`
	Particulars     string          `json:"particulars"`
	Credit          json.RawMessage `json:"credit"`
	Debit           json.RawMessage `json:"debit"`
	Balance         json.RawMessage `json:"balance"`
	TransactionCode *string         `json:"transaction_code"`
}

// MarshalJSON implements the output contract for TransactionRecord
func (r *TransactionRecord) MarshalJSON() ([]byte, error) {
	wire := transactionRecordJSON{
		TranDate:    r.TranDate.Format(DateLayout),
		Particulars: r.Particulars,
		Credit:      json.RawMessage(r.Credit.String()),
		Debit:       json.RawMessage(r.Debit.String()),
		Balance:     json.RawMessage("null"),
	}

	if r.ValueDate != nil {
		vd := r.ValueDate.Format(DateLayout)
		wire.ValueDate = &vd
	}

	if r.Balance != nil {
		wire.Balance = json.RawMessage(r.Balance.String())
	}

	if r.TransactionCode != "" {
		code := r.TransactionCode
		wire.TransactionCode = &code
	}

	return json.Marshal(&wire)
}

// UnmarshalJSON implements the inverse of the output contract
func (r *TransactionRecord) UnmarshalJSON(data []byte) error {
	var wire struct {
		TranDate        string           `json:"tran_date"`
		ValueDate       *string          `json:"value_date"`
		Particulars     string           `json:"particulars"`
		Credit          decimal.Decimal  `json:"credit"`
		Debit           decimal.Decimal  `json:"debit"`
		Balance         *decimal.Decimal `json:"balance"`
		TransactionCode *string          `json:"transaction_code"`
	}

	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	tranDate, err := time.Parse(DateLayout, wire.TranDate)
	if err != nil {
		return fmt.Errorf("invalid tran_date format: %w", err)
	}

	r.TranDate = tranDate
	r.Particulars = wire.Particulars
	r.Credit = wire.Credit
	r.Debit = wire.Debit
	r.Balance = wire.Balance
	r.ValueDate = nil
	r.TransactionCode = ""

	if wire.ValueDate != nil {
		vd, err := time.Parse(DateLayout, *wire.ValueDate)
		if err != nil {
			return fmt.Errorf("invalid value_date format: %w", err)
		}
		r.ValueDate = &vd
	}

	if wire.TransactionCode != nil {
		r.TransactionCode = *wire.TransactionCode
	}

	return nil
}

// NormalizeWhitespace collapses runs of whitespace to single spaces and
// trims the ends. Extraction artifacts routinely carry doubled spaces and
// stray tabs inside narrative text.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
