// Package reconstruct reassembles transaction records from flattened
// statement text: ordered lines with no reliable column boundaries.
//
// Two layout sub-styles share the free-text channel. A receipt-ledger line
// leads with an opaque reference code and carries everything on one line; a
// date-ledger entry leads with a calendar date and may wrap its narrative
// across several extraction lines before the amounts appear. Each sub-style
// is handled by an independent line claimer; claimers are tried in a fixed
// order and each either claims the line (returning any record produced and
// how far the cursor advances) or declines.
//
// The scan is a single forward pass. The cursor never revisits a consumed
// line and lookahead is bounded, so reconstruction is deterministic and
// runs in one pass over the input.
package reconstruct

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"golang-statement-parser/internal/models"
	"golang-statement-parser/internal/normalize"
	"golang-statement-parser/pkg/errors"
	"golang-statement-parser/pkg/logger"
)

// headerKeywords marks lines that repeat column headers in any of the
// observed phrasings. Lines containing any of these never start a
// transaction.
var headerKeywords = []string{
	"tran date",
	"value date",
	"particulars",
	"credit",
	"debit",
	"balance",
	"narration",
	"description",
	"instrument",
	"receipt no",
	"initiation time",
	"completion time",
	"paid in",
	"withdrawn",
	"transaction status",
	"reason type",
	"other party info",
	"trade order id",
	"currency",
}

// Config holds the tunable constants of the reconstruction heuristics.
// The plausible-credit range and the positional amount reading were tuned
// against a specific layout sample, so they are configuration, not truth.
type Config struct {
	// LookaheadLines is how many lines past the opening line the
	// date-ledger claimer may inspect. Wrapped narrative can occupy all
	// but the last of them; the amount line must fall inside the window.
	LookaheadLines int
	// MinPlausibleCredit and MaxPlausibleCredit bound the range in which
	// a lone trailing amount is accepted as the credit.
	MinPlausibleCredit decimal.Decimal
	MaxPlausibleCredit decimal.Decimal
}

// DefaultConfig returns the tuned defaults: a window of 5 lines past the
// opening line (4 wrapped description lines plus the amount line) and a
// 100 to 1,000,000 plausible range.
func DefaultConfig() *Config {
	return &Config{
		LookaheadLines:     5,
		MinPlausibleCredit: decimal.NewFromInt(100),
		MaxPlausibleCredit: decimal.NewFromInt(1000000),
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.LookaheadLines < 0 {
		return fmt.Errorf("lookahead lines cannot be negative")
	}
	if c.MinPlausibleCredit.IsNegative() {
		return fmt.Errorf("minimum plausible credit cannot be negative")
	}
	if c.MaxPlausibleCredit.LessThan(c.MinPlausibleCredit) {
		return fmt.Errorf("maximum plausible credit cannot be below the minimum")
	}
	return nil
}

// claim is the tagged result of a claimer accepting a line: how many lines
// the cursor advances (always at least one) and the record produced, nil
// when the claimer consumed the lines without emitting one.
type claim struct {
	advance int
	record  *models.TransactionRecord
	// guessed marks records whose credit came from a single-amount
	// heuristic rather than an unambiguous pair.
	guessed bool
}

// lineClaimer inspects the line at lines[idx], with bounded lookahead, and
// either claims it or declines.
type lineClaimer interface {
	name() string
	claim(lines []string, idx int) (claim, bool)
}

// Stats counts what happened during one document's reconstruction.
type Stats struct {
	LinesScanned     int
	HeaderLines      int
	BlankLines       int
	UnclaimedLines   int
	ReceiptClaims    int
	DateLedgerClaims int
	DroppedNoAmounts int
	DroppedDebitOnly int
	HeuristicGuesses int
	RecordsEmitted   int
}

// String returns a human-readable summary of reconstruction statistics
func (s *Stats) String() string {
	return fmt.Sprintf("Reconstructed %d records from %d lines (%d header, %d blank, %d unclaimed, %d no amounts, %d debit-only, %d guessed)",
		s.RecordsEmitted, s.LinesScanned, s.HeaderLines, s.BlankLines,
		s.UnclaimedLines, s.DroppedNoAmounts, s.DroppedDebitOnly, s.HeuristicGuesses)
}

// Reconstructor performs the forward scan over a document's flattened
// lines. State is scoped to one document and discarded afterwards.
type Reconstructor struct {
	config   *Config
	claimers []lineClaimer
	logger   logger.Logger
}

// NewReconstructor creates a Reconstructor with the given configuration.
func NewReconstructor(config *Config) (*Reconstructor, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, errors.ConfigurationError(
			errors.CodeInvalidConfig,
			"reconstructor_config",
			config,
			err,
		)
	}

	log := logger.GetGlobalLogger().WithComponent("line_reconstructor")

	r := &Reconstructor{
		config: config,
		logger: log,
	}

	// Fixed claimer order: the receipt style is keyed on a reference
	// code that a date-led line can never carry, so it goes first.
	r.claimers = []lineClaimer{
		&receiptClaimer{config: config, logger: log},
		&dateLedgerClaimer{config: config, logger: log},
	}

	return r, nil
}

// Reconstruct scans the lines once, front to back, and returns the records
// produced in source order.
func (r *Reconstructor) Reconstruct(lines []string) ([]*models.TransactionRecord, *Stats) {
	stats := &Stats{}
	var records []*models.TransactionRecord

	r.logger.WithField("lines", len(lines)).Debug("Starting line reconstruction")

	i := 0
	for i < len(lines) {
		stats.LinesScanned++
		line := strings.TrimSpace(lines[i])

		if line == "" {
			stats.BlankLines++
			i++
			continue
		}

		if isHeaderLine(line) {
			stats.HeaderLines++
			i++
			continue
		}

		claimed := false
		for _, claimer := range r.claimers {
			result, ok := claimer.claim(lines, i)
			if !ok {
				continue
			}

			claimed = true
			if result.record != nil {
				records = append(records, result.record)
				stats.RecordsEmitted++
				if result.guessed {
					stats.HeuristicGuesses++
					r.logger.WithFields(logger.Fields{
						"claimer": claimer.name(),
						"line":    i,
						"credit":  result.record.Credit.String(),
					}).Warn("Credit accepted from a single-amount heuristic")
				}
			} else {
				r.countDrop(claimer, stats)
			}

			switch claimer.name() {
			case "receipt_ledger":
				stats.ReceiptClaims++
			case "date_ledger":
				stats.DateLedgerClaims++
			}

			if result.advance < 1 {
				result.advance = 1
			}
			i += result.advance
			break
		}

		if !claimed {
			stats.UnclaimedLines++
			i++
		}
	}

	r.logger.WithField("summary", stats.String()).Debug("Finished line reconstruction")

	return records, stats
}

// countDrop attributes a recordless claim to the right counter. The
// date-ledger claimer drops candidates that never resolved amounts or that
// turned out debit-only; the receipt claimer drops lines missing a date,
// description or credit.
func (r *Reconstructor) countDrop(claimer lineClaimer, stats *Stats) {
	switch c := claimer.(type) {
	case *dateLedgerClaimer:
		if c.lastDropDebitOnly {
			stats.DroppedDebitOnly++
		} else {
			stats.DroppedNoAmounts++
		}
	default:
		stats.DroppedNoAmounts++
	}
}

// isHeaderLine reports whether a line repeats a recognized column header.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	for _, keyword := range headerKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// amountTokens returns the indices and values of the tokens that are
// amount-shaped: a full token of digits with optional thousands separators
// and a mandatory two-digit decimal part. Requiring the decimal part keeps
// date fragments and bare reference numbers out; a token with letters
// touching digits (a code fragment) can never match.
func amountTokens(tokens []string) []amountToken {
	var found []amountToken
	for idx, token := range tokens {
		if !strongAmountPattern.MatchString(token) {
			continue
		}
		value := normalize.ParseAmount(token)
		if !value.IsNegative() {
			found = append(found, amountToken{index: idx, value: value})
		}
	}
	return found
}

// strongAmountPattern is the shape of a money token in these statements:
// "12,000.00", "1,560,100.00", "500.00".
var strongAmountPattern = regexp.MustCompile(`^[\d,]+\.\d{2}$`)

type amountToken struct {
	index int
	value decimal.Decimal
}

// lineAmounts counts amount-shaped tokens on a whole line.
func lineAmounts(line string) []amountToken {
	return amountTokens(strings.Fields(strings.TrimSpace(line)))
}
