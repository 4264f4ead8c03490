package reconstruct

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"golang-statement-parser/internal/models"
	"golang-statement-parser/internal/normalize"
	"golang-statement-parser/pkg/logger"
)

// scanState drives the continuation merge. The loop is an explicit state
// machine over the cursor and the description buffer so the forward-only
// invariant stays checkable.
type scanState int

const (
	// stateSeekingAmounts: no continuation text absorbed yet.
	stateSeekingAmounts scanState = iota
	// stateAccumulating: wrapped description lines are being buffered.
	stateAccumulating
	// stateDone: an amount line resolved the entry.
	stateDone
)

// dateLedgerClaimer handles the date-ledger sub-style: each transaction
// opens with a calendar date, its narrative may wrap across several
// extracted lines, and the amounts arrive as a (credit, balance) pair on
// whichever line the extraction put them.
type dateLedgerClaimer struct {
	config *Config
	logger logger.Logger

	// lastDropDebitOnly distinguishes the two recordless outcomes for
	// the stats counters.
	lastDropDebitOnly bool
}

func (c *dateLedgerClaimer) name() string { return "date_ledger" }

// claim accepts any line leading with a date. The entry is resolved on the
// same line when it already carries an amount pair; otherwise the claimer
// looks ahead a bounded number of lines, merging wrapped description
// fragments until a pair appears or the window closes.
func (c *dateLedgerClaimer) claim(lines []string, idx int) (claim, bool) {
	line := strings.TrimSpace(lines[idx])
	if !normalize.LeadingDatePattern.MatchString(line) {
		return claim{}, false
	}

	c.lastDropDebitOnly = false

	tokens := strings.Fields(line)
	tranDate, ok := normalize.ParseDate(tokens[0])
	if !ok {
		// Date-shaped but unparseable: the candidate is consumed and
		// dropped, never retried.
		return claim{advance: 1}, true
	}

	var valueDate *time.Time
	descStart := 1
	if len(tokens) > 1 {
		if vd, ok := normalize.ParseDate(tokens[1]); ok {
			valueDate = &vd
			descStart = 2
		}
	}

	entry := c.resolveEntry(lines, idx, tokens, descStart)
	if !entry.found {
		// No amounts inside the lookahead window: advance one line and
		// drop the candidate.
		return claim{advance: 1}, true
	}

	if !entry.credit.IsPositive() {
		// Debit-only occurrence: a second amount was present but the
		// credit position resolved to zero. Discarded by policy.
		c.lastDropDebitOnly = true
		return claim{advance: entry.advance}, true
	}

	record := models.NewTransactionRecord(tranDate, strings.Join(entry.description, " "), entry.credit)
	if valueDate != nil {
		record.ValueDate = valueDate
	}
	balance := entry.balance
	record.Balance = &balance

	return claim{advance: entry.advance, record: record}, true
}

// resolvedEntry is the outcome of the amount search.
type resolvedEntry struct {
	found       bool
	credit      decimal.Decimal
	balance     decimal.Decimal
	description []string
	advance     int
}

// resolveEntry locates the entry's amount pair, on the opening line or by
// bounded lookahead, accumulating wrapped description fragments as it
// goes. When more than two amount tokens are present on the resolved
// amount line the last two win: a token followed by further numeric tokens
// cannot be the terminal balance, so the pair is read off the tail.
func (c *dateLedgerClaimer) resolveEntry(lines []string, idx int, tokens []string, descStart int) resolvedEntry {
	entry := resolvedEntry{advance: 1}

	opening := amountTokens(tokens)
	if len(opening) >= 2 {
		pair := opening[len(opening)-2:]
		entry.found = true
		entry.credit = pair[0].value
		entry.balance = pair[1].value
		if descStart < pair[0].index {
			entry.description = tokens[descStart:pair[0].index]
		}
		return entry
	}

	// The opening line had at most one amount. Buffer its remaining text
	// and walk the lookahead window.
	var pending *amountToken
	if len(opening) == 1 {
		pending = &opening[0]
		for t := descStart; t < len(tokens); t++ {
			if t != pending.index {
				entry.description = append(entry.description, tokens[t])
			}
		}
	} else if descStart < len(tokens) {
		entry.description = append(entry.description, tokens[descStart:]...)
	}

	state := stateSeekingAmounts
	for j := idx + 1; j <= idx+c.config.LookaheadLines && j < len(lines) && state != stateDone; j++ {
		next := strings.TrimSpace(lines[j])
		if next == "" {
			continue
		}

		// A fresh date signals the next transaction; never consume it.
		if normalize.LeadingDatePattern.MatchString(next) {
			break
		}

		// Stray header repeats inside the window are noise, not
		// narrative.
		if isHeaderLine(next) {
			continue
		}

		nextAmounts := lineAmounts(next)
		switch {
		case len(nextAmounts) >= 2:
			pair := nextAmounts[len(nextAmounts)-2:]
			entry.found = true
			entry.credit = pair[0].value
			entry.balance = pair[1].value
			entry.advance = j - idx + 1
			state = stateDone

		case len(nextAmounts) == 1 && pending != nil:
			// The lone amount pairs with the one carried forward:
			// the prior single is the credit, this one the balance.
			entry.found = true
			entry.credit = pending.value
			entry.balance = nextAmounts[0].value
			entry.advance = j - idx + 1
			state = stateDone

		case len(nextAmounts) == 1:
			// A lone amount with nothing pending: hold it and treat
			// the line's text as wrapped narrative.
			amt := nextAmounts[0]
			pending = &amt
			nextTokens := strings.Fields(next)
			for t, token := range nextTokens {
				if t != amt.index {
					entry.description = append(entry.description, token)
				}
			}
			state = stateAccumulating

		default:
			entry.description = append(entry.description, strings.Fields(next)...)
			state = stateAccumulating
		}
	}

	return entry
}
