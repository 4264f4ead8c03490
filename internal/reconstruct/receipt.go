package reconstruct

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"golang-statement-parser/internal/models"
	"golang-statement-parser/internal/normalize"
	"golang-statement-parser/pkg/logger"
)

// merchantPhrasePattern recognizes the narrative openers of receipt-ledger
// lines that lost their leading code to extraction noise.
var merchantPhrasePattern = regexp.MustCompile(`(?i)\bpay\s+bill\b|\bmerchant\s+payment\b`)

// statusKeywordPattern terminates the description span.
var statusKeywordPattern = regexp.MustCompile(`(?i)^(completed|failed|pending|processing)$`)

// accountMarkerPattern opens a description span at an account reference.
var accountMarkerPattern = regexp.MustCompile(`(?i)^acc\.?$`)

// currencyMarkerPattern matches bare currency tokens, which end a
// description span without being amounts themselves.
var currencyMarkerPattern = regexp.MustCompile(`(?i)^kes$`)

// receiptClaimer handles the receipt-ledger sub-style: one transaction per
// line, keyed by an opaque reference code, with the running balance and the
// credited amount trailing a status keyword in that order.
type receiptClaimer struct {
	config *Config
	logger logger.Logger
}

func (c *receiptClaimer) name() string { return "receipt_ledger" }

// claim accepts a line when it leads with a reference code, or when it
// carries a merchant-payment phrase together with an embedded date-time.
// A claimed line always advances the cursor by exactly one; the sub-style
// never wraps.
func (c *receiptClaimer) claim(lines []string, idx int) (claim, bool) {
	line := strings.TrimSpace(lines[idx])

	leadingCode := normalize.LeadingReceiptCode.MatchString(line) &&
		!normalize.LeadingDatePattern.MatchString(line)
	phraseStyle := merchantPhrasePattern.MatchString(line) &&
		normalize.DateTimePattern.MatchString(line)

	if !leadingCode && !phraseStyle {
		return claim{}, false
	}

	record, guessed := c.reconstructLine(line)
	return claim{advance: 1, record: record, guessed: guessed}, true
}

// reconstructLine rebuilds one receipt-ledger transaction, or returns nil
// when the date, description, or a positive credit cannot all be found.
func (c *receiptClaimer) reconstructLine(line string) (*models.TransactionRecord, bool) {
	tranDate, valueDate, ok := c.findDates(line)
	if !ok {
		return nil, false
	}

	tokens := strings.Fields(line)

	descStart, descEnd := c.descriptionSpan(tokens)
	if descStart < 0 {
		return nil, false
	}
	particulars := models.NormalizeWhitespace(strings.Join(tokens[descStart:descEnd], " "))
	if particulars == "" {
		return nil, false
	}

	credit, guessed := c.findCredit(tokens, descEnd)
	if !credit.IsPositive() {
		return nil, false
	}

	record := models.NewTransactionRecord(tranDate, particulars, credit)
	if valueDate != nil {
		record.ValueDate = valueDate
	}
	if m := normalize.EmbeddedReceiptCode.FindString(line); m != "" {
		record.TransactionCode = m
	}
	return record, guessed
}

// findDates extracts the line's date-times: the first occurrence is the
// transaction date, the second (when present) the value date. A line
// without any date-time falls back to its first bare date-shaped token.
func (c *receiptClaimer) findDates(line string) (time.Time, *time.Time, bool) {
	matches := normalize.DateTimePattern.FindAllStringSubmatch(line, 2)
	if len(matches) > 0 {
		tran, ok := normalize.ParseDate(matches[0][1])
		if !ok {
			return time.Time{}, nil, false
		}
		if len(matches) > 1 {
			if vd, ok := normalize.ParseDate(matches[1][1]); ok {
				return tran, &vd, true
			}
		}
		return tran, nil, true
	}

	for _, token := range strings.Fields(line) {
		if t, ok := normalize.ParseDate(token); ok {
			return t, nil, true
		}
	}

	return time.Time{}, nil, false
}

// descriptionSpan locates the narrative: it opens at a merchant phrase or
// an account marker and runs until a status keyword, a currency token, or
// an amount. Returns start = -1 when no marker is present.
func (c *receiptClaimer) descriptionSpan(tokens []string) (int, int) {
	start := -1
	for i, token := range tokens {
		if accountMarkerPattern.MatchString(token) {
			start = i
			break
		}
		if i+1 < len(tokens) {
			lower := strings.ToLower(token)
			next := strings.ToLower(tokens[i+1])
			if (lower == "pay" && next == "bill") || (lower == "merchant" && next == "payment") {
				start = i
				break
			}
		}
	}
	if start < 0 {
		return -1, -1
	}

	end := len(tokens)
	for j := start + 1; j < len(tokens); j++ {
		token := tokens[j]
		if statusKeywordPattern.MatchString(token) ||
			currencyMarkerPattern.MatchString(token) ||
			strongAmountPattern.MatchString(token) {
			end = j
			break
		}
	}

	return start, end
}

// findCredit resolves the credited amount from the tokens trailing the
// description. After the status keyword the first amount is the running
// balance and the second the credit; a lone amount is accepted as the
// credit only inside the plausible contribution range, and such records
// are flagged as heuristic guesses.
func (c *receiptClaimer) findCredit(tokens []string, descEnd int) (decimal.Decimal, bool) {
	searchFrom := descEnd
	for j := descEnd; j < len(tokens); j++ {
		if statusKeywordPattern.MatchString(tokens[j]) {
			searchFrom = j + 1
			break
		}
	}
	if searchFrom > len(tokens) {
		searchFrom = len(tokens)
	}

	var amounts []amountToken
	for _, amt := range amountTokens(tokens[searchFrom:]) {
		if amt.value.IsPositive() {
			amounts = append(amounts, amt)
		}
	}

	switch {
	case len(amounts) >= 2:
		return amounts[1].value, false
	case len(amounts) == 1:
		value := amounts[0].value
		if value.GreaterThanOrEqual(c.config.MinPlausibleCredit) &&
			value.LessThanOrEqual(c.config.MaxPlausibleCredit) {
			return value, true
		}
	}

	return decimal.Zero, false
}
