package internal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	fieldSeparator = ";"
	quote          = `"`
)

// ParseError reports a numeric column that could not be parsed.
type ParseError struct {
	Line  int    // 1-based line in the source file, 0 when unknown
	Field string // Datev column name, e.g. "value"
	Token string // token after quote stripping, before comma substitution
	Err   error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: parsing %s %q: %v", e.Line, e.Field, e.Token, e.Err)
	}
	return fmt.Sprintf("parsing %s %q: %v", e.Field, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SplitLine splits a line on ";" and strips every quote character from each token.
// A trailing separator yields a final empty token.
func SplitLine(line string) []string {
	tokens := strings.Split(line, fieldSeparator)
	for i, tok := range tokens {
		tokens[i] = strings.ReplaceAll(tok, quote, "")
	}
	return tokens
}

// ParseRecord parses one data line. Missing trailing columns keep their zero
// value and columns beyond the thirteenth are ignored.
func ParseRecord(line string) (Record, error) {
	var r Record
	for i, tok := range SplitLine(line) {
		var err error
		switch i {
		case 0:
			r.Currency = tok
		case 1:
			r.Value, err = parseDecimal(tok)
		case 2:
			r.ReceiptNumber = tok
		case 3:
			r.Date = tok
		case 4:
			r.BookingText = tok
		case 5:
			r.VatRate, err = parseDecimal(tok)
		case 6:
			r.BU = tok
		case 7:
			r.Account = tok
		case 8:
			r.CostCenter1 = tok
		case 9:
			r.CostCenter2 = tok
		case 10:
			r.CostQuantity = tok
		case 11:
			r.Discount, err = parseDecimal(tok)
		case 12:
			r.Message = tok
		}
		if err != nil {
			return Record{}, &ParseError{Field: FieldNames[i], Token: tok, Err: err}
		}
	}
	return r, nil
}

// parseDecimal reads a decimal-comma number. Empty tokens are zero.
func parseDecimal(tok string) (decimal.Decimal, error) {
	if tok == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.ReplaceAll(tok, ",", "."))
}

// FormatRecord renders a record as 13 quoted columns joined by ";".
// Numbers are written with a dot separator, so a parse/format round trip is
// not byte-identical for numeric columns that used a comma.
func FormatRecord(r Record) string {
	fields := [FieldCount]string{
		r.Currency,
		r.Value.String(),
		r.ReceiptNumber,
		r.Date,
		r.BookingText,
		r.VatRate.String(),
		r.BU,
		r.Account,
		r.CostCenter1,
		r.CostCenter2,
		r.CostQuantity,
		r.Discount.String(),
		r.Message,
	}

	var sb strings.Builder
	for i, f := range fields {
		if i > 0 {
			sb.WriteString(fieldSeparator)
		}
		sb.WriteString(quote)
		sb.WriteString(f)
		sb.WriteString(quote)
	}
	return sb.String()
}
