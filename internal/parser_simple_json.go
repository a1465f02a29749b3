package internal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// SimpleJSONFormat is a hand-editable JSON form of a Datev file, mostly used for fixtures.
// Example:
//
//	{
//	  "header": "Waehrung;VorzBetrag;RechNr;BelegDatum;...",
//	  "records": [
//	    {"currency": "EUR", "value": "10.00", "date": "0101", "booking_text": "Miete", "account": "100"},
//	    {"currency": "EUR", "value": "-2,50", "date": "0101", "booking_text": "Kasse", "account": "0"}
//	  ]
//	}
//
// Numeric values are strings and accept the decimal-comma convention.
type SimpleJSONFormat struct {
	Header  string             `json:"header"`
	Records []SimpleJSONRecord `json:"records"`
}

type SimpleJSONRecord struct {
	Currency      string `json:"currency"`
	Value         string `json:"value"`
	ReceiptNumber string `json:"receipt_number"`
	Date          string `json:"date"`
	BookingText   string `json:"booking_text"`
	VatRate       string `json:"vat_rate"`
	BU            string `json:"bu"`
	Account       string `json:"account"`
	CostCenter1   string `json:"cost_center_1"`
	CostCenter2   string `json:"cost_center_2"`
	CostQuantity  string `json:"cost_quantity"`
	Discount      string `json:"discount"`
	Message       string `json:"message"`
}

// ParseSimpleJSON parses a JSON file in the simple JSON format
func ParseSimpleJSON(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Document{}, &FileOpenError{Path: path, Err: err}
	}

	var jsonData SimpleJSONFormat
	if err := json.Unmarshal(data, &jsonData); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	doc := &Document{Header: jsonData.Header}
	for i, jr := range jsonData.Records {
		rec, err := jr.toRecord()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		doc.Records = append(doc.Records, rec)
	}
	return doc, nil
}

func (jr SimpleJSONRecord) toRecord() (Record, error) {
	rec := Record{
		Currency:      jr.Currency,
		ReceiptNumber: jr.ReceiptNumber,
		Date:          jr.Date,
		BookingText:   jr.BookingText,
		BU:            jr.BU,
		Account:       jr.Account,
		CostCenter1:   jr.CostCenter1,
		CostCenter2:   jr.CostCenter2,
		CostQuantity:  jr.CostQuantity,
		Message:       jr.Message,
	}
	numeric := []struct {
		field string
		token string
		dst   *decimal.Decimal
	}{
		{"value", jr.Value, &rec.Value},
		{"vatRate", jr.VatRate, &rec.VatRate},
		{"discount", jr.Discount, &rec.Discount},
	}
	for _, n := range numeric {
		d, err := parseDecimal(n.token)
		if err != nil {
			return Record{}, &ParseError{Field: n.field, Token: n.token, Err: err}
		}
		*n.dst = d
	}
	return rec, nil
}

func init() {
	RegisterLoader("simple-json", LoaderFunc(ParseSimpleJSON))
}
