package internal

import "github.com/shopspring/decimal"

// DefaultDailyAccount is the account value that marks a record as a daily
// pass-through entry.
const DefaultDailyAccount = "0"

// FieldCount is the number of positional columns in a Datev cash-register line.
const FieldCount = 13

// FieldNames lists the Datev columns in file order.
var FieldNames = [FieldCount]string{
	"currency",
	"value",
	"receiptNumber",
	"date",
	"bookingText",
	"vatRate",
	"bu",
	"account",
	"costCenter1",
	"costCenter2",
	"costQuantity",
	"discount",
	"message",
}

// Record is one parsed line of a Datev cash-register export
type Record struct {
	Currency      string
	Value         decimal.Decimal // signed amount
	ReceiptNumber string
	Date          string // grouping key only, never parsed as a calendar date
	BookingText   string
	VatRate       decimal.Decimal
	BU            string // booking type code
	Account       string
	CostCenter1   string
	CostCenter2   string
	CostQuantity  string
	Discount      decimal.Decimal
	Message       string
}

// Key returns the accumulation key: account and booking text joined by "_".
func (r Record) Key() string {
	return r.Account + "_" + r.BookingText
}

// IsDaily reports whether the record is a pass-through entry for the given sentinel account.
func (r Record) IsDaily(dailyAccount string) bool {
	return r.Account == dailyAccount
}

// Document is the content of one Datev file: the verbatim header line and its records.
type Document struct {
	Header  string
	Records []Record
}
