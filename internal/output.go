package internal

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
)

// OutputOptions controls how compacted records are displayed
type OutputOptions struct {
	// Currency is used for records whose currency column is empty
	Currency string
	// DailyAccount highlights pass-through rows
	DailyAccount string
}

// JSONOutput is the root JSON output object
type JSONOutput struct {
	Files   []JSONFile  `json:"files"`
	Summary JSONSummary `json:"summary"`
}

// JSONSummary contains aggregate statistics over all files
type JSONSummary struct {
	Files         int `json:"files"`
	Failed        int `json:"failed"`
	InputRecords  int `json:"input_records"`
	OutputRecords int `json:"output_records"`
}

// JSONFile is the JSON output format for one compacted file
type JSONFile struct {
	Input      string       `json:"input"`
	Output     string       `json:"output"`
	Header     string       `json:"header"`
	Records    []JSONRecord `json:"records"`
	Stats      Stats        `json:"stats"`
	Unreadable bool         `json:"unreadable,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// JSONRecord mirrors Record with decimal values rendered as strings
type JSONRecord struct {
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

func toJSONRecord(r Record) JSONRecord {
	return JSONRecord{
		Currency:      r.Currency,
		Value:         r.Value.String(),
		ReceiptNumber: r.ReceiptNumber,
		Date:          r.Date,
		BookingText:   r.BookingText,
		VatRate:       r.VatRate.String(),
		BU:            r.BU,
		Account:       r.Account,
		CostCenter1:   r.CostCenter1,
		CostCenter2:   r.CostCenter2,
		CostQuantity:  r.CostQuantity,
		Discount:      r.Discount.String(),
		Message:       r.Message,
	}
}

// PrintResultsJSON outputs compaction results in JSON format
func PrintResultsJSON(w io.Writer, results []*Result) error {
	output := JSONOutput{Files: []JSONFile{}}
	for _, res := range results {
		file := JSONFile{
			Input:      res.Input,
			Output:     res.Output,
			Header:     res.Header,
			Records:    make([]JSONRecord, 0, len(res.Records)),
			Stats:      res.Stats,
			Unreadable: res.Unreadable,
		}
		for _, rec := range res.Records {
			file.Records = append(file.Records, toJSONRecord(rec))
		}
		if res.Err != nil {
			file.Error = res.Err.Error()
			output.Summary.Failed++
		}
		output.Files = append(output.Files, file)
		output.Summary.InputRecords += res.Stats.Input
		output.Summary.OutputRecords += res.Stats.Output
	}
	output.Summary.Files = len(output.Files)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// PrintRecordsTable prints the header line followed by the records as a formatted table
func PrintRecordsTable(w io.Writer, header string, records []Record, opts OutputOptions) {
	fmt.Fprintln(w, header)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Cur", "Value", "Receipt", "Date", "Text", "VAT", "BU", "Account", "Cost 1", "Cost 2", "Qty", "Discount", "Message"})

	total := decimal.Zero
	for _, rec := range records {
		cur := GetCurrency(currencyOrDefault(rec.Currency, opts.Currency))
		total = total.Add(rec.Value)

		account := rec.Account
		if opts.DailyAccount != "" && rec.IsDaily(opts.DailyAccount) {
			account = text.FgYellow.Sprint(rec.Account)
		}

		discount := ""
		if !rec.Discount.IsZero() {
			discount = cur.Format(rec.Discount)
		}

		t.AppendRow(table.Row{
			rec.Currency,
			cur.Format(rec.Value),
			rec.ReceiptNumber,
			rec.Date,
			truncate(rec.BookingText, 40),
			cur.FormatRate(rec.VatRate),
			rec.BU,
			account,
			rec.CostCenter1,
			rec.CostCenter2,
			rec.CostQuantity,
			discount,
			truncate(rec.Message, 20),
		})
	}

	t.AppendSeparator()
	totalCur := GetCurrency(opts.Currency)
	if len(records) > 0 {
		totalCur = GetCurrency(currencyOrDefault(records[0].Currency, opts.Currency))
	}
	t.AppendFooter(table.Row{
		text.Bold.Sprint(fmt.Sprintf("%d", len(records))),
		text.Bold.Sprint(totalCur.Format(total)),
	})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
		{Number: 12, Align: text.AlignRight},
	})

	t.Render()
}

func currencyOrDefault(code, fallback string) string {
	if code == "" {
		return fallback
	}
	return code
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-2]) + ".."
}
