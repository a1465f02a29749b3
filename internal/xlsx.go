package internal

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXSheet is the sheet name used for exported records
const XLSXSheet = "Datev"

// WriteRecordsXLSX writes a review workbook: the header line split into cells,
// then one row per record with the three amounts as numeric cells.
func WriteRecordsXLSX(path, header string, records []Record) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"; rename rather than add to keep a single sheet
	if err := f.SetSheetName(f.GetSheetName(0), XLSXSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	headerCells := make([]interface{}, 0, FieldCount)
	for _, tok := range SplitLine(header) {
		headerCells = append(headerCells, tok)
	}
	if err := f.SetSheetRow(XLSXSheet, "A1", &headerCells); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			rec.Currency,
			rec.Value.InexactFloat64(),
			rec.ReceiptNumber,
			rec.Date,
			rec.BookingText,
			rec.VatRate.InexactFloat64(),
			rec.BU,
			rec.Account,
			rec.CostCenter1,
			rec.CostCenter2,
			rec.CostQuantity,
			rec.Discount.InexactFloat64(),
			rec.Message,
		}
		if err := f.SetSheetRow(XLSXSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return &FileWriteError{Path: path, Err: err}
	}
	return nil
}
