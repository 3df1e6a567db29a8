// Package export renders stored rate observations as spreadsheets.
package export

import (
	"fmt"
	"time"

	"bankrates/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName       = "rates"
	TimestampLayout = "2006-01-02 15:04:05"
)

var header = []any{"id", "bank", "sell", "buy", "timestamp"}

// FileName is the name a workbook generated at t is sent under.
func FileName(t time.Time) string {
	return fmt.Sprintf("rates_%s.xlsx", t.Format("20060102150405"))
}

// Workbook writes a header row plus one row per observation, in the given order.
func Workbook(history []domain.RateObservation) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet writer: %w", err)
	}
	if err = sw.SetRow("A1", header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, o := range history {
		cell, cellErr := excelize.CoordinatesToCellName(1, i+2)
		if cellErr != nil {
			return nil, cellErr
		}
		row := []any{
			o.ID,
			o.Bank,
			o.Sell.InexactFloat64(),
			o.Buy.InexactFloat64(),
			o.ObservedAt.UTC().Format(TimestampLayout),
		}
		if err = sw.SetRow(cell, row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", o.ID, err)
		}
	}
	if err = sw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
