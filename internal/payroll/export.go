package payroll

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/sweet-solutions/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ExportHeader is the fixed column order for both export formats.
var ExportHeader = []string{
	"Employee Name", "Role", "Period", "Hours Worked", "Hourly Rate",
	"Total Pay", "Overtime Hours", "Overtime Pay", "Net Pay", "Status",
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func exportRow(entry *domain.PayrollEntry) []string {
	return []string{
		entry.EmployeeName,
		entry.Role,
		entry.Period,
		formatNumber(entry.HoursWorked),
		formatNumber(entry.HourlyRate),
		formatNumber(entry.TotalPay),
		formatNumber(entry.OvertimeHours),
		formatNumber(entry.OvertimePay),
		formatNumber(entry.NetPay),
		string(entry.Status),
	}
}

// ExportCSV renders the entries as RFC 4180 CSV: header plus one line per
// entry, with quoting applied wherever names or roles contain commas, quotes
// or newlines.
func ExportCSV(entries []*domain.PayrollEntry) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	if err := w.Write(ExportHeader); err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if err := w.Write(exportRow(entry)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ExportXLSX renders the entries as a single-sheet workbook with the same
// columns as the CSV export, keeping the numeric cells numeric.
func ExportXLSX(entries []*domain.PayrollEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Payroll"
	f.SetSheetName(f.GetSheetName(0), sheet)

	header := make([]any, len(ExportHeader))
	for i, col := range ExportHeader {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, entry := range entries {
		row := []any{
			entry.EmployeeName,
			entry.Role,
			entry.Period,
			entry.HoursWorked,
			entry.HourlyRate,
			entry.TotalPay,
			entry.OvertimeHours,
			entry.OvertimePay,
			entry.NetPay,
			string(entry.Status),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
