package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/motorph/payroll-backend-go/internal/domain/payroll"
	"github.com/xuri/excelize/v2"
)

const registerSheet = "Register"

var registerHeader = []string{
	"Payroll ID", "Employee ID", "Employee", "Position", "Period Start", "Period End",
	"Monthly Rate", "Days Worked", "Overtime Pay", "Gross Pay",
	"SSS", "PhilHealth", "Pag-IBIG", "Tardiness", "Total Deductions", "Net Pay",
}

// WriteRegisterCSV writes the rows with a header derived from their csv tags.
func WriteRegisterCSV(w io.Writer, rows []payroll.RegisterRow) error {
	if rows == nil {
		rows = []payroll.RegisterRow{}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write csv register: %w", err)
	}
	return nil
}

// WriteRegisterXLSX writes the rows as a single-sheet workbook with a totals line.
func WriteRegisterXLSX(w io.Writer, rows []payroll.RegisterRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), registerSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header := make([]interface{}, len(registerHeader))
	for i, h := range registerHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(registerSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(registerSheet, 1, 1, style)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			r.PayrollID, r.EmployeeID, r.EmployeeName, r.Position, r.PeriodStart, r.PeriodEnd,
			r.MonthlyRate.InexactFloat64(), r.DaysWorked, r.OvertimePay.InexactFloat64(), r.GrossPay.InexactFloat64(),
			r.SSS.InexactFloat64(), r.PhilHealth.InexactFloat64(), r.PagIBIG.InexactFloat64(),
			r.TardinessDeduction.InexactFloat64(), r.TotalDeductions.InexactFloat64(), r.NetPay.InexactFloat64(),
		}
		if err := f.SetSheetRow(registerSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if len(rows) > 0 {
		totalRow := len(rows) + 2
		if err := f.SetCellValue(registerSheet, fmt.Sprintf("A%d", totalRow), "Total"); err != nil {
			return err
		}
		for _, col := range []string{"J", "O", "P"} {
			formula := fmt.Sprintf("SUM(%s2:%s%d)", col, col, totalRow-1)
			if err := f.SetCellFormula(registerSheet, fmt.Sprintf("%s%d", col, totalRow), formula); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx register: %w", err)
	}
	return nil
}
