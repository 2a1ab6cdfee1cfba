package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/motorph/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Payslip is everything printed on one employee's payslip.
type Payslip struct {
	Payroll      *payroll.Payroll
	EmployeeName string
	Position     string
	Allowances   decimal.Decimal
}

// FileName is the archive name for the payslip, unique per employee and period.
func (p Payslip) FileName() string {
	return fmt.Sprintf("payslip_%d_%s_%s.pdf",
		p.Payroll.EmployeeID(),
		p.Payroll.PeriodStart().Format("20060102"),
		p.Payroll.PeriodEnd().Format("20060102"),
	)
}

func (p Payslip) render() *gofpdf.Fpdf {
	pr := p.Payroll
	c := pr.Contributions()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (#%d)", p.EmployeeName, pr.EmployeeID()))
	pdf.Ln(6)
	if p.Position != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Position: %s", p.Position))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s to %s",
		pr.PeriodStart().Format("2006-01-02"), pr.PeriodEnd().Format("2006-01-02")))
	pdf.Ln(6)
	if pr.ID() != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Reference: %s", pr.ID()))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
	}
	line := func(label string, amount decimal.Decimal) {
		pdf.CellFormat(110, 7, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	section("Earnings")
	line("Monthly rate", pr.MonthlyRate())
	pdf.CellFormat(110, 7, "Days worked", "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, fmt.Sprintf("%d", pr.DaysWorked()), "", 1, "R", false, 0, "")
	line(fmt.Sprintf("Overtime (%s h)", pr.OvertimeHours().StringFixed(2)), pr.OvertimePay())
	line("Gross pay", pr.GrossPay())
	pdf.Ln(3)

	section("Deductions")
	line("SSS", c.SSS)
	line("PhilHealth", c.PhilHealth)
	line("Pag-IBIG", c.PagIBIG)
	if pr.TardinessDeduction().IsPositive() {
		line("Late / undertime", pr.TardinessDeduction())
	}
	line("Total deductions", pr.TotalDeductions())
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	line("Net pay", pr.NetPay())
	if p.Allowances.IsPositive() {
		pdf.SetFont("Helvetica", "", 9)
		pdf.Ln(2)
		pdf.Cell(0, 6, fmt.Sprintf("Monthly allowances not included above: %s", p.Allowances.StringFixed(2)))
	}
	return pdf
}

// WritePayslip renders the payslip as PDF into w.
func WritePayslip(w io.Writer, p Payslip) error {
	if p.Payroll == nil {
		return fmt.Errorf("payslip has no payroll")
	}
	if err := p.render().Output(w); err != nil {
		return fmt.Errorf("render payslip: %w", err)
	}
	return nil
}
