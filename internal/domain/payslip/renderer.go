package payslip

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"paymaster/internal/domain/payroll"
)

// Renderer produces single-page salary statements from finalized payroll
// records. The record set's field schema is the renderer's input contract.
type Renderer struct {
	CompanyName string
}

func NewRenderer(companyName string) *Renderer {
	return &Renderer{CompanyName: companyName}
}

type line struct {
	label  string
	amount float64
}

// Render produces one statement PDF for a single record and period.
func (r *Renderer) Render(rec payroll.Record, month string, year int) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(0, 10, r.CompanyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 8, "Monthly Salary Statement", "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(100, 8, fmt.Sprintf("Employee Name: %s", rec.Name), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("ID: %s", rec.EmpNo), "", 1, "R", false, 0, "")
	pdf.CellFormat(100, 8, fmt.Sprintf("Designation: %s", rec.Designation), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Department: %s", rec.Department), "", 1, "R", false, 0, "")
	pdf.CellFormat(100, 8, fmt.Sprintf("Period: %s %d", month, year), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(95, 8, "Earnings", "1", 0, "C", true, 0, "")
	pdf.CellFormat(95, 8, "Deductions", "1", 1, "C", true, 0, "")

	earnings := []line{
		{"Basic Salary", rec.Basic},
		{"Reimburse Allowances", rec.Reimbursement},
		{"Travelling Allowances", rec.Travel},
		{"Gross Salary", rec.Gross},
	}
	deductions := []line{
		{"Nopay Amount", rec.NopayAmount},
		{"Salary Adjustment", rec.Adjustment},
		{"EPF (Employee)", rec.EPFEmployee},
		{"Govt Tax (Rate+APIT)", rec.TotalTax},
		{"Salary Advances", rec.Advances},
		{"Loan (Inst + Int)", rec.LoanInstallment + rec.LoanInterest},
		{"Stamps Fee", rec.StampFinal},
		{"Others", rec.Others},
	}

	pdf.SetFont("Helvetica", "", 9)
	rows := len(earnings)
	if len(deductions) > rows {
		rows = len(deductions)
	}
	for i := 0; i < rows; i++ {
		if i < len(earnings) {
			pdf.CellFormat(60, 7, earnings[i].label, "L", 0, "L", false, 0, "")
			pdf.CellFormat(35, 7, formatAmount(earnings[i].amount), "R", 0, "R", false, 0, "")
		} else {
			pdf.CellFormat(95, 7, "", "LR", 0, "L", false, 0, "")
		}
		if i < len(deductions) {
			pdf.CellFormat(60, 7, deductions[i].label, "L", 0, "L", false, 0, "")
			pdf.CellFormat(35, 7, formatAmount(deductions[i].amount), "R", 1, "R", false, 0, "")
		} else {
			pdf.CellFormat(95, 7, "", "R", 1, "L", false, 0, "")
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(95, 10, fmt.Sprintf("TOTAL EARNINGS: %s", formatAmount(rec.Gross)), "1", 0, "R", false, 0, "")
	pdf.CellFormat(95, 10, fmt.Sprintf("TOTAL DEDUCTIONS: %s", formatAmount(rec.TotalDeduction)), "1", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.SetFillColor(220, 255, 220)
	pdf.CellFormat(0, 12, fmt.Sprintf("NET SALARY PAYABLE: LKR %s", formatAmount(rec.NetSalary)), "1", 1, "C", true, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, fmt.Sprintf("EPF Company Contribution: %s", formatAmount(rec.EPFCompany)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("ETF Company Contribution: %s", formatAmount(rec.ETFCompany)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Bank: %s  Account: %s", rec.BankName, rec.AccountNo), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderBundle produces a ZIP archive with one statement per record, named
// <EmpNo>_<Name>.pdf.
func (r *Renderer) RenderBundle(records []payroll.Record, month string, year int) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i, rec := range records {
		content, err := r.Render(rec, month, year)
		if err != nil {
			return nil, fmt.Errorf("statement for %s: %w", rec.EmpNo, err)
		}
		name := bundleFileName(rec, i)
		entry, err := zw.Create(name)
		if err != nil {
			return nil, err
		}
		if _, err := entry.Write(content); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func bundleFileName(rec payroll.Record, index int) string {
	empNo := strings.TrimSpace(rec.EmpNo)
	if empNo == "" {
		empNo = strconv.Itoa(index)
	}
	name := strings.ReplaceAll(strings.TrimSpace(rec.Name), " ", "_")
	if name == "" {
		name = "Emp"
	}
	return fmt.Sprintf("%s_%s.pdf", empNo, name)
}

// formatAmount renders a value with thousands separators and two decimals,
// matching the statement's display convention. Engine values stay unrounded;
// rounding happens only here at display time.
func formatAmount(value float64) string {
	formatted := strconv.FormatFloat(value, 'f', 2, 64)
	negative := strings.HasPrefix(formatted, "-")
	if negative {
		formatted = formatted[1:]
	}
	parts := strings.SplitN(formatted, ".", 2)
	whole := parts[0]

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	result := grouped.String() + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}
