package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"paymaster/internal/domain/payroll"
)

// Financial column names, matched exactly against the uploaded header row.
const (
	colEmployeeID = "Employee ID"
	colBasic      = "Basic salary"
	colReimburse  = "Reimburse allowances"
	colTravel     = "Travelling allowances"
	colNopayDays  = "Nopay days"
	colAdjustment = "Salary adjustment"
	colTaxRate    = "Tax rate"
	colAPIT       = "APIT"
	colAdvances   = "Salary advances"
	colLoanInst   = "Loan installment"
	colLoanInt    = "Loan interest"
	colOthers     = "Others"
	colStampsFee  = "Stamps fee"
)

var ErrUnsupportedFormat = errors.New("unsupported upload format, expected .xlsx or .csv")

// identityColumns lists identity-describing headers (in their common spelling
// variants) that are discarded at this boundary. Identity fields must come
// exclusively from the employee master, so a sheet-side "Name" can never
// shadow the persisted one.
var identityColumns = map[string]struct{}{
	"Name":           {},
	"name":           {},
	"Employee Name":  {},
	"Designation":    {},
	"designation":    {},
	"Department":     {},
	"department":     {},
	"NIC":            {},
	"Nic":            {},
	"National ID":    {},
	"Bank":           {},
	"Bank Name":      {},
	"Bank name":      {},
	"Account No":     {},
	"Account Number": {},
	"Account no":     {},
	"Joined Date":    {},
	"Joined date":    {},
}

// ParseUpload reads an uploaded financial dataset, dispatching on the file
// extension. Returns one FinancialInput per data row, in sheet order.
func ParseUpload(filename string, r io.Reader) ([]payroll.FinancialInput, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return ParseXLSX(r)
	case ".csv":
		return ParseCSV(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func ParseXLSX(r io.Reader) ([]payroll.FinancialInput, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer book.Close()

	sheet := book.GetSheetName(0)
	if sheet == "" {
		return nil, payroll.ErrEmptyDataset
	}
	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return parseTable(rows)
}

func ParseCSV(r io.Reader) ([]payroll.FinancialInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return parseTable(rows)
}

func parseTable(rows [][]string) ([]payroll.FinancialInput, error) {
	if len(rows) == 0 {
		return nil, payroll.ErrEmptyDataset
	}

	// First occurrence wins for duplicate headers.
	columns := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		name := strings.TrimSpace(header)
		if name == "" {
			continue
		}
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	setters := map[string]func(*payroll.FinancialInput, float64){
		colBasic:      func(in *payroll.FinancialInput, v float64) { in.Basic = v },
		colReimburse:  func(in *payroll.FinancialInput, v float64) { in.Reimbursement = v },
		colTravel:     func(in *payroll.FinancialInput, v float64) { in.Travel = v },
		colNopayDays:  func(in *payroll.FinancialInput, v float64) { in.NopayDays = v },
		colAdjustment: func(in *payroll.FinancialInput, v float64) { in.Adjustment = v },
		colTaxRate:    func(in *payroll.FinancialInput, v float64) { in.TaxRate = v },
		colAPIT:       func(in *payroll.FinancialInput, v float64) { in.APIT = v },
		colAdvances:   func(in *payroll.FinancialInput, v float64) { in.Advances = v },
		colLoanInst:   func(in *payroll.FinancialInput, v float64) { in.LoanInstallment = v },
		colLoanInt:    func(in *payroll.FinancialInput, v float64) { in.LoanInterest = v },
		colOthers:     func(in *payroll.FinancialInput, v float64) { in.Others = v },
		colStampsFee:  func(in *payroll.FinancialInput, v float64) { in.StampOverride = v },
	}

	inputs := make([]payroll.FinancialInput, 0, len(rows)-1)
	for rowIdx, row := range rows[1:] {
		input := payroll.FinancialInput{}

		if idx, ok := columns[colEmployeeID]; ok {
			input.EmpNo = cell(row, idx)
		} else {
			// Sheets without an identifier column get sequential placeholders.
			input.EmpNo = fmt.Sprintf("EMP%03d", rowIdx+1)
		}

		for name, set := range setters {
			idx, ok := columns[name]
			if !ok {
				continue
			}
			value, err := parseNumeric(cell(row, idx))
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", rowIdx+2, name, err)
			}
			set(&input, value)
		}

		for name, idx := range columns {
			if name == colEmployeeID {
				continue
			}
			if _, identity := identityColumns[name]; identity {
				continue
			}
			if _, known := setters[name]; known {
				continue
			}
			value := cell(row, idx)
			if value == "" {
				continue
			}
			if input.Extra == nil {
				input.Extra = map[string]string{}
			}
			input.Extra[name] = value
		}

		inputs = append(inputs, input)
	}
	return inputs, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumeric treats blank cells as zero; anything else must parse as a
// number. A non-numeric value in a numeric column aborts the whole run.
func parseNumeric(value string) (float64, error) {
	if value == "" {
		return 0.0, nil
	}
	cleaned := strings.ReplaceAll(value, ",", "")
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value %q", value)
	}
	return parsed, nil
}
