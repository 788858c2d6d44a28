package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"paymaster/internal/domain/payroll"
)

func TestParseCSVMapsFinancialColumns(t *testing.T) {
	data := strings.Join([]string{
		"Employee ID,Basic salary,Reimburse allowances,Travelling allowances,Nopay days,Tax rate,Stamps fee",
		"E1,50000,2000,1000,0,0.06,0",
		"E2,85000,,,1.5,,40",
	}, "\n")

	inputs, err := ParseCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(inputs))
	}

	first := inputs[0]
	if first.EmpNo != "E1" || first.Basic != 50000 || first.Reimbursement != 2000 || first.Travel != 1000 {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if first.TaxRate != 0.06 {
		t.Fatalf("expected tax rate 0.06, got %v", first.TaxRate)
	}

	// Blank numeric cells default to zero.
	second := inputs[1]
	if second.Reimbursement != 0 || second.TaxRate != 0 {
		t.Fatalf("expected blank cells to default to zero, got %+v", second)
	}
	if second.NopayDays != 1.5 || second.StampOverride != 40 {
		t.Fatalf("unexpected second row: %+v", second)
	}
}

func TestParseCSVDiscardsIdentityColumns(t *testing.T) {
	data := strings.Join([]string{
		"Employee ID,Name,Designation,Basic salary,Cost Center",
		"E1,Sheet Name Should Be Ignored,Sheet Title,50000,CC-7",
	}, "\n")

	inputs, err := ParseCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	input := inputs[0]
	if _, ok := input.Extra["Name"]; ok {
		t.Fatal("identity column Name must be discarded at the boundary")
	}
	if _, ok := input.Extra["Designation"]; ok {
		t.Fatal("identity column Designation must be discarded at the boundary")
	}
	if input.Extra["Cost Center"] != "CC-7" {
		t.Fatalf("expected unknown column to pass through, got %v", input.Extra)
	}
}

func TestParseCSVDuplicateHeaderKeepsFirst(t *testing.T) {
	data := strings.Join([]string{
		"Employee ID,Basic salary,Basic salary",
		"E1,50000,99999",
	}, "\n")

	inputs, err := ParseCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if inputs[0].Basic != 50000 {
		t.Fatalf("expected first occurrence to win, got %v", inputs[0].Basic)
	}
}

func TestParseCSVMissingIdentifierColumn(t *testing.T) {
	data := strings.Join([]string{
		"Basic salary",
		"50000",
		"60000",
	}, "\n")

	inputs, err := ParseCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if inputs[0].EmpNo != "EMP001" || inputs[1].EmpNo != "EMP002" {
		t.Fatalf("expected sequential placeholder identifiers, got %q %q", inputs[0].EmpNo, inputs[1].EmpNo)
	}
}

func TestParseCSVRejectsNonNumericValue(t *testing.T) {
	data := strings.Join([]string{
		"Employee ID,Basic salary",
		"E1,fifty thousand",
	}, "\n")

	_, err := ParseCSV(strings.NewReader(data))
	if err == nil {
		t.Fatal("expected error for non-numeric value")
	}
	if !strings.Contains(err.Error(), "Basic salary") || !strings.Contains(err.Error(), "row 2") {
		t.Fatalf("error should name the row and column, got %v", err)
	}
}

func TestParseXLSX(t *testing.T) {
	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	rows := [][]any{
		{"Employee ID", "Basic salary", "Nopay days"},
		{"E1", 50000, 2},
		{" E2 ", 85000, 0},
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := book.SetSheetRow(sheet, cellRef, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	buf, err := book.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	inputs, err := ParseXLSX(buf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(inputs))
	}
	if inputs[0].EmpNo != "E1" || inputs[0].Basic != 50000 || inputs[0].NopayDays != 2 {
		t.Fatalf("unexpected first row: %+v", inputs[0])
	}
	if inputs[1].EmpNo != "E2" {
		t.Fatalf("expected trimmed identifier, got %q", inputs[1].EmpNo)
	}
}

func TestParseUploadDispatch(t *testing.T) {
	if _, err := ParseUpload("salaries.bin", strings.NewReader("")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestParseCSVEmptyDataset(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("")); !errors.Is(err, payroll.ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}
