package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestArchiveRunAppendsOneRowPerRecord(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	records := []Record{
		{EmpNo: "E1", Name: "Nimal Perera", Basic: 50000, Gross: 53000, TotalDeduction: 4025, NetSalary: 48975, EPFCompany: 6000, ETFCompany: 1500},
		{EmpNo: "E2", Name: "Kamala Silva", Basic: 85000, Gross: 85000, TotalDeduction: 6825, NetSalary: 78175, EPFCompany: 10200, ETFCompany: 2550},
	}
	processedAt := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	for _, rec := range records {
		mock.ExpectExec("INSERT INTO payroll_history").
			WithArgs(rec.EmpNo, rec.Name, "August", 2026, rec.Basic, rec.Gross, rec.TotalDeduction, rec.NetSalary, rec.EPFCompany, rec.ETFCompany, processedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	store := NewHistoryStore(mock)
	if err := store.ArchiveRun(context.Background(), records, "August", 2026, processedAt); err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestArchiveRunRollsBackOnFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	records := []Record{
		{EmpNo: "E1", Name: "Nimal Perera", Basic: 50000},
		{EmpNo: "E2", Name: "Kamala Silva", Basic: 85000},
	}
	processedAt := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payroll_history").
		WithArgs(records[0].EmpNo, records[0].Name, "August", 2026, records[0].Basic, records[0].Gross, records[0].TotalDeduction, records[0].NetSalary, records[0].EPFCompany, records[0].ETFCompany, processedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO payroll_history").
		WithArgs(records[1].EmpNo, records[1].Name, "August", 2026, records[1].Basic, records[1].Gross, records[1].TotalDeduction, records[1].NetSalary, records[1].EPFCompany, records[1].ETFCompany, processedAt).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	store := NewHistoryStore(mock)
	if err := store.ArchiveRun(context.Background(), records, "August", 2026, processedAt); err == nil {
		t.Fatal("expected archive to fail")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHistoryForPeriodReturnsRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	processedAt := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "emp_no", "emp_name", "month", "year", "basic_salary", "gross_salary", "total_deduction", "net_salary", "epf_company", "etf_company", "processed_at"}).
		AddRow(int64(1), "E1", "Nimal Perera", "August", 2026, 50000.0, 53000.0, 4025.0, 48975.0, 6000.0, 1500.0, processedAt)

	mock.ExpectQuery("SELECT (.+) FROM payroll_history").
		WithArgs("August", 2026).
		WillReturnRows(rows)

	store := NewHistoryStore(mock)
	entries, err := store.HistoryForPeriod(context.Background(), "August", 2026)
	if err != nil {
		t.Fatalf("history query failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].EmpNo != "E1" || entries[0].NetSalary != 48975 {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

func TestHistoryForPeriodEmptyIsNotAnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM payroll_history").
		WithArgs("March", 1999).
		WillReturnRows(pgxmock.NewRows([]string{"id", "emp_no", "emp_name", "month", "year", "basic_salary", "gross_salary", "total_deduction", "net_salary", "epf_company", "etf_company", "processed_at"}))

	store := NewHistoryStore(mock)
	entries, err := store.HistoryForPeriod(context.Background(), "March", 1999)
	if err != nil {
		t.Fatalf("expected no error for missing period, got %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty result, got %v", entries)
	}
}
