package employee

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func employeeColumns() []string {
	return []string{"id", "emp_no", "name", "designation", "department", "nic", "bank_name", "account_no", "joined_date", "created_at", "updated_at"}
}

func TestListEmployeesReturnsSnapshot(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	rows := pgxmock.NewRows(employeeColumns()).
		AddRow("id-1", "E1", "Nimal Perera", "Manager", "Operations", "851234567V", "BOC", "100200300", "2018-04-01", now, now).
		AddRow("id-2", "E2", "Kamala Silva", "Clerk", "Accounts", "902345678V", "HNB", "200300400", "2021-01-15", now, now)

	mock.ExpectQuery("SELECT (.+) FROM employees").WillReturnRows(rows)

	store := NewStore(mock)
	employees, err := store.ListEmployees(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(employees))
	}
	if employees[0].EmpNo != "E1" || employees[1].Name != "Kamala Silva" {
		t.Fatalf("unexpected snapshot: %+v", employees)
	}
}

func TestGetEmployeeNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM employees").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	store := NewStore(mock)
	if _, err := store.GetEmployee(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateEmployeeRequiresEmpNo(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	store := NewStore(mock)
	if _, err := store.CreateEmployee(context.Background(), Employee{EmpNo: "  "}); !errors.Is(err, ErrEmpNoRequired) {
		t.Fatalf("expected ErrEmpNoRequired, got %v", err)
	}
}

func TestCreateEmployeeTranslatesUniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO employees").
		WithArgs("E1", "Nimal Perera", "", "", "", "", "", "").
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	store := NewStore(mock)
	if _, err := store.CreateEmployee(context.Background(), Employee{EmpNo: "E1", Name: "Nimal Perera"}); !errors.Is(err, ErrDuplicateNo) {
		t.Fatalf("expected ErrDuplicateNo, got %v", err)
	}
}

func TestUpdateEmployeeNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec("UPDATE employees").
		WithArgs("missing", "", "", "", "", "", "", "").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	store := NewStore(mock)
	if err := store.UpdateEmployee(context.Background(), Employee{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
