package employee

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// DB is the subset of pgxpool.Pool the store needs; satisfied by pgxmock in tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Store struct {
	DB DB
}

func NewStore(db DB) *Store {
	return &Store{DB: db}
}

// ListEmployees returns the complete master snapshot. The payroll pipeline
// merges against this set, so there is deliberately no pagination.
func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, emp_no, name, designation, department, nic, bank_name, account_no, joined_date, created_at, updated_at
    FROM employees
    ORDER BY emp_no
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(&emp.ID, &emp.EmpNo, &emp.Name, &emp.Designation, &emp.Department, &emp.NIC, &emp.BankName, &emp.AccountNo, &emp.JoinedDate, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, id string) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, emp_no, name, designation, department, nic, bank_name, account_no, joined_date, created_at, updated_at
    FROM employees
    WHERE id = $1
  `, id).Scan(&emp.ID, &emp.EmpNo, &emp.Name, &emp.Designation, &emp.Department, &emp.NIC, &emp.BankName, &emp.AccountNo, &emp.JoinedDate, &emp.CreatedAt, &emp.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return emp, err
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (string, error) {
	if strings.TrimSpace(emp.EmpNo) == "" {
		return "", ErrEmpNoRequired
	}

	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (emp_no, name, designation, department, nic, bank_name, account_no, joined_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, strings.TrimSpace(emp.EmpNo), emp.Name, emp.Designation, emp.Department, emp.NIC, emp.BankName, emp.AccountNo, emp.JoinedDate).Scan(&id)
	if err != nil {
		return "", translatePgError(err)
	}
	return id, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, emp Employee) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET name = $2, designation = $3, department = $4, nic = $5, bank_name = $6, account_no = $7, joined_date = $8, updated_at = now()
    WHERE id = $1
  `, emp.ID, emp.Name, emp.Designation, emp.Department, emp.NIC, emp.BankName, emp.AccountNo, emp.JoinedDate)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrDuplicateNo
	}
	return err
}
