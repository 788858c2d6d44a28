package payroll

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the history store needs; satisfied by
// pgxmock in tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// HistoryStore appends finalized payroll runs to the append-only history log.
// It never mutates or deduplicates prior entries: archiving the same period
// twice appends two snapshots.
type HistoryStore struct {
	DB DB
}

func NewHistoryStore(db DB) *HistoryStore {
	return &HistoryStore{DB: db}
}

// ArchiveRun writes the whole run in one transaction: either every record
// lands in the history log or none do, so a failed archive can be retried
// without leaving partial duplicates behind.
func (s *HistoryStore) ArchiveRun(ctx context.Context, records []Record, month string, year int, processedAt time.Time) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, rec := range records {
		_, err := tx.Exec(ctx, `
      INSERT INTO payroll_history (emp_no, emp_name, month, year, basic_salary, gross_salary, total_deduction, net_salary, epf_company, etf_company, processed_at)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    `, rec.EmpNo, rec.Name, month, year, rec.Basic, rec.Gross, rec.TotalDeduction, rec.NetSalary, rec.EPFCompany, rec.ETFCompany, processedAt)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// HistoryForPeriod returns the archived rows for one month, or an empty slice
// when the period was never archived. "Not found" is not an error.
func (s *HistoryStore) HistoryForPeriod(ctx context.Context, month string, year int) ([]HistoryEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, emp_no, emp_name, month, year, basic_salary, gross_salary, total_deduction, net_salary, epf_company, etf_company, processed_at
    FROM payroll_history
    WHERE month = $1 AND year = $2
    ORDER BY id
  `, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0)
	for rows.Next() {
		var entry HistoryEntry
		if err := rows.Scan(&entry.ID, &entry.EmpNo, &entry.Name, &entry.Month, &entry.Year, &entry.Basic, &entry.Gross, &entry.TotalDeduction, &entry.NetSalary, &entry.EPFCompany, &entry.ETFCompany, &entry.ProcessedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
