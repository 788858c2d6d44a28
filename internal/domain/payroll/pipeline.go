package payroll

import (
	"paymaster/internal/domain/employee"
)

// Process runs the full payroll pipeline over one uploaded dataset:
// merge against the master snapshot, normalize numerics, compute, summarize.
// It is a pure batch transform: identical inputs and configuration produce
// identical output on every invocation.
func Process(inputs []FinancialInput, master []employee.Employee, cfg RunConfig) Result {
	records, unmatched := mergeIdentities(inputs, master)
	normalizeNumeric(records)
	for i := range records {
		compute(&records[i], cfg)
	}
	return Result{
		Records:   records,
		Unmatched: unmatched,
		Summary:   Summarize(records, len(unmatched)),
	}
}

// Summarize aggregates run totals for the review screen and reports.
func Summarize(records []Record, unmatchedCount int) Summary {
	summary := Summary{
		EmployeeCount:  len(records),
		UnmatchedCount: unmatchedCount,
	}
	for _, rec := range records {
		summary.TotalGross += rec.Gross
		summary.TotalDeductions += rec.TotalDeduction
		summary.TotalNet += rec.NetSalary
		summary.TotalEPFCompany += rec.EPFCompany
		summary.TotalETFCompany += rec.ETFCompany
	}
	return summary
}
