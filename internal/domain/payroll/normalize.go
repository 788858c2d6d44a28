package payroll

import "math"

// normalizeNumeric guarantees arithmetic safety before calculation: every
// numeric input field holds a finite value. Missing cells already parse to
// zero at ingest; NaN and Inf that survive upstream handling are reset here.
// Never errors.
func normalizeNumeric(records []Record) {
	for i := range records {
		rec := &records[i]
		rec.Basic = finiteOrZero(rec.Basic)
		rec.Reimbursement = finiteOrZero(rec.Reimbursement)
		rec.Travel = finiteOrZero(rec.Travel)
		rec.NopayDays = finiteOrZero(rec.NopayDays)
		rec.Adjustment = finiteOrZero(rec.Adjustment)
		rec.TaxRate = finiteOrZero(rec.TaxRate)
		rec.APIT = finiteOrZero(rec.APIT)
		rec.Advances = finiteOrZero(rec.Advances)
		rec.LoanInstallment = finiteOrZero(rec.LoanInstallment)
		rec.LoanInterest = finiteOrZero(rec.LoanInterest)
		rec.Others = finiteOrZero(rec.Others)
		rec.StampOverride = finiteOrZero(rec.StampOverride)
	}
}

func finiteOrZero(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0.0
	}
	return value
}
