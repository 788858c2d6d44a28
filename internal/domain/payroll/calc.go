package payroll

// compute applies the statutory formulas to one record, in order. Pure and
// row-independent: the result depends only on the record's own fields and the
// shared configuration. IEEE float64 throughout, no rounding, no clamping;
// a negative net salary is surfaced as data, not rejected.
func compute(rec *Record, cfg RunConfig) {
	workingDays := cfg.WorkingDays
	if workingDays <= 0 {
		workingDays = DefaultWorkingDays
	}

	rec.Gross = rec.Basic + rec.Reimbursement + rec.Travel
	rec.NopayAmount = (rec.Basic / workingDays) * rec.NopayDays
	rec.LiableSalary = rec.Gross - rec.NopayAmount - rec.Adjustment
	rec.TaxCalculated = rec.LiableSalary * rec.TaxRate
	rec.TotalTax = rec.TaxCalculated + rec.APIT
	rec.EPFEmployee = rec.Basic * cfg.EPFEmpRate

	if rec.StampOverride > 0 {
		rec.StampFinal = rec.StampOverride
	} else {
		rec.StampFinal = cfg.StampsFee
	}

	rec.TotalDeduction = rec.NopayAmount +
		rec.Adjustment +
		rec.TotalTax +
		rec.EPFEmployee +
		rec.Advances +
		rec.LoanInstallment +
		rec.LoanInterest +
		rec.Others +
		rec.StampFinal

	rec.NetSalary = rec.Gross - rec.TotalDeduction
	rec.EPFCompany = rec.Basic * cfg.EPFCoRate
	rec.ETFCompany = rec.Basic * cfg.ETFCoRate
}
