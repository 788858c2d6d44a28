package payroll

import "testing"

func scenarioConfig() RunConfig {
	return RunConfig{
		WorkingDays: 30,
		StampsFee:   25,
		EPFEmpRate:  0.08,
		EPFCoRate:   0.12,
		ETFCoRate:   0.03,
	}
}

func TestComputeScenario(t *testing.T) {
	rec := Record{
		Basic:         50000,
		Reimbursement: 2000,
		Travel:        1000,
	}
	compute(&rec, scenarioConfig())

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"gross", rec.Gross, 53000},
		{"nopay", rec.NopayAmount, 0},
		{"epf employee", rec.EPFEmployee, 4000},
		{"stamp final", rec.StampFinal, 25},
		{"total deduction", rec.TotalDeduction, 4025},
		{"net", rec.NetSalary, 48975},
		{"epf company", rec.EPFCompany, 6000},
		{"etf company", rec.ETFCompany, 1500},
	}
	for _, check := range checks {
		if check.got != check.want {
			t.Fatalf("expected %s %v, got %v", check.name, check.want, check.got)
		}
	}
}

func TestComputeZeroWorkingDaysFallsBackToDefault(t *testing.T) {
	base := Record{Basic: 60000, NopayDays: 3}
	withZero := base
	withDefault := base

	cfg := scenarioConfig()
	cfg.WorkingDays = 0
	compute(&withZero, cfg)

	cfg.WorkingDays = 30
	compute(&withDefault, cfg)

	if withZero.NopayAmount != withDefault.NopayAmount {
		t.Fatalf("expected zero working days to behave like 30, got %v vs %v", withZero.NopayAmount, withDefault.NopayAmount)
	}
	if withZero.NopayAmount != 6000 {
		t.Fatalf("expected nopay amount 6000, got %v", withZero.NopayAmount)
	}
}

func TestComputeStampFeeSelection(t *testing.T) {
	tests := []struct {
		name     string
		override float64
		want     float64
	}{
		{"zero override uses configured default", 0, 25},
		{"positive override wins", 40, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Record{Basic: 10000, StampOverride: tt.override}
			compute(&rec, scenarioConfig())
			if rec.StampFinal != tt.want {
				t.Fatalf("expected stamp final %v, got %v", tt.want, rec.StampFinal)
			}
		})
	}
}

func TestComputeTaxAndDeductions(t *testing.T) {
	rec := Record{
		Basic:           100000,
		Reimbursement:   5000,
		Travel:          5000,
		NopayDays:       2,
		Adjustment:      1000,
		TaxRate:         0.06,
		APIT:            1500,
		Advances:        2000,
		LoanInstallment: 3000,
		LoanInterest:    300,
		Others:          200,
	}
	cfg := scenarioConfig()
	compute(&rec, cfg)

	nopay := (100000.0 / 30.0) * 2.0
	liable := 110000 - nopay - 1000
	tax := liable * 0.06
	totalTax := tax + 1500
	epf := 100000 * 0.08
	deduction := nopay + 1000 + totalTax + epf + 2000 + 3000 + 300 + 200 + 25

	if rec.LiableSalary != liable {
		t.Fatalf("expected liable %v, got %v", liable, rec.LiableSalary)
	}
	if rec.TotalTax != totalTax {
		t.Fatalf("expected total tax %v, got %v", totalTax, rec.TotalTax)
	}
	if rec.TotalDeduction != deduction {
		t.Fatalf("expected total deduction %v, got %v", deduction, rec.TotalDeduction)
	}
	if rec.NetSalary != rec.Gross-rec.TotalDeduction {
		t.Fatalf("net must equal gross minus total deduction, got %v", rec.NetSalary)
	}
}

func TestComputeAllowsNegativeNet(t *testing.T) {
	rec := Record{Basic: 1000, Advances: 5000}
	compute(&rec, scenarioConfig())
	if rec.NetSalary >= 0 {
		t.Fatalf("expected negative net to pass through unclamped, got %v", rec.NetSalary)
	}
}
