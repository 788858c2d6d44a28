package payroll

import "time"

// FinancialInput is one uploaded sheet row. It carries only financial fields:
// identity-describing columns are stripped at the ingest boundary so the merge
// can never be shadowed by spreadsheet identity data.
type FinancialInput struct {
	EmpNo           string  `json:"employeeId"`
	Basic           float64 `json:"basicSalary"`
	Reimbursement   float64 `json:"reimburseAllowances"`
	Travel          float64 `json:"travellingAllowances"`
	NopayDays       float64 `json:"nopayDays"`
	Adjustment      float64 `json:"salaryAdjustment"`
	TaxRate         float64 `json:"taxRate"`
	APIT            float64 `json:"apit"`
	Advances        float64 `json:"salaryAdvances"`
	LoanInstallment float64 `json:"loanInstallment"`
	LoanInterest    float64 `json:"loanInterest"`
	Others          float64 `json:"others"`
	StampOverride   float64 `json:"stampsFee"`

	// Extra carries unrecognized sheet columns through the pipeline untouched.
	Extra map[string]string `json:"extra,omitempty"`
}

// RunConfig is the run-scoped calculation configuration. Rates are fractions
// (0.08), not percentages.
type RunConfig struct {
	WorkingDays float64 `json:"working_days"`
	StampsFee   float64 `json:"stamps_fee"`
	EPFEmpRate  float64 `json:"epf_emp_rate"`
	EPFCoRate   float64 `json:"epf_co_rate"`
	ETFCoRate   float64 `json:"etf_co_rate"`
}

// Record is the finalized payroll row: merged identity plus financial input
// plus every computed field. All consumer-visible fields are always populated.
type Record struct {
	EmpNo       string `json:"employeeId"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	NIC         string `json:"nic"`
	BankName    string `json:"bankName"`
	AccountNo   string `json:"accountNo"`
	JoinedDate  string `json:"joinedDate"`
	Matched     bool   `json:"matched"`

	Basic           float64 `json:"basicSalary"`
	Reimbursement   float64 `json:"reimburseAllowances"`
	Travel          float64 `json:"travellingAllowances"`
	NopayDays       float64 `json:"nopayDays"`
	Adjustment      float64 `json:"salaryAdjustment"`
	TaxRate         float64 `json:"taxRate"`
	APIT            float64 `json:"apit"`
	Advances        float64 `json:"salaryAdvances"`
	LoanInstallment float64 `json:"loanInstallment"`
	LoanInterest    float64 `json:"loanInterest"`
	Others          float64 `json:"others"`
	StampOverride   float64 `json:"stampsFeeOverride"`

	Gross          float64 `json:"grossSalary"`
	NopayAmount    float64 `json:"nopayAmount"`
	LiableSalary   float64 `json:"liableSalary"`
	TaxCalculated  float64 `json:"taxCalculated"`
	TotalTax       float64 `json:"totalTax"`
	EPFEmployee    float64 `json:"epfEmployee"`
	StampFinal     float64 `json:"stampsFinal"`
	TotalDeduction float64 `json:"totalDeduction"`
	NetSalary      float64 `json:"netSalary"`
	EPFCompany     float64 `json:"epfCompany"`
	ETFCompany     float64 `json:"etfCompany"`

	Extra map[string]string `json:"extra,omitempty"`
}

// Summary aggregates one run for the review screen and reports.
type Summary struct {
	EmployeeCount   int     `json:"employeeCount"`
	TotalGross      float64 `json:"totalGross"`
	TotalDeductions float64 `json:"totalDeductions"`
	TotalNet        float64 `json:"totalNet"`
	TotalEPFCompany float64 `json:"totalEpfCompany"`
	TotalETFCompany float64 `json:"totalEtfCompany"`
	UnmatchedCount  int     `json:"unmatchedCount"`
}

// Result is the output of one pipeline invocation.
type Result struct {
	Records []Record `json:"records"`
	// Unmatched lists employee identifiers that had no master record. Data
	// entry mismatches worth flagging, recovered with placeholder identities.
	Unmatched []string `json:"unmatched,omitempty"`
	Summary   Summary  `json:"summary"`
}

// HistoryEntry is one archived payroll row, append-only.
type HistoryEntry struct {
	ID             int64     `json:"id"`
	EmpNo          string    `json:"employeeId"`
	Name           string    `json:"name"`
	Month          string    `json:"month"`
	Year           int       `json:"year"`
	Basic          float64   `json:"basicSalary"`
	Gross          float64   `json:"grossSalary"`
	TotalDeduction float64   `json:"totalDeduction"`
	NetSalary      float64   `json:"netSalary"`
	EPFCompany     float64   `json:"epfCompany"`
	ETFCompany     float64   `json:"etfCompany"`
	ProcessedAt    time.Time `json:"processedAt"`
}
