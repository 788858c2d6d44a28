package payroll

import (
	"strings"

	"paymaster/internal/domain/employee"
)

// mergeIdentities left-joins financial input rows against the employee master
// snapshot by normalized employee number. Identity fields come exclusively
// from the master record. One output row per input row, input order preserved.
func mergeIdentities(inputs []FinancialInput, master []employee.Employee) ([]Record, []string) {
	byNo := make(map[string]employee.Employee, len(master))
	for _, emp := range master {
		byNo[normalizeEmpNo(emp.EmpNo)] = emp
	}

	records := make([]Record, 0, len(inputs))
	var unmatched []string
	for _, input := range inputs {
		empNo := normalizeEmpNo(input.EmpNo)
		rec := Record{
			EmpNo:           empNo,
			Basic:           input.Basic,
			Reimbursement:   input.Reimbursement,
			Travel:          input.Travel,
			NopayDays:       input.NopayDays,
			Adjustment:      input.Adjustment,
			TaxRate:         input.TaxRate,
			APIT:            input.APIT,
			Advances:        input.Advances,
			LoanInstallment: input.LoanInstallment,
			LoanInterest:    input.LoanInterest,
			Others:          input.Others,
			StampOverride:   input.StampOverride,
			Extra:           input.Extra,
		}

		if len(byNo) == 0 {
			// Empty master store: degrade to the financial rows alone.
			fillIdentity(&rec, NoMasterMark, NoMasterMark)
		} else if emp, ok := byNo[empNo]; ok {
			rec.Matched = true
			rec.Name = emp.Name
			rec.Designation = emp.Designation
			rec.Department = emp.Department
			rec.NIC = emp.NIC
			rec.BankName = emp.BankName
			rec.AccountNo = emp.AccountNo
			rec.JoinedDate = emp.JoinedDate
		} else {
			fillIdentity(&rec, UnknownName, PlaceholderField)
			unmatched = append(unmatched, empNo)
		}
		records = append(records, rec)
	}
	return records, unmatched
}

func fillIdentity(rec *Record, name, field string) {
	rec.Name = name
	rec.Designation = field
	rec.Department = field
	rec.NIC = field
	rec.BankName = field
	rec.AccountNo = field
	rec.JoinedDate = field
}

// normalizeEmpNo trims whitespace so " E1 " and "E1" resolve to the same
// master record.
func normalizeEmpNo(empNo string) string {
	return strings.TrimSpace(empNo)
}
