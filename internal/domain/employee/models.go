package employee

import "time"

// Employee is the persisted master record for one staff member. Identity
// fields on payroll output always come from this record, never from the
// uploaded sheet.
type Employee struct {
	ID          string    `json:"id"`
	EmpNo       string    `json:"empNo"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"`
	Department  string    `json:"department"`
	NIC         string    `json:"nic"`
	BankName    string    `json:"bankName"`
	AccountNo   string    `json:"accountNo"`
	JoinedDate  string    `json:"joinedDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
