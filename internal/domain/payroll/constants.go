package payroll

const (
	DefaultWorkingDays = 30.0
	DefaultStampsFee   = 25.0
	DefaultEPFEmpRate  = 0.08
	DefaultEPFCoRate   = 0.12
	DefaultETFCoRate   = 0.03

	// Placeholder identity values. UnknownName marks a row whose identifier
	// has no master record; PlaceholderField fills its remaining identity
	// fields. NoMasterMark is used when the master store is empty entirely.
	UnknownName      = "Unknown Employee"
	PlaceholderField = "-"
	NoMasterMark     = "N/A"
)

// DefaultConfig returns the statutory defaults used when a run supplies no
// overrides.
func DefaultConfig() RunConfig {
	return RunConfig{
		WorkingDays: DefaultWorkingDays,
		StampsFee:   DefaultStampsFee,
		EPFEmpRate:  DefaultEPFEmpRate,
		EPFCoRate:   DefaultEPFCoRate,
		ETFCoRate:   DefaultETFCoRate,
	}
}
