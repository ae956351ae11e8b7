package payroll

// Employee carries the payroll inputs for one person. PersonalNumber is the
// Swedish personnummer; its first four digits are the birth year.
type Employee struct {
	Name            string
	PersonalNumber  string
	MonthlySalary   float64
	TaxRate         float64
	UnionFee        float64
	UnemploymentFee float64
	PensionRate     float64
}

// AdjustmentKind enumerates payslip adjustments.
type AdjustmentKind string

const (
	AdjustmentSick      AdjustmentKind = "sick"
	AdjustmentOvertime  AdjustmentKind = "overtime"
	AdjustmentDeduction AdjustmentKind = "deduction"
	AdjustmentAddition  AdjustmentKind = "addition"
)

// Adjustment modifies a single payslip. Days applies to sick leave, Hours to
// overtime, Amount to plain deductions and additions.
type Adjustment struct {
	Kind        AdjustmentKind
	Days        int
	Hours       float64
	Amount      float64
	Description string
}

// Rates are the statutory percentages applied on top of gross salary.
type Rates struct {
	EmployerContribution float64
	SeniorContribution   float64
	SeniorAge            int
	DefaultPension       float64
}

// DefaultRates are the current Swedish employer rates: 31.42% standard
// social contributions, 10.21% from the year an employee turns 66, and a
// 4.5% ITP-style pension provision.
func DefaultRates() Rates {
	return Rates{
		EmployerContribution: 0.3142,
		SeniorContribution:   0.1021,
		SeniorAge:            66,
		DefaultPension:       0.045,
	}
}

// Payslip is the computed outcome of one payroll run for one employee.
type Payslip struct {
	Employee             Employee
	GrossSalary          float64
	SickDeduction        float64
	OvertimeAddition     float64
	OtherDeductions      float64
	OtherAdditions       float64
	Tax                  float64
	EmployerContribution float64
	Pension              float64
	NetPay               float64
}
