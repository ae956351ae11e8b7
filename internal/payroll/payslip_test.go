package payroll

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func march2025() time.Time {
	return time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC)
}

func employeeFixture() Employee {
	return Employee{
		Name:           "Anna Andersson",
		PersonalNumber: "198505121234",
		MonthlySalary:  30000,
		TaxRate:        0.24,
	}
}

func TestComputePayslipWithoutAdjustments(t *testing.T) {
	p := ComputePayslip(employeeFixture(), nil, DefaultRates(), march2025())

	require.Equal(t, 30000.0, p.GrossSalary)
	require.Equal(t, 7200.0, p.Tax)
	require.Equal(t, 9426.0, p.EmployerContribution)
	require.Equal(t, 1350.0, p.Pension)
	require.Equal(t, 22800.0, p.NetPay)
}

func TestSickDeductionAppliesKarensdag(t *testing.T) {
	// Two sick days on a 30000 kr salary: the first day is fully unpaid
	// (30000/21 rounds to 1429), the second is paid at 80% so only 20%
	// is deducted (286).
	p := ComputePayslip(employeeFixture(), []Adjustment{
		{Kind: AdjustmentSick, Days: 2},
	}, DefaultRates(), march2025())

	require.Equal(t, 1715.0, p.SickDeduction)
	require.Equal(t, 28285.0, p.GrossSalary)
}

func TestSingleSickDayDeductsOnlyKarensdag(t *testing.T) {
	p := ComputePayslip(employeeFixture(), []Adjustment{
		{Kind: AdjustmentSick, Days: 1},
	}, DefaultRates(), march2025())

	require.Equal(t, 1429.0, p.SickDeduction)
}

func TestOvertimeAddsAtTimeAndAHalf(t *testing.T) {
	// 30000/168 = 178.57 kr/h; 3 hours at 1.5x rounds to 804.
	p := ComputePayslip(employeeFixture(), []Adjustment{
		{Kind: AdjustmentOvertime, Hours: 3},
	}, DefaultRates(), march2025())

	require.Equal(t, 804.0, p.OvertimeAddition)
	require.Equal(t, 30804.0, p.GrossSalary)
}

func TestManualAdjustmentsFlowIntoGross(t *testing.T) {
	p := ComputePayslip(employeeFixture(), []Adjustment{
		{Kind: AdjustmentAddition, Amount: 1500, Description: "Bonus"},
		{Kind: AdjustmentDeduction, Amount: 400, Description: "Lunchkort"},
	}, DefaultRates(), march2025())

	require.Equal(t, 31100.0, p.GrossSalary)
}

func TestSeniorEmployeeGetsReducedContribution(t *testing.T) {
	senior := employeeFixture()
	senior.PersonalNumber = "195703051234"

	p := ComputePayslip(senior, nil, DefaultRates(), march2025())
	require.Equal(t, 3063.0, p.EmployerContribution)
}

func TestMalformedPersonalNumberUsesStandardRate(t *testing.T) {
	e := employeeFixture()
	e.PersonalNumber = "xx"

	p := ComputePayslip(e, nil, DefaultRates(), march2025())
	require.Equal(t, 9426.0, p.EmployerContribution)
}

func TestUnionAndUnemploymentFeesReduceNetOnly(t *testing.T) {
	e := employeeFixture()
	e.UnionFee = 300
	e.UnemploymentFee = 150

	p := ComputePayslip(e, nil, DefaultRates(), march2025())
	require.Equal(t, 30000.0, p.GrossSalary)
	require.Equal(t, 22350.0, p.NetPay)
}

func TestBookingBalances(t *testing.T) {
	e := employeeFixture()
	e.UnionFee = 300
	p := ComputePayslip(e, []Adjustment{{Kind: AdjustmentSick, Days: 2}}, DefaultRates(), march2025())

	input := BookingFor(p, march2025(), uuid.New())
	require.NoError(t, input.Validate())
	require.Equal(t, "payroll", input.SourceModule)
	require.Contains(t, input.Description, "Lön 2025-03")

	var debit, credit float64
	for _, row := range input.Rows {
		debit += row.Debit
		credit += row.Credit
	}
	require.InDelta(t, debit, credit, 0.005)
}

func TestBookingOmitsFeeRowWhenNoFees(t *testing.T) {
	p := ComputePayslip(employeeFixture(), nil, DefaultRates(), march2025())
	input := BookingFor(p, march2025(), uuid.New())
	for _, row := range input.Rows {
		require.NotEqual(t, "2890", row.Account)
	}
}
