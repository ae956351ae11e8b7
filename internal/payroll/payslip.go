package payroll

import (
	"math"
	"strconv"
	"time"
)

// Working-time conventions: 21 working days and 168 hours per month.
const (
	workingDaysPerMonth  = 21
	workingHoursPerMonth = 168
	overtimeFactor       = 1.5
	sickPayFactor        = 0.80
)

// ComputePayslip derives a payslip from the employee's base salary and the
// month's adjustments. Pure; period supplies the year used for the senior
// contribution rate.
func ComputePayslip(employee Employee, adjustments []Adjustment, rates Rates, period time.Time) Payslip {
	p := Payslip{Employee: employee}
	dailyRate := employee.MonthlySalary / workingDaysPerMonth
	hourlyRate := employee.MonthlySalary / workingHoursPerMonth

	for _, adj := range adjustments {
		switch adj.Kind {
		case AdjustmentSick:
			p.SickDeduction += sickDeduction(dailyRate, adj.Days)
		case AdjustmentOvertime:
			p.OvertimeAddition += math.Round(adj.Hours * hourlyRate * overtimeFactor)
		case AdjustmentDeduction:
			p.OtherDeductions += adj.Amount
		case AdjustmentAddition:
			p.OtherAdditions += adj.Amount
		}
	}

	p.GrossSalary = employee.MonthlySalary - p.SickDeduction - p.OtherDeductions +
		p.OvertimeAddition + p.OtherAdditions
	p.Tax = math.Round(p.GrossSalary * employee.TaxRate)
	p.EmployerContribution = math.Round(p.GrossSalary * contributionRate(employee, rates, period))
	p.Pension = math.Round(p.GrossSalary * pensionRate(employee, rates))
	p.NetPay = p.GrossSalary - p.Tax - employee.UnionFee - employee.UnemploymentFee
	return p
}

// sickDeduction applies the karensdag rule: the first sick day is fully
// unpaid, the following days are paid at 80%, so only 20% is deducted.
func sickDeduction(dailyRate float64, days int) float64 {
	if days <= 0 {
		return 0
	}
	waiting := math.Round(dailyRate)
	paidDays := float64(days - 1)
	return waiting + math.Round(dailyRate*paidDays*(1-sickPayFactor))
}

func contributionRate(employee Employee, rates Rates, period time.Time) float64 {
	if age := ageAt(employee.PersonalNumber, period); age >= rates.SeniorAge {
		return rates.SeniorContribution
	}
	return rates.EmployerContribution
}

func pensionRate(employee Employee, rates Rates) float64 {
	if employee.PensionRate > 0 {
		return employee.PensionRate
	}
	return rates.DefaultPension
}

// ageAt reads the birth year from the first four digits of the personal
// number. A malformed number yields age 0, which selects the standard rate.
func ageAt(personalNumber string, period time.Time) int {
	if len(personalNumber) < 4 {
		return 0
	}
	birthYear, err := strconv.Atoi(personalNumber[:4])
	if err != nil || birthYear < 1900 {
		return 0
	}
	return period.Year() - birthYear
}
