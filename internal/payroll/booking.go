package payroll

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forzencookie/verifikat/internal/ledger"
)

// BAS accounts the payroll booking posts against.
const (
	accountSalaryExpense       = "7010"
	accountPensionExpense      = "7410"
	accountContributionExpense = "7510"
	accountEmployeeTax         = "2710"
	accountContributionDebt    = "2731"
	accountPensionDebt         = "2230"
	accountOtherDebt           = "2890"
	accountBank                = "1930"
)

// BookingFor turns a confirmed payslip into the verification input that
// re-enters the ledger. Balanced by construction: gross splits into tax,
// withheld fees and net pay, while employer contribution and pension appear
// as expense against liability.
func BookingFor(payslip Payslip, date time.Time, sourceID uuid.UUID) ledger.AppendInput {
	description := fmt.Sprintf("Lön %s %s", date.Format("2006-01"), payslip.Employee.Name)
	fees := payslip.Employee.UnionFee + payslip.Employee.UnemploymentFee

	rows := []ledger.RowInput{
		{Account: accountSalaryExpense, Debit: payslip.GrossSalary, Description: "Bruttolön"},
		{Account: accountContributionExpense, Debit: payslip.EmployerContribution, Description: "Arbetsgivaravgifter"},
		{Account: accountPensionExpense, Debit: payslip.Pension, Description: "Tjänstepension"},
		{Account: accountEmployeeTax, Credit: payslip.Tax, Description: "Avdragen preliminärskatt"},
		{Account: accountContributionDebt, Credit: payslip.EmployerContribution, Description: "Arbetsgivaravgifter"},
		{Account: accountPensionDebt, Credit: payslip.Pension, Description: "Tjänstepension"},
	}
	if fees > 0 {
		rows = append(rows, ledger.RowInput{Account: accountOtherDebt, Credit: fees, Description: "Innehållna avgifter"})
	}
	rows = append(rows, ledger.RowInput{Account: accountBank, Credit: payslip.NetPay, Description: "Nettolön"})

	return ledger.AppendInput{
		Date:         date,
		Description:  description,
		SourceModule: "payroll",
		SourceID:     sourceID,
		Rows:         rows,
	}
}
