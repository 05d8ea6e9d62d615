package loan

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyPayment computes the fixed annuity payment for principal P at
// annual rate r over n months:
//
//	i = r/12
//	payment = P * i * (1+i)^n / ((1+i)^n - 1)
//
// A zero or negative term yields a zero payment; a zero rate splits the
// principal evenly across the term.
func MonthlyPayment(principal decimal.Decimal, annualRate float64, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	if annualRate == 0 {
		return principal.Div(decimal.NewFromInt(int64(months))).Round(2)
	}
	i := annualRate / 12
	factor := math.Pow(1+i, float64(months))
	payment := principal.InexactFloat64() * i * factor / (factor - 1)
	return decimal.NewFromFloat(payment).Round(2)
}

// BuildSchedule generates one pending Repayment per installment, each for
// the same 2-decimal monthly amount, due every 30 days starting 30 days
// after approvedAt. Installments are not calendar-month aware and the
// rounding residue is not reconciled, so the sum of the schedule can differ
// from principal plus interest by a few cents.
func BuildSchedule(loanID uint64, monthly decimal.Decimal, months int, approvedAt time.Time) []Repayment {
	rs := make([]Repayment, 0, months)
	due := approvedAt
	for k := 0; k < months; k++ {
		due = due.AddDate(0, 0, 30)
		rs = append(rs, Repayment{
			LoanID:  loanID,
			Amount:  monthly,
			DueDate: due,
			Status:  RepaymentPending,
		})
	}
	return rs
}
