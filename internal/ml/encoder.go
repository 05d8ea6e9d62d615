package ml

import (
	"strconv"
	"strings"
)

// LoanAmountColumn is excluded from the amount-recommendation model's
// feature space (it was trained without it).
const LoanAmountColumn = "LoanAmount"

// CategoricalOptions lists the allowed values per categorical column, in
// the exact order the training-time label encoding used (sorted). The
// ordinal of a value is its index here; these lists are part of the model
// vocabulary and must not change without retraining.
var CategoricalOptions = map[string][]string{
	"EmploymentStatus":    {"Employed", "Self-Employed", "Unemployed"},
	"EducationLevel":      {"Associate", "Bachelor", "High School", "Master"},
	"MaritalStatus":       {"Divorced", "Married", "Single"},
	"HomeOwnershipStatus": {"Mortgage", "Own", "Rent"},
	"LoanPurpose":         {"Debt Consolidation", "Education", "Home", "Other"},
}

// DefaultNumeric provides mid-range filler for numeric columns the farmer
// form does not collect. These only keep the models fed; they carry no
// business meaning.
var DefaultNumeric = map[string]float64{
	"Age":                        40,
	"AnnualIncome":               60000,
	"CreditScore":                620,
	"Experience":                 15,
	"LoanAmount":                 20000,
	"LoanDuration":               48,
	"NumberOfDependents":         2,
	"MonthlyDebtPayments":        500,
	"CreditCardUtilizationRate":  0.3,
	"NumberOfOpenCreditLines":    3,
	"NumberOfCreditInquiries":    1,
	"DebtToIncomeRatio":          0.35,
	"BankruptcyHistory":          0,
	"PreviousLoanDefaults":       0,
	"PaymentHistory":             25,
	"LengthOfCreditHistory":      10,
	"SavingsAccountBalance":      5000,
	"CheckingAccountBalance":     3000,
	"TotalAssets":                50000,
	"TotalLiabilities":           20000,
	"MonthlyIncome":              5000,
	"UtilityBillsPaymentHistory": 0.85,
	"JobTenure":                  5,
	"NetWorth":                   30000,
	"BaseInterestRate":           0.2,
	"InterestRate":               0.22,
	"MonthlyLoanPayment":         600,
	"TotalDebtToIncomeRatio":     0.35,
}

// encodeCategorical maps a raw value to its ordinal in the column's option
// list. Unknown or missing values map to 0, the first listed option.
func encodeCategorical(column string, raw any) float64 {
	options := CategoricalOptions[column]
	if len(options) == 0 {
		return 0
	}
	var s string
	switch v := raw.(type) {
	case string:
		s = strings.TrimSpace(v)
	case nil:
		return 0
	default:
		s = strings.TrimSpace(toString(v))
	}
	for i, opt := range options {
		if opt == s {
			return float64(i)
		}
	}
	return 0
}

func toString(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	default:
		return ""
	}
}

// Encode builds the feature vector in cols order. A malformed value never
// aborts encoding; it degrades to the column default.
func Encode(cols []string, fields Fields) []float64 {
	vec := make([]float64, 0, len(cols))
	for _, col := range cols {
		if _, categorical := CategoricalOptions[col]; categorical {
			vec = append(vec, encodeCategorical(col, fields[col]))
			continue
		}
		vec = append(vec, fields.Num(col, DefaultNumeric[col]))
	}
	return vec
}

// dropLoanAmount removes the LoanAmount position from a vector laid out in
// cols order, preserving the relative order of every other column. The
// amount model was trained without that column; the removal is driven by
// the same canonical column list as the full encoding.
func dropLoanAmount(cols []string, vec []float64) []float64 {
	out := make([]float64, 0, len(vec))
	for i, col := range cols {
		if col == LoanAmountColumn {
			continue
		}
		out = append(out, vec[i])
	}
	return out
}
