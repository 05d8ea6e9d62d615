// Package explain derives human-readable, localized justifications for the
// scoring results. It is a deterministic rule engine over the raw
// application fields: same fields and language always produce the same
// bytes, regardless of what the underlying models decided.
package explain

import (
	"strings"

	"agrifin-backend/internal/ml"
)

// Risk bands, fixed independent of model scale.
const (
	riskLowUpper      = 35.0
	riskModerateUpper = 55.0
)

// EligibilityReason builds a short reason for approval or denial from the
// application features. Approved and denied outcomes use distinct fragment
// sets; fragments are evaluated in a fixed precedence order and joined
// with " " (approved) or ", " (denied).
func EligibilityReason(fields ml.Fields, approved bool, lang string) string {
	lang = NormalizeLanguage(lang)
	income := fields.Num("AnnualIncome", 60000)
	credit := fields.Num("CreditScore", 620)
	loanAmt := fields.Num("LoanAmount", 20000)
	dti := fields.Num("DebtToIncomeRatio", 0.35)
	employment := fields.Str("EmploymentStatus", "Employed")
	prevDefaults := fields.Num("PreviousLoanDefaults", 0)
	bankruptcy := fields.Num("BankruptcyHistory", 0)
	paymentHist := fields.Num("PaymentHistory", 25)

	var reasons []string
	if approved {
		if credit >= 650 {
			reasons = append(reasons, tr(lang, "strong_credit", int(credit)))
		} else if credit >= 600 {
			reasons = append(reasons, tr(lang, "acceptable_credit", int(credit)))
		}
		if income >= 50000 && loanAmt > 0 && income/12 > loanAmt/48 {
			reasons = append(reasons, tr(lang, "income_supports"))
		}
		if dti <= 0.40 {
			reasons = append(reasons, tr(lang, "manageable_dti", dti*100))
		}
		if employment == "Employed" {
			reasons = append(reasons, tr(lang, "stable_employment"))
		}
		if prevDefaults == 0 {
			reasons = append(reasons, tr(lang, "no_defaults"))
		}
		if bankruptcy == 0 {
			reasons = append(reasons, tr(lang, "no_bankruptcy"))
		}
		if paymentHist >= 20 {
			reasons = append(reasons, tr(lang, "good_payment"))
		}
		if len(reasons) == 0 {
			reasons = append(reasons, tr(lang, "profile_meets"))
		}
		return tr(lang, "approved_prefix") + strings.Join(reasons, " ")
	}

	if credit < 600 {
		reasons = append(reasons, tr(lang, "credit_low", int(credit)))
	}
	if dti > 0.45 {
		reasons = append(reasons, tr(lang, "high_dti", dti*100))
	}
	if prevDefaults > 0 {
		reasons = append(reasons, tr(lang, "prev_defaults"))
	}
	if bankruptcy > 0 {
		reasons = append(reasons, tr(lang, "bankruptcy_hist"))
	}
	if employment == "Unemployed" {
		reasons = append(reasons, tr(lang, "employment_status"))
	}
	if income < 30000 && loanAmt > 10000 {
		reasons = append(reasons, tr(lang, "income_insufficient"))
	}
	if paymentHist < 15 {
		reasons = append(reasons, tr(lang, "weak_payment"))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, tr(lang, "combined_risk"))
	}
	return tr(lang, "denied_prefix") + strings.Join(reasons, ", ")
}

// EligibilityDescription is the fixed boilerplate explaining what the
// approval prediction means.
func EligibilityDescription(lang string) string {
	return tr(NormalizeLanguage(lang), "eligibility_description")
}

// RiskNarrative carries the banded interpretation of a risk score.
type RiskNarrative struct {
	Interpretation string `json:"interpretation"`
	Description    string `json:"description"`
	ScoreMeaning   string `json:"score_meaning"`
}

// RiskScoreDescription buckets the score into three fixed bands
// (< 35 low, 35–55 moderate, >= 55 high) and narrates the band.
func RiskScoreDescription(score float64, lang string) RiskNarrative {
	lang = NormalizeLanguage(lang)

	var band, interpretation string
	switch {
	case score < riskLowUpper:
		band = tr(lang, "low_risk")
		interpretation = tr(lang, "risk_low_interpretation")
	case score < riskModerateUpper:
		band = tr(lang, "moderate_risk")
		interpretation = tr(lang, "risk_mod_interpretation")
	default:
		band = tr(lang, "higher_risk")
		interpretation = tr(lang, "risk_high_interpretation")
	}

	return RiskNarrative{
		Interpretation: band,
		Description: tr(lang, "risk_score_label", score) +
			tr(lang, "risk_relative") +
			tr(lang, "interpretation_label", band, interpretation),
		ScoreMeaning: tr(lang, "score_meaning"),
	}
}

// AmountNarrative explains a recommended loan amount.
type AmountNarrative struct {
	Explanation string `json:"explanation"`
	Basis       string `json:"basis"`
}

// RecommendAmountExplanation lists the profile factors behind the
// recommended amount in a fixed order.
func RecommendAmountExplanation(fields ml.Fields, recommended float64, lang string) AmountNarrative {
	lang = NormalizeLanguage(lang)
	income := fields.Num("AnnualIncome", 60000)
	credit := fields.Num("CreditScore", 620)
	dti := fields.Num("DebtToIncomeRatio", 0.35)
	netWorth := fields.Num("NetWorth", 30000)
	savings := fields.Num("SavingsAccountBalance", 5000)
	employment := fields.Str("EmploymentStatus", "Employed")
	duration := fields.Num("LoanDuration", 48)

	var factors []string
	if income > 0 {
		factors = append(factors, tr(lang, "your_income", int(income)))
	}
	factors = append(factors, tr(lang, "your_credit", int(credit)))
	factors = append(factors, tr(lang, "your_dti", dti*100))
	if netWorth > 0 {
		factors = append(factors, tr(lang, "your_net_worth", int(netWorth)))
	}
	if savings > 0 {
		factors = append(factors, tr(lang, "savings_reserves", int(savings)))
	}
	factors = append(factors, tr(lang, "employment_status_f", employment))
	if duration > 0 {
		factors = append(factors, tr(lang, "loan_duration", int(duration)))
	}

	return AmountNarrative{
		Explanation: tr(lang, "recommend_intro", recommended, strings.Join(factors, ", ")) +
			tr(lang, "recommend_outro"),
		Basis: tr(lang, "recommend_basis"),
	}
}
