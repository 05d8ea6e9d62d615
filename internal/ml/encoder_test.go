package ml

import (
	"testing"
)

var testCols = []string{
	"Age", "AnnualIncome", "CreditScore", "EmploymentStatus",
	"EducationLevel", "LoanAmount", "LoanDuration",
}

func TestEncode_FullVectorInColumnOrder(t *testing.T) {
	fields := Fields{
		"Age":              30,
		"AnnualIncome":     800000.0,
		"CreditScore":      680,
		"EmploymentStatus": "Self-Employed",
		"EducationLevel":   "Bachelor",
		"LoanAmount":       200000.0,
		"LoanDuration":     24,
	}
	got := Encode(testCols, fields)
	want := []float64{30, 800000, 680, 1, 1, 200000, 24}
	if len(got) != len(want) {
		t.Fatalf("vector length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column %s = %v, want %v", testCols[i], got[i], want[i])
		}
	}
}

func TestEncode_MissingNumericUsesDefault(t *testing.T) {
	got := Encode(testCols, Fields{"Age": 30})
	if got[2] != DefaultNumeric["CreditScore"] {
		t.Fatalf("CreditScore = %v, want default %v", got[2], DefaultNumeric["CreditScore"])
	}
	if got[1] != DefaultNumeric["AnnualIncome"] {
		t.Fatalf("AnnualIncome = %v, want default %v", got[1], DefaultNumeric["AnnualIncome"])
	}
}

func TestEncode_MalformedNumericDegradesToDefault(t *testing.T) {
	got := Encode(testCols, Fields{"AnnualIncome": "not-a-number"})
	if got[1] != DefaultNumeric["AnnualIncome"] {
		t.Fatalf("AnnualIncome = %v, want default %v", got[1], DefaultNumeric["AnnualIncome"])
	}
}

func TestEncode_NumericStringIsParsed(t *testing.T) {
	got := Encode(testCols, Fields{"CreditScore": " 702 "})
	if got[2] != 702 {
		t.Fatalf("CreditScore = %v, want 702", got[2])
	}
}

func TestEncode_UnknownCategoricalFallsBackToFirstOption(t *testing.T) {
	got := Encode(testCols, Fields{"EmploymentStatus": "Retired"})
	if got[3] != 0 {
		t.Fatalf("EmploymentStatus ordinal = %v, want 0 (first option)", got[3])
	}
}

func TestEncode_CategoricalOrdinalIsCaseSensitiveExactMatch(t *testing.T) {
	if got := Encode(testCols, Fields{"EmploymentStatus": "unemployed"}); got[3] != 0 {
		t.Fatalf("lowercase value ordinal = %v, want fallback 0", got[3])
	}
	if got := Encode(testCols, Fields{"EmploymentStatus": " Unemployed "}); got[3] != 2 {
		t.Fatalf("trimmed value ordinal = %v, want 2", got[3])
	}
}

func TestEncode_StableAcrossFieldMapVariants(t *testing.T) {
	// Same logical content assembled separately must encode identically;
	// the vector order is driven by the column list, never map iteration.
	a := Fields{"Age": 30, "CreditScore": 680, "EmploymentStatus": "Employed", "LoanDuration": 24}
	b := Fields{"LoanDuration": 24, "EmploymentStatus": "Employed", "CreditScore": 680, "Age": 30}
	va, vb := Encode(testCols, a), Encode(testCols, b)
	for i := range va {
		if va[i] != vb[i] {
			t.Fatalf("column %s differs: %v vs %v", testCols[i], va[i], vb[i])
		}
	}
}

func TestDropLoanAmount_PreservesRelativeOrder(t *testing.T) {
	fields := Fields{"Age": 31, "LoanAmount": 123456.0, "LoanDuration": 36}
	full := Encode(testCols, fields)
	reduced := dropLoanAmount(testCols, full)

	if len(reduced) != len(full)-1 {
		t.Fatalf("reduced length = %d, want %d", len(reduced), len(full)-1)
	}
	// Everything before LoanAmount is unchanged, everything after shifts
	// left by one.
	j := 0
	for i, col := range testCols {
		if col == LoanAmountColumn {
			continue
		}
		if reduced[j] != full[i] {
			t.Fatalf("reduced[%d] = %v, want %v (%s)", j, reduced[j], full[i], col)
		}
		j++
	}
}
