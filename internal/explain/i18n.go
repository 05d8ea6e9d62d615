package explain

import (
	"fmt"
	"strings"
)

// Supported language codes; anything else normalizes to the first.
var Languages = []string{"en", "fr", "rw"}

// NormalizeLanguage lowercases, truncates to two letters and falls back to
// English for unsupported codes.
func NormalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if len(lang) > 2 {
		lang = lang[:2]
	}
	for _, l := range Languages {
		if l == lang {
			return l
		}
	}
	return Languages[0]
}

// tr resolves (language, key) to a template and formats it. Missing keys
// fall back to English, then to the key itself, so a gap in a translation
// table never breaks a response.
func tr(lang, key string, args ...any) string {
	texts, ok := translations[lang]
	if !ok {
		texts = translations["en"]
	}
	s, ok := texts[key]
	if !ok {
		if s, ok = translations["en"][key]; !ok {
			s = key
		}
	}
	if len(args) == 0 {
		return s
	}
	return fmt.Sprintf(s, args...)
}

// translations maps (language, message key) to a fmt template. The texts
// mirror the platform's published farmer-facing copy; keep keys in sync
// across all three tables.
var translations = map[string]map[string]string{
	"en": {
		"approved_prefix":          "Approved: The application was approved based on ",
		"denied_prefix":            "Denied: The application was not approved primarily due to ",
		"strong_credit":            "strong credit score (%d).",
		"acceptable_credit":        "acceptable credit score (%d).",
		"income_supports":          "income supports the requested loan amount and repayment.",
		"manageable_dti":           "manageable debt-to-income ratio (%.0f%%).",
		"stable_employment":        "stable employment status.",
		"no_defaults":              "no previous loan defaults.",
		"no_bankruptcy":            "no bankruptcy history.",
		"good_payment":             "good payment history.",
		"profile_meets":            "your overall profile meets the eligibility criteria.",
		"credit_low":               "credit score (%d).",
		"high_dti":                 "high debt-to-income ratio (%.0f%%).",
		"prev_defaults":            "previous loan default(s).",
		"bankruptcy_hist":          "bankruptcy history.",
		"employment_status":        "employment status.",
		"income_insufficient":      "income may be insufficient for the requested amount.",
		"weak_payment":             "limited or weak payment history.",
		"combined_risk":            "the combined risk factors in your profile.",
		"eligibility_description":  "Approved means the model predicts the application would be accepted; denied means it would likely be rejected. The reason is derived from your application features (e.g. credit score, income, debt-to-income, employment, payment history).",
		"low_risk":                 "Low risk",
		"moderate_risk":            "Moderate risk",
		"higher_risk":              "Higher risk",
		"risk_low_interpretation":  "The score indicates a lower likelihood of default. Lenders may offer more favorable terms for applications in this range.",
		"risk_mod_interpretation":  "The score indicates a moderate level of default risk. Lenders may apply standard terms or request additional assurance.",
		"risk_high_interpretation": "The score indicates a higher likelihood of default. Lenders may require stronger guarantees or offer different terms.",
		"risk_score_label":         "Risk score: %.1f. ",
		"risk_relative":            "This is a relative measure of default risk (higher number = higher risk). ",
		"interpretation_label":     "Interpretation: %s — %s",
		"score_meaning":            "Scores are typically in a range where lower values (e.g. below 40) indicate lower default risk and higher values (e.g. above 55) indicate higher default risk. The exact scale depends on the model training data.",
		"recommend_intro":          "The recommended amount of %.0f RWF is based on your profile: %s. ",
		"recommend_outro":          "The model considers these and other application features to suggest a loan amount that aligns with typical approvals for similar profiles while respecting affordability and risk.",
		"your_income":              "your annual income (%d RWF)",
		"your_credit":              "your credit score (%d)",
		"your_dti":                 "your debt-to-income ratio (%.0f%%)",
		"your_net_worth":           "your net worth (%d RWF)",
		"savings_reserves":         "savings and reserves (%d RWF)",
		"employment_status_f":      "employment status (%s)",
		"loan_duration":            "requested loan duration (%d months)",
		"recommend_basis":          "The recommendation is driven by income, credit score, debt burden, assets, employment, and loan term from your application.",
	},
	"fr": {
		"approved_prefix":          "Approuvé : La demande a été approuvée en raison de ",
		"denied_prefix":            "Refusé : La demande n'a pas été approuvée principalement en raison de ",
		"strong_credit":            "un bon score de crédit (%d).",
		"acceptable_credit":        "un score de crédit acceptable (%d).",
		"income_supports":          "les revenus permettent de supporter le montant demandé et le remboursement.",
		"manageable_dti":           "un ratio dette/revenus gérable (%.0f%%).",
		"stable_employment":        "une situation d'emploi stable.",
		"no_defaults":              "aucun défaut de prêt antérieur.",
		"no_bankruptcy":            "aucun antécédent de faillite.",
		"good_payment":             "un bon historique de paiement.",
		"profile_meets":            "votre profil global répond aux critères d'éligibilité.",
		"credit_low":               "le score de crédit (%d).",
		"high_dti":                 "un ratio dette/revenus élevé (%.0f%%).",
		"prev_defaults":            "des défauts de prêt antérieurs.",
		"bankruptcy_hist":          "des antécédents de faillite.",
		"employment_status":        "la situation d'emploi.",
		"income_insufficient":      "les revenus peuvent être insuffisants pour le montant demandé.",
		"weak_payment":             "un historique de paiement limité ou faible.",
		"combined_risk":            "l'ensemble des facteurs de risque de votre profil.",
		"eligibility_description":  "Approuvé signifie que le modèle prédit que la demande serait acceptée ; refusé signifie qu'elle serait probablement rejetée. La raison est dérivée de vos données (score de crédit, revenus, ratio dette/revenus, emploi, historique de paiement).",
		"low_risk":                 "Risque faible",
		"moderate_risk":            "Risque modéré",
		"higher_risk":              "Risque élevé",
		"risk_low_interpretation":  "Le score indique une probabilité plus faible de défaut. Les prêteurs peuvent offrir des conditions plus favorables pour les demandes dans cette plage.",
		"risk_mod_interpretation":  "Le score indique un niveau modéré de risque de défaut. Les prêteurs peuvent appliquer des conditions standard ou demander des garanties supplémentaires.",
		"risk_high_interpretation": "Le score indique une probabilité plus élevée de défaut. Les prêteurs peuvent exiger des garanties plus solides ou proposer des conditions différentes.",
		"risk_score_label":         "Score de risque : %.1f. ",
		"risk_relative":            "C'est une mesure relative du risque de défaut (nombre plus élevé = risque plus élevé). ",
		"interpretation_label":     "Interprétation : %s — %s",
		"score_meaning":            "Les scores sont typiquement dans une plage où les valeurs basses (ex. sous 40) indiquent un risque de défaut plus faible et les valeurs hautes (ex. au-dessus de 55) un risque plus élevé. L'échelle exacte dépend des données d'entraînement du modèle.",
		"recommend_intro":          "Le montant recommandé de %.0f RWF est basé sur votre profil : %s. ",
		"recommend_outro":          "Le modèle prend en compte ces éléments et d'autres données de la demande pour proposer un montant qui correspond aux approbations typiques pour des profils similaires tout en respectant la capacité de remboursement et le risque.",
		"your_income":              "vos revenus annuels (%d RWF)",
		"your_credit":              "votre score de crédit (%d)",
		"your_dti":                 "votre ratio dette/revenus (%.0f%%)",
		"your_net_worth":           "votre actif net (%d RWF)",
		"savings_reserves":         "épargne et réserves (%d RWF)",
		"employment_status_f":      "situation d'emploi (%s)",
		"loan_duration":            "durée du prêt demandée (%d mois)",
		"recommend_basis":          "La recommandation est basée sur les revenus, le score de crédit, l'endettement, les actifs, l'emploi et la durée du prêt de votre demande.",
	},
	"rw": {
		"approved_prefix":          "Yemewe: Gusaba kwemewe kubera ",
		"denied_prefix":            "Yahakanwe: Gusaba ntiyemewe cyane cyane kubera ",
		"strong_credit":            "inote yiza y'inguzanyo (%d).",
		"acceptable_credit":        "inote y'inguzanyo yemewe (%d).",
		"income_supports":          "amikoro ashobora gutanga inguzanyo yasabwe no kwishyura.",
		"manageable_dti":           "ingeri y'inguzanyo n'amikoro itunganye (%.0f%%).",
		"stable_employment":        "akazi keza.",
		"no_defaults":              "nta mpinga y'inguzanyo yabanje.",
		"no_bankruptcy":            "nta mateka y'ubusambanyi bw'ubukungu.",
		"good_payment":             "amateka meza yo kwishyura.",
		"profile_meets":            "profili yawe ihuje n'ibisabwa kugira ngo ugire uburenganzira.",
		"credit_low":               "inote y'inguzanyo (%d).",
		"high_dti":                 "ingeri y'inguzanyo n'amikoro hejuru (%.0f%%).",
		"prev_defaults":            "impinga z'inguzanyo zabanje.",
		"bankruptcy_hist":          "amateka y'ubusambanyi bw'ubukungu.",
		"employment_status":        "akazi.",
		"income_insufficient":      "amikoro bishobora kutagira bihagije kuri ayo mafaranga yasabwe.",
		"weak_payment":             "amateke yo kwishyura make cyangwa butubutse.",
		"combined_risk":            "ibintu byose by'ingorane mu profili yawe.",
		"eligibility_description":  "Yemewe bivuze ko imodeli yitegereza ko gusaba kuzemewe; yahakanwe bivuze ko bishobora guhakanwa. Impamvu ituruka ku makuru yawe (urugero: inote, amikoro, ingeri, akazi, amateka yo kwishyura).",
		"low_risk":                 "Ingorane nke",
		"moderate_risk":            "Ingorane idasumba",
		"higher_risk":              "Ingorane nini",
		"risk_low_interpretation":  "Inyungu igaragaza ko hari uburo buke bwo kutishyura. Abaha inguzanyo bashobora gutanga amasezerano meza kuri gusaba muri iki gice.",
		"risk_mod_interpretation":  "Inyungu igaragaza ingorane idasumba yo kutishyura. Abaha inguzanyo bashobora gutanga amasezerano busanzwe cyangwa gusaba umuhamya.",
		"risk_high_interpretation": "Inyungu igaragaza ko hari uburo bukabije bwo kutishyura. Abaha inguzanyo bashobora gusaba inkunga zikomeye cyangwa gutanga amasezerano atandukanye.",
		"risk_score_label":         "Inyungu: %.1f. ",
		"risk_relative":            "Iyi ni igipimo cy'ingorane yo kutishyura (nomero hejuru = ingorane nini). ",
		"interpretation_label":     "Gusobanura: %s — %s",
		"score_meaning":            "Inyungu ziba ziri mu gice cyo hasi (urugero munsi ya 40) zerekana ingorane nke, n'izo hejuru (urugero hejuru ya 55) zerekana ingorane nini. Icyitegererezo bitandukanye bitewe n'amakuru y'imyigishirize.",
		"recommend_intro":          "Amafaranga yemerwa %.0f RWF yashingiwe ku profili yawe: %s. ",
		"recommend_outro":          "Imodeli itereye izi n'izindi makuru kugira ngo itange umubare w'inguzanyo uhuza n'icyemewe gisanzwe kuri profili nk'iyawe, mu gihe igenera ubushobozi n'ingorane.",
		"your_income":              "amikoro y'umwaka (%d RWF)",
		"your_credit":              "inote yawe (%d)",
		"your_dti":                 "ingeri y'inguzanyo n'amikoro (%.0f%%)",
		"your_net_worth":           "agaciro k'umutungo (%d RWF)",
		"savings_reserves":         "ububiko n'ibindi (%d RWF)",
		"employment_status_f":      "akazi (%s)",
		"loan_duration":            "igihe cy'inguzanyo yasabwe (%d amezi)",
		"recommend_basis":          "Icyitegererezo gishingiye ku mikoro, inote, inguzanyo, umutungo, akazi n'igihe cy'inguzanyo mu gusaba kwawe.",
	},
}
