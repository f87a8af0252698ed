package insight

import (
	"fmt"
	"strings"
)

// conditionContext names the chronic-condition context that changes how a
// biomarker is read.
type conditionContext int

const (
	contextNone conditionContext = iota
	contextDiabetes
	contextHypertension
	contextCardiovascular
)

// referenceRange is one row of the fixed biomarker lookup table. Low/High are
// the generic adult range; High == 0 means no upper bound is enforced
// (HDL, where more is better). Context selects a disease-specific rule that
// runs before the generic range check.
type referenceRange struct {
	Name    string
	Unit    string
	Low     float64
	High    float64
	Context conditionContext
}

// referenceRanges is keyed by LOINC code. Built once, read-only; concurrent
// readers need no locking.
var referenceRanges = map[string]referenceRange{
	// HbA1c appears under two codes in the wild.
	"4548-4":  {Name: "Hemoglobin A1c", Unit: "%", Low: 4.0, High: 5.6, Context: contextDiabetes},
	"33747-0": {Name: "Hemoglobin A1c", Unit: "%", Low: 4.0, High: 5.6, Context: contextDiabetes},

	"8480-6": {Name: "Systolic blood pressure", Unit: "mmHg", Low: 90, High: 119, Context: contextHypertension},
	"8462-4": {Name: "Diastolic blood pressure", Unit: "mmHg", Low: 60, High: 79},

	"2093-3":  {Name: "Total cholesterol", Unit: "mg/dL", Low: 125, High: 199},
	"13457-7": {Name: "LDL cholesterol", Unit: "mg/dL", Low: 0, High: 129, Context: contextCardiovascular},
	"18262-6": {Name: "LDL cholesterol", Unit: "mg/dL", Low: 0, High: 129, Context: contextCardiovascular},
	"2085-9":  {Name: "HDL cholesterol", Unit: "mg/dL", Low: 40, High: 0},
	"2571-8":  {Name: "Triglycerides", Unit: "mg/dL", Low: 0, High: 149},

	"2339-0":  {Name: "Glucose", Unit: "mg/dL", Low: 70, High: 99},
	"2160-0":  {Name: "Creatinine", Unit: "mg/dL", Low: 0.6, High: 1.3},
	"39156-5": {Name: "Body mass index", Unit: "kg/m2", Low: 18.5, High: 24.9},
	"8867-4":  {Name: "Heart rate", Unit: "/min", Low: 60, High: 100},
}

// Interpret maps a biomarker value to a human-readable reading and a severity
// band, taking the patient's active conditions into account for HbA1c,
// systolic blood pressure, and LDL. Unknown codes come back empty and normal
// so downstream aggregation ignores them while the raw value stays
// displayable. Band boundaries resolve to the lower severity.
func Interpret(code string, value float64, activeConditions []string) Interpretation {
	entry, ok := referenceRanges[code]
	if !ok {
		return Interpretation{Code: code, Severity: SeverityNormal}
	}

	switch entry.Context {
	case contextDiabetes:
		if hasCondition(activeConditions, "diabetes", "diabetic") {
			return interpretDiabeticA1c(code, value)
		}
		return interpretA1c(code, value)
	case contextHypertension:
		if hasCondition(activeConditions, "hypertension", "high blood pressure") {
			return interpretHypertensiveSystolic(code, value)
		}
		return interpretSystolic(code, value)
	case contextCardiovascular:
		if hasCondition(activeConditions, "cardiovascular", "coronary", "heart disease", "atherosclerosis") {
			return interpretSecondaryPreventionLDL(code, value)
		}
	}

	return interpretGeneric(entry, code, value)
}

// Disease-specific bands run most specific first; the boundary value always
// lands in the lower-severity band.

func interpretDiabeticA1c(code string, value float64) Interpretation {
	switch {
	case value <= 7.0:
		return Interpretation{Code: code, Text: "Diabetic, well controlled", Severity: SeverityNormal}
	case value <= 8.0:
		return Interpretation{Code: code, Text: "Diabetic, above the 7.0% target", Severity: SeverityWarning}
	default:
		return Interpretation{Code: code, Text: "Diabetic, poorly controlled", Severity: SeverityCritical}
	}
}

func interpretA1c(code string, value float64) Interpretation {
	switch {
	case value < 5.7:
		return Interpretation{Code: code, Text: "Within normal range", Severity: SeverityNormal}
	case value < 6.5:
		return Interpretation{Code: code, Text: "Prediabetic range", Severity: SeverityWarning}
	default:
		return Interpretation{Code: code, Text: "In the diabetic range", Severity: SeverityCritical}
	}
}

func interpretHypertensiveSystolic(code string, value float64) Interpretation {
	switch {
	case value <= 130:
		return Interpretation{Code: code, Text: "At target for hypertension", Severity: SeverityNormal}
	case value <= 140:
		return Interpretation{Code: code, Text: "Above the 130 mmHg target", Severity: SeverityWarning}
	default:
		return Interpretation{Code: code, Text: "Well above the hypertension target", Severity: SeverityCritical}
	}
}

func interpretSystolic(code string, value float64) Interpretation {
	switch {
	case value < 120:
		return Interpretation{Code: code, Text: "Normal blood pressure", Severity: SeverityNormal}
	case value < 140:
		return Interpretation{Code: code, Text: "Elevated blood pressure", Severity: SeverityWarning}
	default:
		return Interpretation{Code: code, Text: "Hypertensive range", Severity: SeverityCritical}
	}
}

func interpretSecondaryPreventionLDL(code string, value float64) Interpretation {
	switch {
	case value <= 70:
		return Interpretation{Code: code, Text: "At secondary-prevention target", Severity: SeverityNormal}
	case value <= 100:
		return Interpretation{Code: code, Text: "Above the 70 mg/dL secondary-prevention target", Severity: SeverityWarning}
	default:
		return Interpretation{Code: code, Text: "Well above the secondary-prevention target", Severity: SeverityCritical}
	}
}

func interpretGeneric(entry referenceRange, code string, value float64) Interpretation {
	if value < entry.Low {
		return Interpretation{
			Code:     code,
			Text:     fmt.Sprintf("%s below reference range (%.4g %s)", entry.Name, entry.Low, entry.Unit),
			Severity: SeverityWarning,
		}
	}
	if entry.High > 0 && value > entry.High {
		return Interpretation{
			Code:     code,
			Text:     fmt.Sprintf("%s above reference range (%.4g %s)", entry.Name, entry.High, entry.Unit),
			Severity: SeverityWarning,
		}
	}
	return Interpretation{
		Code:     code,
		Text:     fmt.Sprintf("%s within reference range", entry.Name),
		Severity: SeverityNormal,
	}
}

// hasCondition matches active condition names against keywords,
// case-insensitively and by substring, so "Type 2 Diabetes Mellitus"
// triggers the diabetes rule.
func hasCondition(names []string, keywords ...string) bool {
	for _, name := range names {
		lower := strings.ToLower(name)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

// ReferenceName returns the table's display name for a code, or "".
func ReferenceName(code string) string {
	return referenceRanges[code].Name
}
