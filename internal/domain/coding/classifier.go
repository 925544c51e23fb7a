package coding

import "strings"

// Profile names the fixed code set a description was matched to.
type Profile string

const (
	ProfileAppendicitis Profile = "appendicitis"
	ProfileDiabetes     Profile = "diabetes"
	ProfileGeneral      Profile = "general"
)

type profileRule struct {
	profile  Profile
	keywords []string
}

// Evaluated in order; the first rule with a matching keyword wins.
var profileRules = []profileRule{
	{profile: ProfileAppendicitis, keywords: []string{"appendectomy", "appendicitis", "rlq pain"}},
	{profile: ProfileDiabetes, keywords: []string{"diabetes", "a1c", "blood sugar"}},
}

var profileResults = map[Profile]AnalysisResult{
	ProfileAppendicitis: {
		Summary: "Suspected acute appendicitis requiring surgical evaluation",
		CPTCodes: []CodeEntry{
			{Code: "99283", Description: "Emergency department visit, low severity", Confidence: 0.85},
			{Code: "44970", Description: "Laparoscopy, surgical, appendectomy", Confidence: 0.75},
		},
		ICD10Codes: []CodeEntry{
			{Code: "K35.9", Description: "Acute appendicitis, unspecified", Confidence: 0.80},
			{Code: "R10.31", Description: "Right lower quadrant pain", Confidence: 0.90},
		},
		HCPCSCodes: []CodeEntry{
			{Code: "J0696", Description: "Injection, ceftriaxone sodium, per 250 mg", Confidence: 0.60},
		},
		Confidence: 0.78,
		Recommendations: []string{
			"Confirm operative details",
			"Document imaging results",
		},
	},
	ProfileDiabetes: {
		Summary: "Diabetes management and monitoring",
		CPTCodes: []CodeEntry{
			{Code: "99213", Description: "Office/outpatient visit, established patient", Confidence: 0.80},
			{Code: "83036", Description: "Hemoglobin A1c test", Confidence: 0.85},
		},
		ICD10Codes: []CodeEntry{
			{Code: "E11.9", Description: "Type 2 diabetes mellitus without complications", Confidence: 0.75},
		},
		HCPCSCodes: []CodeEntry{},
		Confidence: 0.72,
		Recommendations: []string{
			"Document current medications",
			"Include latest lab values",
		},
	},
	ProfileGeneral: {
		Summary: "General medical evaluation",
		CPTCodes: []CodeEntry{
			{Code: "99213", Description: "Office/outpatient visit, established patient", Confidence: 0.65},
		},
		ICD10Codes: []CodeEntry{
			{Code: "Z00.00", Description: "Encounter for general adult medical examination", Confidence: 0.60},
		},
		HCPCSCodes: []CodeEntry{},
		Confidence: 0.60,
		Recommendations: []string{
			"Provide more specific clinical details",
		},
	},
}

// MatchProfile returns the profile whose keywords appear in description,
// compared case-insensitively. Descriptions matching nothing fall back to
// ProfileGeneral.
func MatchProfile(description string) Profile {
	lower := strings.ToLower(description)
	for _, rule := range profileRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.profile
			}
		}
	}
	return ProfileGeneral
}

// Classify maps a free-text description to its fixed analysis result. It is
// safe for concurrent use and never fails.
func Classify(description string) AnalysisResult {
	return profileResults[MatchProfile(description)].clone()
}

// clone copies the slices so callers cannot mutate the profile tables.
func (r AnalysisResult) clone() AnalysisResult {
	out := r
	out.CPTCodes = append([]CodeEntry{}, r.CPTCodes...)
	out.ICD10Codes = append([]CodeEntry{}, r.ICD10Codes...)
	out.HCPCSCodes = append([]CodeEntry{}, r.HCPCSCodes...)
	out.Recommendations = append([]string{}, r.Recommendations...)
	return out
}
