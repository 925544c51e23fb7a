package coding

import "encoding/json"

// Default caps reported back to callers when a request omits them. The
// classifier does not enforce them.
const (
	DefaultMaxCPTCodes   = 5
	DefaultMaxICDCodes   = 5
	DefaultMaxHCPCSCodes = 3
)

// Description length bounds, counted in characters after trimming.
const (
	MinDescriptionLength = 10
	MaxDescriptionLength = 10000
)

// StatusSuccess is the only status an AnalysisResponse carries.
const StatusSuccess = "success"

// AnalysisRequest is the POST /analyze body.
type AnalysisRequest struct {
	Description   string `json:"description"`
	MaxCPTCodes   int    `json:"max_cpt_codes"`
	MaxICDCodes   int    `json:"max_icd_codes"`
	MaxHCPCSCodes int    `json:"max_hcpcs_codes"`
}

// UnmarshalJSON applies the max_* defaults and accepts the legacy
// patient_description field when description is absent.
func (r *AnalysisRequest) UnmarshalJSON(data []byte) error {
	type alias AnalysisRequest
	aux := struct {
		alias
		PatientDescription *string `json:"patient_description"`
	}{
		alias: alias{
			MaxCPTCodes:   DefaultMaxCPTCodes,
			MaxICDCodes:   DefaultMaxICDCodes,
			MaxHCPCSCodes: DefaultMaxHCPCSCodes,
		},
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = AnalysisRequest(aux.alias)
	if r.Description == "" && aux.PatientDescription != nil {
		r.Description = *aux.PatientDescription
	}
	return nil
}

// CodeEntry is a single candidate billing code.
type CodeEntry struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// AnalysisResult is the classifier output.
type AnalysisResult struct {
	Summary         string      `json:"summary"`
	CPTCodes        []CodeEntry `json:"cpt_codes"`
	ICD10Codes      []CodeEntry `json:"icd10_codes"`
	HCPCSCodes      []CodeEntry `json:"hcpcs_codes"`
	Confidence      float64     `json:"confidence"`
	Recommendations []string    `json:"recommendations"`
}

// AnalysisResponse wraps an AnalysisResult with a report identifier.
type AnalysisResponse struct {
	ReportID string         `json:"report_id"`
	Status   string         `json:"status"`
	Analysis AnalysisResult `json:"analysis"`
}
