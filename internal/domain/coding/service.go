package coding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrDescriptionRequired = errors.New("description is required")
	ErrDescriptionTooShort = errors.New("description too short")
	ErrDescriptionTooLong  = errors.New("description too long")
)

// ReportIDPrefix prefixes every generated report identifier.
const ReportIDPrefix = "report-"

// NewReportID returns "report-" followed by eight lowercase hex characters.
func NewReportID() string {
	// The first group of a canonical UUID string is 8 lowercase hex digits.
	return ReportIDPrefix + uuid.NewString()[:8]
}

// Service validates analysis requests and runs the classifier.
type Service struct {
	newID    func() string
	observer func(Profile)
}

// Option customises a Service.
type Option func(*Service)

// WithIDGenerator overrides the report identifier generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// WithProfileObserver registers a callback invoked with the matched
// profile after each successful analysis.
func WithProfileObserver(fn func(Profile)) Option {
	return func(s *Service) { s.observer = fn }
}

// NewService creates a new coding service.
func NewService(opts ...Option) *Service {
	s := &Service{newID: NewReportID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateDescription checks the trimmed description against the length
// bounds and returns the trimmed text.
func ValidateDescription(description string) (string, error) {
	trimmed := strings.TrimSpace(description)
	n := utf8.RuneCountInString(trimmed)
	switch {
	case n == 0:
		return "", ErrDescriptionRequired
	case n < MinDescriptionLength:
		return "", fmt.Errorf("%w (minimum %d characters required)", ErrDescriptionTooShort, MinDescriptionLength)
	case n > MaxDescriptionLength:
		return "", fmt.Errorf("%w (maximum %d characters)", ErrDescriptionTooLong, MaxDescriptionLength)
	}
	return trimmed, nil
}

// Analyze validates req and wraps the classifier output in a response with
// a fresh report identifier.
func (s *Service) Analyze(ctx context.Context, req *AnalysisRequest) (*AnalysisResponse, error) {
	if req == nil {
		return nil, ErrDescriptionRequired
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	description, err := ValidateDescription(req.Description)
	if err != nil {
		return nil, err
	}

	profile := MatchProfile(description)
	resp := &AnalysisResponse{
		ReportID: s.newID(),
		Status:   StatusSuccess,
		Analysis: profileResults[profile].clone(),
	}
	if s.observer != nil {
		s.observer(profile)
	}
	return resp, nil
}
