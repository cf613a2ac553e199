package errors

import (
	"errors"

	"github.com/lambdalisten/lambdalisten/internal/ast"
	"github.com/lambdalisten/lambdalisten/internal/schema"
)

// Report is this front end's canonical structured error. Every builder
// in reporter.go returns one as a bare *Report; WrapReport turns it into
// a *ReportError, which survives an errors.As/Unwrap chain intact.
type Report struct {
	Schema  string         `json:"schema"`
	Code    string         `json:"code"`
	Phase   string         `json:"phase"`
	Message string         `json:"message"`
	Span    *ast.Span      `json:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// ReportError wraps a Report as an error, preserving it through any
// number of %w-style wraps so callers can recover it with AsReport.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport extracts the Report carried by err, if any.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps r as an error.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON renders r as deterministic JSON, honoring schema.CompactMode.
func (r *Report) ToJSON() ([]byte, error) {
	data, err := schema.MarshalDeterministic(r)
	if err != nil {
		fallback := Report{Schema: schema.ErrorV1, Message: "encoding failed: " + err.Error()}
		data, err = schema.MarshalDeterministic(fallback)
		if err != nil {
			return nil, err
		}
	}
	return schema.FormatJSON(data)
}

// NewGeneric wraps an arbitrary Go error (one that never went through
// reporter.go's TypeError/LowerError builders) as a minimal Report, so
// every error this front end returns to a caller has the same shape.
func NewGeneric(phase string, err error) *Report {
	return &Report{
		Schema:  schema.ErrorV1,
		Code:    "GENERIC",
		Phase:   phase,
		Message: err.Error(),
	}
}
