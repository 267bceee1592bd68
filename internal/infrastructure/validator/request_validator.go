package validator

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"learnassist/internal/domain/entity"
	"learnassist/internal/infrastructure/metrics"
	"learnassist/internal/prompt"
)

var ErrMissingFields = errors.New("missing required fields")

// Report lists what a request lacks. It never blocks anything on its own.
type Report struct {
	Missing     []string
	UnknownMode bool
}

func (r Report) OK() bool { return len(r.Missing) == 0 }

// RequestValidator enforces required fields in strict mode.
type RequestValidator struct{}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{}
}

// Inspect reports missing required fields in declaration order and whether the
// mode is outside the endpoint's enumerated set. Whitespace-only counts as missing.
func (v *RequestValidator) Inspect(req entity.Request) Report {
	var rep Report
	for _, f := range req.Fields() {
		if f.Required && f.Value.Blank() {
			rep.Missing = append(rep.Missing, f.Name)
		}
	}

	if modes := prompt.Modes(req.Endpoint()); len(modes) > 0 && req.Mode() != "" {
		rep.UnknownMode = !slices.Contains(modes, req.Mode())
	}
	return rep
}

// Validate returns an error wrapping ErrMissingFields that names every missing
// field. An unknown mode is not an error: it simply adds no instructions.
func (v *RequestValidator) Validate(req entity.Request) error {
	rep := v.Inspect(req)
	if rep.OK() {
		return nil
	}
	metrics.IncError("validator", "missing_fields")
	return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(rep.Missing, ", "))
}
