// Package handlers wires CLI commands to the domain services.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/parcelworks/nameguard/internal/domain/entities"
	"github.com/parcelworks/nameguard/internal/domain/ports"
	"github.com/parcelworks/nameguard/internal/domain/services"
)

// ValidateHandler handles property name validation requests.
type ValidateHandler struct {
	validator *services.ValidatorService
	geocoder  ports.Geocoder // optional, resolves --address
}

// NewValidateHandler creates a new validate handler. geocoder may be nil,
// in which case address-based requests are rejected.
func NewValidateHandler(validator *services.ValidatorService, geocoder ports.Geocoder) *ValidateHandler {
	return &ValidateHandler{
		validator: validator,
		geocoder:  geocoder,
	}
}

// ValidateOptions controls a validation request.
type ValidateOptions struct {
	Locale       string
	Location     *entities.Location // nil skips the duplicate check
	Address      string             // geocoded when Location is nil
	RadiusMeters float64
	Timeout      time.Duration
}

// Handle validates a candidate name, geocoding the address first when one
// is given instead of coordinates.
func (h *ValidateHandler) Handle(ctx context.Context, name string, opts ValidateOptions) (entities.ValidationReport, error) {
	location := opts.Location
	if location == nil && opts.Address != "" {
		if h.geocoder == nil {
			return entities.ValidationReport{}, fmt.Errorf("no geocoder configured: pass coordinates instead of an address")
		}
		loc, err := h.geocoder.Geocode(ctx, opts.Address)
		if err != nil {
			return entities.ValidationReport{}, fmt.Errorf("geocoding %q: %w", opts.Address, err)
		}
		location = &loc
	}

	return h.validator.Validate(ctx, services.Request{
		Name:         name,
		Locale:       opts.Locale,
		Location:     location,
		RadiusMeters: opts.RadiusMeters,
		Timeout:      opts.Timeout,
	})
}

// RenderJSON writes the report as indented JSON.
func (h *ValidateHandler) RenderJSON(w io.Writer, report entities.ValidationReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// RenderText writes a human-readable report.
func (h *ValidateHandler) RenderText(w io.Writer, report entities.ValidationReport) {
	pass := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)
	warn := color.New(color.FgYellow)

	fmt.Fprintf(w, "Name: %s\n", report.Candidate.Raw)
	if report.Candidate.Normalized != report.Candidate.Raw {
		fmt.Fprintf(w, "Normalized: %s\n", report.Candidate.Normalized)
	}
	fmt.Fprintln(w)

	for _, v := range report.Verdicts {
		if v.Flagged {
			fail.Fprintf(w, "  ✗ %-10s", v.Check)
			fmt.Fprintf(w, " %s (score %.2f)\n", v.Reason, v.Score)
		} else {
			pass.Fprintf(w, "  ✓ %-10s", v.Check)
			fmt.Fprintf(w, " %s\n", v.Reason)
		}
	}

	for _, f := range report.Failures {
		warn.Fprintf(w, "  ! %-10s", f.Check)
		fmt.Fprintf(w, " %s\n", f.Reason)
	}

	if len(report.Conflicts) > 0 {
		fmt.Fprintln(w, "\nConflicting properties:")
		for _, c := range report.Conflicts {
			fmt.Fprintf(w, "  %s (%.0fm away)\n", c.Name, c.DistanceMeters)
		}
	}

	if len(report.Suggestions) > 0 {
		fmt.Fprintln(w, "\nSuggestions:")
		for _, s := range report.Suggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}

	fmt.Fprintln(w)
	if report.OverallPass {
		pass.Fprintln(w, "PASS")
	} else {
		fail.Fprintln(w, "FAIL")
	}
}
