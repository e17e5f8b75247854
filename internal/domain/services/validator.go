package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/parcelworks/nameguard/internal/domain/entities"
	"github.com/parcelworks/nameguard/internal/domain/ports"
)

// Candidate name bounds: the validator targets short, name-like strings.
const (
	MaxNameRunes = 100
	MaxNameWords = 6
)

// Request describes a single validation call. Location is optional: when
// nil, the duplicate check is skipped and its verdict is absent from the
// report. Timeout bounds the property-index call when positive.
type Request struct {
	Name         string
	Locale       string
	Location     *entities.Location
	RadiusMeters float64
	Timeout      time.Duration
}

// ValidatorService orchestrates screening, duplicate checking and report
// building for one validation request. Screening and the duplicate check
// share no mutable state and run concurrently.
type ValidatorService struct {
	screening  *ScreeningService
	duplicates *DuplicateService
	reports    *ReportBuilder
	suggester  ports.Suggester // optional
}

// NewValidatorService creates a validator. suggester may be nil, in which
// case reports carry no alternative-name suggestions.
func NewValidatorService(screening *ScreeningService, duplicates *DuplicateService, reports *ReportBuilder, suggester ports.Suggester) *ValidatorService {
	return &ValidatorService{
		screening:  screening,
		duplicates: duplicates,
		reports:    reports,
		suggester:  suggester,
	}
}

// Validate screens the candidate name and, when a location is supplied,
// checks for near-duplicate property names within the radius.
//
// A geo lookup failure does not fail the call: it is recorded as a check
// failure in the report ("duplicate check failed", distinct from a passing
// duplicate verdict) and forces OverallPass to false. Invalid input is
// rejected with *entities.InvalidInputError before any check runs.
func (s *ValidatorService) Validate(ctx context.Context, req Request) (entities.ValidationReport, error) {
	candidate, err := validateRequest(req)
	if err != nil {
		return entities.ValidationReport{}, err
	}

	var (
		verdicts   []entities.CheckVerdict
		dupVerdict entities.CheckVerdict
		dupRan     bool
		conflicts  []entities.ExistingProperty
		failure    *entities.CheckFailure
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		verdicts = s.screening.Screen(candidate, req.Locale)
		return nil
	})

	if req.Location != nil {
		location := *req.Location
		g.Go(func() error {
			dctx := gctx
			if req.Timeout > 0 {
				var cancel context.CancelFunc
				dctx, cancel = context.WithTimeout(gctx, req.Timeout)
				defer cancel()
			}

			v, c, err := s.duplicates.CheckDuplicates(dctx, candidate, location, req.RadiusMeters)
			if err != nil {
				var geoErr *entities.GeoLookupError
				if errors.As(err, &geoErr) {
					failure = &entities.CheckFailure{
						Check:  entities.CheckDuplicate,
						Reason: "duplicate check failed: " + geoErr.Error(),
					}
					return nil
				}
				return err
			}
			dupVerdict, conflicts, dupRan = v, c, true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return entities.ValidationReport{}, fmt.Errorf("validating %q: %w", req.Name, err)
	}

	if dupRan {
		verdicts = append(verdicts, dupVerdict)
	}

	var failures []entities.CheckFailure
	if failure != nil {
		failures = append(failures, *failure)
	}

	report := s.reports.Build(candidate, verdicts, failures)
	report.Conflicts = conflicts

	if s.suggester != nil && !report.OverallPass {
		report.Suggestions = s.suggestAlternatives(ctx, req.Name, report)
	}

	return report, nil
}

// suggestAlternatives asks the suggester for replacement names. Best
// effort: a suggester failure leaves the report without suggestions.
func (s *ValidatorService) suggestAlternatives(ctx context.Context, name string, report entities.ValidationReport) []string {
	var issues []string
	for _, v := range report.Verdicts {
		if v.Flagged {
			issues = append(issues, v.Reason)
		}
	}
	if len(issues) == 0 {
		return nil
	}

	suggestions, err := s.suggester.Suggest(ctx, name, issues)
	if err != nil {
		return nil
	}
	return suggestions
}

// validateRequest rejects empty or oversized names and invalid coordinates
// before any check runs.
func validateRequest(req Request) (entities.CandidateName, error) {
	candidate := entities.NewCandidateName(req.Name)

	if candidate.IsEmpty() {
		return entities.CandidateName{}, &entities.InvalidInputError{Field: "name", Reason: "empty after normalization"}
	}
	if n := utf8.RuneCountInString(req.Name); n > MaxNameRunes {
		return entities.CandidateName{}, &entities.InvalidInputError{
			Field:  "name",
			Reason: fmt.Sprintf("%d characters, max %d", n, MaxNameRunes),
		}
	}
	if n := len(candidate.Words()); n > MaxNameWords {
		return entities.CandidateName{}, &entities.InvalidInputError{
			Field:  "name",
			Reason: fmt.Sprintf("%d words, max %d", n, MaxNameWords),
		}
	}

	if req.Location != nil {
		if err := req.Location.Validate(); err != nil {
			return entities.CandidateName{}, &entities.InvalidInputError{Field: "location", Reason: err.Error()}
		}
		if req.RadiusMeters <= 0 {
			return entities.CandidateName{}, &entities.InvalidInputError{Field: "radius", Reason: "must be positive"}
		}
	}

	return candidate, nil
}
