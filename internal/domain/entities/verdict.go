package entities

import (
	"fmt"
	"time"
)

// Check identifies one of the five content checks.
type Check string

// The five checks, in canonical report order.
const (
	CheckProfanity Check = "profanity"
	CheckCultural  Check = "cultural"
	CheckSlang     Check = "slang"
	CheckPhonetic  Check = "phonetic"
	CheckDuplicate Check = "duplicate"
)

// CheckOrder is the canonical verdict ordering in reports.
var CheckOrder = []Check{CheckProfanity, CheckCultural, CheckSlang, CheckPhonetic, CheckDuplicate}

// CheckVerdict is the result of one check against one candidate name.
// Score is always in [0,1]; Flagged is true iff Score meets the category
// threshold.
type CheckVerdict struct {
	Check       Check   `json:"check"`
	Flagged     bool    `json:"flagged"`
	MatchedTerm string  `json:"matched_term,omitempty"`
	Score       float64 `json:"score"`
	Reason      string  `json:"reason"`
}

// Exceeds reports whether a score meets its flagging threshold.
// Every check routes through this so the flagging rule lives in one place.
func Exceeds(score, threshold float64) bool {
	return score >= threshold
}

// Thresholds holds the per-category flagging thresholds.
type Thresholds struct {
	Profanity float64
	Cultural  float64
	Slang     float64
	Phonetic  float64
	Duplicate float64
}

// DefaultThresholds returns the reference thresholds: 0.85 for content
// checks (exact and phonetic hits score 1.0 and always flag) and 0.90 for
// duplicates.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Profanity: 0.85,
		Cultural:  0.85,
		Slang:     0.85,
		Phonetic:  0.85,
		Duplicate: 0.90,
	}
}

// For returns the threshold for the given check.
func (t Thresholds) For(check Check) float64 {
	switch check {
	case CheckProfanity:
		return t.Profanity
	case CheckCultural:
		return t.Cultural
	case CheckSlang:
		return t.Slang
	case CheckPhonetic:
		return t.Phonetic
	case CheckDuplicate:
		return t.Duplicate
	default:
		return 1.0
	}
}

// Validate checks that every threshold is in (0,1].
func (t Thresholds) Validate() error {
	for _, check := range CheckOrder {
		v := t.For(check)
		if v <= 0 || v > 1 {
			return fmt.Errorf("threshold for %s check is %v, want (0,1]", check, v)
		}
	}
	return nil
}

// CheckFailure records a check that could not be evaluated, distinct from a
// check that passed.
type CheckFailure struct {
	Check  Check  `json:"check"`
	Reason string `json:"reason"`
}

// ValidationReport is the aggregated outcome of a validation request.
// OverallPass is true iff no verdict is flagged and no check failed.
// Checks that were not evaluated (e.g. duplicate without a location) are
// absent from Verdicts.
type ValidationReport struct {
	ID          string             `json:"id"`
	Candidate   CandidateName      `json:"candidate"`
	Verdicts    []CheckVerdict     `json:"verdicts"`
	Failures    []CheckFailure     `json:"failures,omitempty"`
	Conflicts   []ExistingProperty `json:"conflicts,omitempty"`
	Suggestions []string           `json:"suggestions,omitempty"`
	OverallPass bool               `json:"overall_pass"`
	CreatedAt   time.Time          `json:"created_at"`
}
