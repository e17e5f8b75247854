package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/parcelworks/nameguard/internal/domain/entities"
)

// ReportBuilder assembles check verdicts into a final validation report.
type ReportBuilder struct{}

// NewReportBuilder creates a report builder.
func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{}
}

// Build aggregates verdicts and failures into a report. Verdict ordering
// is preserved as received so reports are deterministic and reproducible.
// OverallPass is true iff no verdict is flagged and no check failed.
func (b *ReportBuilder) Build(candidate entities.CandidateName, verdicts []entities.CheckVerdict, failures []entities.CheckFailure) entities.ValidationReport {
	pass := len(failures) == 0
	for _, v := range verdicts {
		if v.Flagged {
			pass = false
		}
	}

	return entities.ValidationReport{
		ID:          uuid.New().String(),
		Candidate:   candidate,
		Verdicts:    verdicts,
		Failures:    failures,
		OverallPass: pass,
		CreatedAt:   time.Now().UTC(),
	}
}
