package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelworks/nameguard/internal/domain/entities"
)

func TestBuildPassingReport(t *testing.T) {
	builder := NewReportBuilder()
	candidate := entities.NewCandidateName("Sunny Meadows")
	verdicts := []entities.CheckVerdict{
		{Check: entities.CheckProfanity, Score: 0.1},
		{Check: entities.CheckCultural, Score: 0.2},
	}

	report := builder.Build(candidate, verdicts, nil)

	assert.True(t, report.OverallPass)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, candidate, report.Candidate)
	assert.Empty(t, report.Failures)
	assert.WithinDuration(t, time.Now().UTC(), report.CreatedAt, 5*time.Second)
}

func TestBuildFlaggedVerdictFails(t *testing.T) {
	builder := NewReportBuilder()
	verdicts := []entities.CheckVerdict{
		{Check: entities.CheckProfanity, Score: 0.1},
		{Check: entities.CheckSlang, Flagged: true, Score: 1.0},
	}

	report := builder.Build(entities.NewCandidateName("Krip House"), verdicts, nil)

	assert.False(t, report.OverallPass)
}

func TestBuildFailureFails(t *testing.T) {
	builder := NewReportBuilder()
	verdicts := []entities.CheckVerdict{
		{Check: entities.CheckProfanity, Score: 0.0},
	}
	failures := []entities.CheckFailure{
		{Check: entities.CheckDuplicate, Reason: "duplicate check failed: geo lookup via places failed"},
	}

	report := builder.Build(entities.NewCandidateName("Sunny Meadows"), verdicts, failures)

	assert.False(t, report.OverallPass)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, entities.CheckDuplicate, report.Failures[0].Check)
}

func TestBuildPreservesVerdictOrder(t *testing.T) {
	builder := NewReportBuilder()
	verdicts := []entities.CheckVerdict{
		{Check: entities.CheckProfanity},
		{Check: entities.CheckCultural},
		{Check: entities.CheckSlang},
		{Check: entities.CheckPhonetic},
		{Check: entities.CheckDuplicate},
	}

	report := builder.Build(entities.NewCandidateName("Sunny Meadows"), verdicts, nil)

	require.Len(t, report.Verdicts, len(entities.CheckOrder))
	for i, check := range entities.CheckOrder {
		assert.Equal(t, check, report.Verdicts[i].Check)
	}
}

func TestBuildUniqueIDs(t *testing.T) {
	builder := NewReportBuilder()
	candidate := entities.NewCandidateName("Sunny Meadows")

	a := builder.Build(candidate, nil, nil)
	b := builder.Build(candidate, nil, nil)

	assert.NotEqual(t, a.ID, b.ID)
}
