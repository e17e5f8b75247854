package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelworks/nameguard/internal/domain/entities"
	"github.com/parcelworks/nameguard/internal/domain/mocks"
	"github.com/parcelworks/nameguard/internal/domain/ports"
)

func newTestValidator(t *testing.T, index *mocks.PropertyIndex, suggester ports.Suggester) *ValidatorService {
	t.Helper()
	thresholds := entities.DefaultThresholds()
	screening := NewScreeningService(testLexicon(), NewEncoderRegistry(), thresholds)
	duplicates := NewDuplicateService(index, thresholds.Duplicate)
	return NewValidatorService(screening, duplicates, NewReportBuilder(), suggester)
}

func TestValidateCleanNameWithLocation(t *testing.T) {
	index := &mocks.PropertyIndex{Properties: []entities.ExistingProperty{
		{ID: "p1", Name: "Willow Bend", Lat: 40.001, Lon: -75.0},
	}}
	svc := newTestValidator(t, index, nil)

	report, err := svc.Validate(context.Background(), Request{
		Name:         "Sunny Meadows",
		Locale:       "en",
		Location:     &entities.Location{Lat: 40.0, Lon: -75.0},
		RadiusMeters: 200,
	})

	require.NoError(t, err)
	assert.True(t, report.OverallPass)
	require.Len(t, report.Verdicts, len(entities.CheckOrder))
	for i, check := range entities.CheckOrder {
		assert.Equal(t, check, report.Verdicts[i].Check)
		assert.False(t, report.Verdicts[i].Flagged)
	}
	assert.Empty(t, report.Failures)
	assert.Empty(t, report.Conflicts)
	assert.Equal(t, 1, index.FindCallCount)
}

func TestValidateNearDuplicateBelowThresholdPasses(t *testing.T) {
	// "Sunny Acres Estates" 50m away scores well below the duplicate
	// threshold against "Sunny Acres", so the name is allowed.
	index := &mocks.PropertyIndex{Properties: []entities.ExistingProperty{
		{ID: "p1", Name: "Sunny Acres Estates", Lat: 40.00045, Lon: -75.0},
	}}
	svc := newTestValidator(t, index, nil)

	report, err := svc.Validate(context.Background(), Request{
		Name:         "Sunny Acres",
		Locale:       "en",
		Location:     &entities.Location{Lat: 40.0, Lon: -75.0},
		RadiusMeters: 200,
	})

	require.NoError(t, err)
	assert.True(t, report.OverallPass)

	dup := report.Verdicts[len(report.Verdicts)-1]
	assert.Equal(t, entities.CheckDuplicate, dup.Check)
	assert.False(t, dup.Flagged)
	assert.InDelta(t, 0.5882352941176471, dup.Score, 1e-9)
	assert.Empty(t, report.Conflicts)
}

func TestValidateExactDuplicateFails(t *testing.T) {
	index := &mocks.PropertyIndex{Properties: []entities.ExistingProperty{
		{ID: "p1", Name: "Sunny Acres", Lat: 40.0002, Lon: -75.0},
	}}
	svc := newTestValidator(t, index, nil)

	report, err := svc.Validate(context.Background(), Request{
		Name:         "Sunny Acres",
		Locale:       "en",
		Location:     &entities.Location{Lat: 40.0, Lon: -75.0},
		RadiusMeters: 200,
	})

	require.NoError(t, err)
	assert.False(t, report.OverallPass)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, "p1", report.Conflicts[0].ID)
	assert.Greater(t, report.Conflicts[0].DistanceMeters, 0.0)
}

func TestValidateWithoutLocationSkipsDuplicateCheck(t *testing.T) {
	index := &mocks.PropertyIndex{}
	svc := newTestValidator(t, index, nil)

	report, err := svc.Validate(context.Background(), Request{Name: "Sunny Meadows", Locale: "en"})

	require.NoError(t, err)
	assert.True(t, report.OverallPass)
	require.Len(t, report.Verdicts, 4)
	for _, v := range report.Verdicts {
		assert.NotEqual(t, entities.CheckDuplicate, v.Check)
	}
	assert.Equal(t, 0, index.FindCallCount)
}

func TestValidateGeoFailureRecordedNotReturned(t *testing.T) {
	index := &mocks.PropertyIndex{Err: &entities.GeoLookupError{Provider: "places", Err: errors.New("503")}}
	svc := newTestValidator(t, index, nil)

	report, err := svc.Validate(context.Background(), Request{
		Name:         "Sunny Meadows",
		Locale:       "en",
		Location:     &entities.Location{Lat: 40.0, Lon: -75.0},
		RadiusMeters: 200,
	})

	require.NoError(t, err)
	assert.False(t, report.OverallPass)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, entities.CheckDuplicate, report.Failures[0].Check)
	assert.Contains(t, report.Failures[0].Reason, "duplicate check failed")

	// The failed check contributes no verdict.
	require.Len(t, report.Verdicts, 4)
	for _, v := range report.Verdicts {
		assert.NotEqual(t, entities.CheckDuplicate, v.Check)
	}
}

type slowIndex struct {
	delay time.Duration
}

func (s *slowIndex) FindPropertiesNear(ctx context.Context, lat, lon, radiusMeters float64) ([]entities.ExistingProperty, error) {
	select {
	case <-time.After(s.delay):
		return nil, nil
	case <-ctx.Done():
		return nil, &entities.GeoLookupError{Provider: "slow", Err: ctx.Err()}
	}
}

func TestValidateTimeoutBoundsDuplicateCheck(t *testing.T) {
	thresholds := entities.DefaultThresholds()
	screening := NewScreeningService(testLexicon(), NewEncoderRegistry(), thresholds)
	duplicates := NewDuplicateService(&slowIndex{delay: 5 * time.Second}, thresholds.Duplicate)
	svc := NewValidatorService(screening, duplicates, NewReportBuilder(), nil)

	start := time.Now()
	report, err := svc.Validate(context.Background(), Request{
		Name:         "Sunny Meadows",
		Locale:       "en",
		Location:     &entities.Location{Lat: 40.0, Lon: -75.0},
		RadiusMeters: 200,
		Timeout:      50 * time.Millisecond,
	})

	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, report.OverallPass)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, entities.CheckDuplicate, report.Failures[0].Check)
}

func TestValidateInvalidInput(t *testing.T) {
	svc := newTestValidator(t, &mocks.PropertyIndex{}, nil)

	tests := []struct {
		name    string
		request Request
		field   string
	}{
		{
			name:    "empty name",
			request: Request{Name: "   "},
			field:   "name",
		},
		{
			name:    "punctuation only",
			request: Request{Name: "?!?"},
			field:   "name",
		},
		{
			name:    "too many words",
			request: Request{Name: "one two three four five six seven"},
			field:   "name",
		},
		{
			name:    "too many characters",
			request: Request{Name: strings.Repeat("a", MaxNameRunes+1)},
			field:   "name",
		},
		{
			name: "latitude out of range",
			request: Request{
				Name:         "Sunny Meadows",
				Location:     &entities.Location{Lat: 91.0, Lon: 0},
				RadiusMeters: 200,
			},
			field: "location",
		},
		{
			name: "non-positive radius",
			request: Request{
				Name:     "Sunny Meadows",
				Location: &entities.Location{Lat: 40.0, Lon: -75.0},
			},
			field: "radius",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(context.Background(), tt.request)

			var inputErr *entities.InvalidInputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}
}

func TestValidateSuggestsOnFailure(t *testing.T) {
	suggester := &mocks.Suggester{Suggestions: []string{"Harmony Gardens", "Willow Bend"}}
	svc := newTestValidator(t, &mocks.PropertyIndex{}, suggester)

	report, err := svc.Validate(context.Background(), Request{Name: "Ghetto Gardens", Locale: "en"})

	require.NoError(t, err)
	assert.False(t, report.OverallPass)
	assert.Equal(t, []string{"Harmony Gardens", "Willow Bend"}, report.Suggestions)
	assert.Equal(t, 1, suggester.SuggestCallCount)
	assert.Equal(t, "Ghetto Gardens", suggester.LastName)
	assert.NotEmpty(t, suggester.LastIssues)
}

func TestValidateNoSuggestionsOnPass(t *testing.T) {
	suggester := &mocks.Suggester{Suggestions: []string{"unused"}}
	svc := newTestValidator(t, &mocks.PropertyIndex{}, suggester)

	report, err := svc.Validate(context.Background(), Request{Name: "Sunny Meadows", Locale: "en"})

	require.NoError(t, err)
	assert.True(t, report.OverallPass)
	assert.Empty(t, report.Suggestions)
	assert.Equal(t, 0, suggester.SuggestCallCount)
}

func TestValidateSuggesterFailureIsBestEffort(t *testing.T) {
	suggester := &mocks.Suggester{Err: errors.New("llm unavailable")}
	svc := newTestValidator(t, &mocks.PropertyIndex{}, suggester)

	report, err := svc.Validate(context.Background(), Request{Name: "Ghetto Gardens", Locale: "en"})

	require.NoError(t, err)
	assert.False(t, report.OverallPass)
	assert.Empty(t, report.Suggestions)
}
