package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelworks/nameguard/internal/domain/entities"
	"github.com/parcelworks/nameguard/internal/domain/mocks"
	"github.com/parcelworks/nameguard/internal/domain/services"
)

func newTestValidator(t *testing.T, index *mocks.PropertyIndex) *services.ValidatorService {
	t.Helper()
	store := &mocks.LexiconStore{Entries: []entities.LexiconEntry{
		{Term: "ghetto", Category: entities.CategoryProfane, Locale: "en", Severity: 2},
	}}
	thresholds := entities.DefaultThresholds()
	screening := services.NewScreeningService(store, services.NewEncoderRegistry(), thresholds)
	duplicates := services.NewDuplicateService(index, thresholds.Duplicate)
	return services.NewValidatorService(screening, duplicates, services.NewReportBuilder(), nil)
}

func TestHandleWithCoordinates(t *testing.T) {
	index := &mocks.PropertyIndex{}
	geocoder := &mocks.Geocoder{}
	handler := NewValidateHandler(newTestValidator(t, index), geocoder)

	report, err := handler.Handle(context.Background(), "Sunny Meadows", ValidateOptions{
		Locale:       "en",
		Location:     &entities.Location{Lat: 40.0, Lon: -75.0},
		RadiusMeters: 200,
	})

	require.NoError(t, err)
	assert.True(t, report.OverallPass)
	assert.Equal(t, 1, index.FindCallCount)
	assert.Equal(t, 0, geocoder.GeocodeCallCount)
}

func TestHandleGeocodesAddress(t *testing.T) {
	index := &mocks.PropertyIndex{}
	geocoder := &mocks.Geocoder{Location: entities.Location{Lat: 39.8, Lon: -89.6}}
	handler := NewValidateHandler(newTestValidator(t, index), geocoder)

	report, err := handler.Handle(context.Background(), "Sunny Meadows", ValidateOptions{
		Locale:       "en",
		Address:      "123 Main St, Springfield",
		RadiusMeters: 200,
	})

	require.NoError(t, err)
	assert.True(t, report.OverallPass)
	assert.Equal(t, 1, geocoder.GeocodeCallCount)
	assert.Equal(t, "123 Main St, Springfield", geocoder.LastAddress)
	assert.Equal(t, 39.8, index.LastLat)
	assert.Equal(t, -89.6, index.LastLon)
}

func TestHandleGeocoderFailure(t *testing.T) {
	geocoder := &mocks.Geocoder{Err: errors.New("service down")}
	handler := NewValidateHandler(newTestValidator(t, &mocks.PropertyIndex{}), geocoder)

	_, err := handler.Handle(context.Background(), "Sunny Meadows", ValidateOptions{
		Locale:       "en",
		Address:      "123 Main St",
		RadiusMeters: 200,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "geocoding")
}

func TestHandleAddressWithoutGeocoder(t *testing.T) {
	handler := NewValidateHandler(newTestValidator(t, &mocks.PropertyIndex{}), nil)

	_, err := handler.Handle(context.Background(), "Sunny Meadows", ValidateOptions{
		Locale:  "en",
		Address: "123 Main St",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no geocoder configured")
}

func TestRenderText(t *testing.T) {
	color.NoColor = true
	handler := NewValidateHandler(newTestValidator(t, &mocks.PropertyIndex{}), nil)

	report, err := handler.Handle(context.Background(), "Ghetto Gardens", ValidateOptions{Locale: "en"})
	require.NoError(t, err)

	var buf bytes.Buffer
	handler.RenderText(&buf, report)

	out := buf.String()
	assert.Contains(t, out, "Name: Ghetto Gardens")
	assert.Contains(t, out, "profanity")
	assert.Contains(t, out, "FAIL")
	assert.NotContains(t, out, "PASS")
}

func TestRenderTextPassing(t *testing.T) {
	color.NoColor = true
	handler := NewValidateHandler(newTestValidator(t, &mocks.PropertyIndex{}), nil)

	report, err := handler.Handle(context.Background(), "Sunny Meadows", ValidateOptions{Locale: "en"})
	require.NoError(t, err)

	var buf bytes.Buffer
	handler.RenderText(&buf, report)

	assert.Contains(t, buf.String(), "PASS")
}

func TestRenderJSON(t *testing.T) {
	handler := NewValidateHandler(newTestValidator(t, &mocks.PropertyIndex{}), nil)

	report, err := handler.Handle(context.Background(), "Sunny Meadows", ValidateOptions{Locale: "en"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, handler.RenderJSON(&buf, report))

	var decoded entities.ValidationReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, report.ID, decoded.ID)
	assert.True(t, decoded.OverallPass)
	assert.Len(t, decoded.Verdicts, 4)
}
