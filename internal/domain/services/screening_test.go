package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelworks/nameguard/internal/domain/entities"
	"github.com/parcelworks/nameguard/internal/domain/mocks"
)

func testLexicon() *mocks.LexiconStore {
	return &mocks.LexiconStore{Entries: []entities.LexiconEntry{
		{Term: "ghetto", Category: entities.CategoryProfane, Locale: "en", Severity: 2},
		{Term: "hood", Category: entities.CategoryProfane, Locale: "en", Severity: 1},
		{Term: "plantation", Category: entities.CategoryCultural, Locale: "en", Severity: 3, Note: "evokes slavery-era estates"},
		{Term: "savage", Category: entities.CategoryCultural, Locale: "en", Severity: 2},
		{Term: "crib", Category: entities.CategorySlang, Locale: "en", Severity: 1},
		{Term: "crip", Category: entities.CategorySlang, Locale: "en", Severity: 3},
	}}
}

func newTestScreening(t *testing.T) *ScreeningService {
	t.Helper()
	return NewScreeningService(testLexicon(), NewEncoderRegistry(), entities.DefaultThresholds())
}

func verdictFor(t *testing.T, verdicts []entities.CheckVerdict, check entities.Check) entities.CheckVerdict {
	t.Helper()
	for _, v := range verdicts {
		if v.Check == check {
			return v
		}
	}
	t.Fatalf("no verdict for %s check", check)
	return entities.CheckVerdict{}
}

func TestScreenVerdictOrder(t *testing.T) {
	svc := newTestScreening(t)

	verdicts := svc.Screen(entities.NewCandidateName("Sunny Meadows"), "en")

	require.Len(t, verdicts, 4)
	want := []entities.Check{entities.CheckProfanity, entities.CheckCultural, entities.CheckSlang, entities.CheckPhonetic}
	for i, check := range want {
		assert.Equal(t, check, verdicts[i].Check)
	}
}

func TestScreenCleanName(t *testing.T) {
	svc := newTestScreening(t)

	verdicts := svc.Screen(entities.NewCandidateName("Sunny Meadows"), "en")

	for _, v := range verdicts {
		assert.False(t, v.Flagged, "%s check flagged: %s", v.Check, v.Reason)
		assert.Less(t, v.Score, 0.85, "%s check", v.Check)
	}
}

func TestScreenExactMatch(t *testing.T) {
	svc := newTestScreening(t)

	verdicts := svc.Screen(entities.NewCandidateName("Ghetto Gardens"), "en")

	profanity := verdictFor(t, verdicts, entities.CheckProfanity)
	assert.True(t, profanity.Flagged)
	assert.Equal(t, 1.0, profanity.Score)
	assert.Equal(t, "ghetto", profanity.MatchedTerm)
	assert.Contains(t, profanity.Reason, "matches")

	assert.False(t, verdictFor(t, verdicts, entities.CheckCultural).Flagged)
	assert.False(t, verdictFor(t, verdicts, entities.CheckSlang).Flagged)
}

func TestScreenPhoneticDisguise(t *testing.T) {
	svc := newTestScreening(t)

	// "getto" spells around the lexicon but shares its phonetic key.
	verdicts := svc.Screen(entities.NewCandidateName("Getto Park"), "en")

	profanity := verdictFor(t, verdicts, entities.CheckProfanity)
	assert.True(t, profanity.Flagged)
	assert.Equal(t, 1.0, profanity.Score)
	assert.Equal(t, "ghetto", profanity.MatchedTerm)
	assert.Contains(t, profanity.Reason, "sounds like")

	phonetic := verdictFor(t, verdicts, entities.CheckPhonetic)
	assert.True(t, phonetic.Flagged)
	assert.Equal(t, "ghetto", phonetic.MatchedTerm)
}

func TestScreenFuzzyMatch(t *testing.T) {
	svc := newTestScreening(t)

	// One character dropped from "plantation": similarity 0.90, and the
	// phonetic keys no longer collide.
	verdicts := svc.Screen(entities.NewCandidateName("Plantaton Row"), "en")

	cultural := verdictFor(t, verdicts, entities.CheckCultural)
	assert.True(t, cultural.Flagged)
	assert.InDelta(t, 0.9, cultural.Score, 1e-9)
	assert.Equal(t, "plantation", cultural.MatchedTerm)
	assert.Contains(t, cultural.Reason, "close to")
	assert.Contains(t, cultural.Reason, "evokes slavery-era estates")

	assert.False(t, verdictFor(t, verdicts, entities.CheckPhonetic).Flagged)
}

func TestScreenSeverityTieBreak(t *testing.T) {
	svc := newTestScreening(t)

	// "krip" collides phonetically with both "crib" (severity 1) and
	// "crip" (severity 3); the higher severity entry must win.
	verdicts := svc.Screen(entities.NewCandidateName("Krip House"), "en")

	slang := verdictFor(t, verdicts, entities.CheckSlang)
	assert.True(t, slang.Flagged)
	assert.Equal(t, 1.0, slang.Score)
	assert.Equal(t, "crip", slang.MatchedTerm)

	phonetic := verdictFor(t, verdicts, entities.CheckPhonetic)
	assert.True(t, phonetic.Flagged)
	assert.Equal(t, "crip", phonetic.MatchedTerm)
}

func TestScreenEmptyName(t *testing.T) {
	svc := newTestScreening(t)

	verdicts := svc.Screen(entities.NewCandidateName("  !!  "), "en")

	require.Len(t, verdicts, 4)
	for _, v := range verdicts {
		assert.False(t, v.Flagged)
		assert.Equal(t, 0.0, v.Score)
	}
}

func TestScreenCustomThresholds(t *testing.T) {
	thresholds := entities.DefaultThresholds()
	thresholds.Cultural = 0.95
	svc := NewScreeningService(testLexicon(), NewEncoderRegistry(), thresholds)

	verdicts := svc.Screen(entities.NewCandidateName("Plantaton Row"), "en")

	cultural := verdictFor(t, verdicts, entities.CheckCultural)
	assert.False(t, cultural.Flagged)
	assert.InDelta(t, 0.9, cultural.Score, 1e-9)
	assert.Contains(t, cultural.Reason, "below threshold")
}

func TestScreenGlobalTermsApplyToAnyLocale(t *testing.T) {
	store := &mocks.LexiconStore{Entries: []entities.LexiconEntry{
		{Term: "ghetto", Category: entities.CategoryProfane, Locale: "", Severity: 3},
	}}
	svc := NewScreeningService(store, NewEncoderRegistry(), entities.DefaultThresholds())

	// "fr" was never prepared at construction; the term is global.
	verdicts := svc.Screen(entities.NewCandidateName("Ghetto Lofts"), "fr")

	assert.True(t, verdictFor(t, verdicts, entities.CheckProfanity).Flagged)
}

func TestScreenMultiWordTerm(t *testing.T) {
	store := &mocks.LexiconStore{Entries: []entities.LexiconEntry{
		{Term: "no go zone", Category: entities.CategorySlang, Locale: "en", Severity: 2},
	}}
	svc := NewScreeningService(store, NewEncoderRegistry(), entities.DefaultThresholds())

	verdicts := svc.Screen(entities.NewCandidateName("No Go Zone"), "en")

	slang := verdictFor(t, verdicts, entities.CheckSlang)
	assert.True(t, slang.Flagged)
	assert.Equal(t, 1.0, slang.Score)
	assert.Equal(t, "no go zone", slang.MatchedTerm)
}
