package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoubleMetaphoneCollapsesHomophones(t *testing.T) {
	enc := NewEncoderRegistry().ForLocale("en")

	pairs := [][2]string{
		{"smith", "smyth"},
		{"ghetto", "getto"},
		{"colonial", "kolonial"},
	}
	for _, p := range pairs {
		a := keysForWords(enc, []string{p[0]})
		b := keysForWords(enc, []string{p[1]})
		assert.True(t, keysOverlap(a, b), "%q and %q should share a phonetic key", p[0], p[1])
	}
}

func TestDoubleMetaphoneDistinguishes(t *testing.T) {
	enc := NewEncoderRegistry().ForLocale("en")

	a := keysForWords(enc, []string{"meadow"})
	b := keysForWords(enc, []string{"ghetto"})
	assert.False(t, keysOverlap(a, b))
}

func TestEncodeDeterministic(t *testing.T) {
	reg := NewEncoderRegistry()
	for _, locale := range []string{"en", "en-soundex", "en-nysiis"} {
		enc := reg.ForLocale(locale)
		first := enc.Encode("plantation")
		require.NotEmpty(t, first, "locale %s", locale)
		assert.Equal(t, first, enc.Encode("plantation"), "locale %s", locale)
	}
}

func TestSoundexVariant(t *testing.T) {
	enc := NewEncoderRegistry().ForLocale("en-soundex")

	assert.Equal(t, enc.Encode("robert"), enc.Encode("rupert"))
}

func TestForLocaleDispatch(t *testing.T) {
	reg := NewEncoderRegistry()

	// Unknown locale falls back to the default encoder.
	fallback := reg.ForLocale("xx")
	require.NotNil(t, fallback)
	assert.Equal(t, reg.ForLocale("en").Encode("ghetto"), fallback.Encode("ghetto"))

	// Region subtags resolve to the base language.
	assert.Equal(t, reg.ForLocale("en").Encode("ghetto"), reg.ForLocale("en-US").Encode("ghetto"))
}

type upperEncoder struct{}

func (upperEncoder) Encode(word string) []string { return []string{word} }

func TestRegister(t *testing.T) {
	reg := NewEncoderRegistry()
	reg.Register("fr", upperEncoder{})

	assert.Equal(t, []string{"chateau"}, reg.ForLocale("fr").Encode("chateau"))
}
