package services

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// PhoneticEncoder converts a word into one or more phonetic keys.
// Implementations are pure functions of the input: no I/O, no state.
type PhoneticEncoder interface {
	Encode(word string) []string
}

// doubleMetaphoneEncoder emits the primary and secondary Double Metaphone
// codes. The default encoder: it collapses homophones aggressively, which
// is what catches disallowed terms disguised by alternate spelling.
type doubleMetaphoneEncoder struct{}

func (doubleMetaphoneEncoder) Encode(word string) []string {
	primary, secondary := matchr.DoubleMetaphone(word)
	keys := make([]string, 0, 2)
	if primary != "" {
		keys = append(keys, primary)
	}
	if secondary != "" && secondary != primary {
		keys = append(keys, secondary)
	}
	return keys
}

// soundexEncoder emits the classic four-character Soundex code.
type soundexEncoder struct{}

func (soundexEncoder) Encode(word string) []string {
	if code := matchr.Soundex(word); code != "" {
		return []string{code}
	}
	return nil
}

// nysiisEncoder emits the NYSIIS code, which preserves more vowel
// information than Soundex.
type nysiisEncoder struct{}

func (nysiisEncoder) Encode(word string) []string {
	if code := matchr.NYSIIS(word); code != "" {
		return []string{code}
	}
	return nil
}

// EncoderRegistry maps locales to phonetic encoders. A plain dispatch
// table: locale variants are looked up exactly, then by base language,
// then fall back to the default encoder.
type EncoderRegistry struct {
	encoders map[string]PhoneticEncoder
	fallback PhoneticEncoder
}

// NewEncoderRegistry returns a registry with the built-in encoders:
// "en" (Double Metaphone), "en-soundex" and "en-nysiis".
func NewEncoderRegistry() *EncoderRegistry {
	return &EncoderRegistry{
		encoders: map[string]PhoneticEncoder{
			"en":         doubleMetaphoneEncoder{},
			"en-soundex": soundexEncoder{},
			"en-nysiis":  nysiisEncoder{},
		},
		fallback: doubleMetaphoneEncoder{},
	}
}

// Register adds or replaces the encoder for a locale.
func (r *EncoderRegistry) Register(locale string, enc PhoneticEncoder) {
	r.encoders[strings.ToLower(locale)] = enc
}

// ForLocale returns the encoder for the locale, trying the exact tag, then
// the base language, then the default encoder.
func (r *EncoderRegistry) ForLocale(locale string) PhoneticEncoder {
	locale = strings.ToLower(locale)
	if enc, ok := r.encoders[locale]; ok {
		return enc
	}
	if base, _, found := strings.Cut(locale, "-"); found {
		if enc, ok := r.encoders[base]; ok {
			return enc
		}
	}
	return r.fallback
}

// keysForWords returns the union of phonetic keys across all words.
func keysForWords(enc PhoneticEncoder, words []string) map[string]struct{} {
	keys := make(map[string]struct{}, len(words)*2)
	for _, w := range words {
		for _, k := range enc.Encode(w) {
			keys[k] = struct{}{}
		}
	}
	return keys
}

// keysOverlap reports whether the two key sets share at least one key.
func keysOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for k := range a {
		if _, ok := b[k]; ok {
			return true
		}
	}
	return false
}
