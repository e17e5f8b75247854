package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/parcelworks/nameguard/internal/domain/entities"
	"github.com/parcelworks/nameguard/internal/domain/ports"
)

// contentChecks maps the lexicon-backed checks to their categories, in
// report order.
var contentChecks = []struct {
	check    entities.Check
	category entities.Category
	label    string
}{
	{entities.CheckProfanity, entities.CategoryProfane, "profane"},
	{entities.CheckCultural, entities.CategoryCultural, "culturally sensitive"},
	{entities.CheckSlang, entities.CategorySlang, "slang"},
}

// preparedTerm is a lexicon entry with its normalized form and phonetic
// keys precomputed.
type preparedTerm struct {
	entry      entities.LexiconEntry
	normalized string
	keys       map[string]struct{}
}

// preparedLexicon holds the prepared terms of one locale, by category.
type preparedLexicon map[entities.Category][]preparedTerm

// ScreeningService classifies candidate names against the loaded lexicons
// using exact, phonetic and fuzzy matching. Read-only after construction
// and safe for concurrent use.
type ScreeningService struct {
	store      ports.LexiconStore
	encoders   *EncoderRegistry
	thresholds entities.Thresholds
	prepared   map[string]preparedLexicon
}

// NewScreeningService creates a screening service and precomputes phonetic
// keys for every locale present in the store.
func NewScreeningService(store ports.LexiconStore, encoders *EncoderRegistry, thresholds entities.Thresholds) *ScreeningService {
	s := &ScreeningService{
		store:      store,
		encoders:   encoders,
		thresholds: thresholds,
		prepared:   make(map[string]preparedLexicon),
	}
	for _, locale := range store.Locales() {
		s.prepared[locale] = s.prepare(locale)
	}
	return s
}

// prepare normalizes and phonetically encodes the store's terms for one
// locale.
func (s *ScreeningService) prepare(locale string) preparedLexicon {
	enc := s.encoders.ForLocale(locale)
	prep := make(preparedLexicon, len(entities.Categories))
	for _, cat := range entities.Categories {
		terms := s.store.TermsByCategory(cat, locale)
		prepared := make([]preparedTerm, 0, len(terms))
		for _, entry := range terms {
			normalized := entities.Normalize(entry.Term)
			prepared = append(prepared, preparedTerm{
				entry:      entry,
				normalized: normalized,
				keys:       keysForWords(enc, strings.Fields(normalized)),
			})
		}
		sort.Slice(prepared, func(i, j int) bool { return prepared[i].normalized < prepared[j].normalized })
		prep[cat] = prepared
	}
	return prep
}

// preparedFor returns the prepared lexicon for a locale, computing it on
// the fly for locales not seen at construction.
func (s *ScreeningService) preparedFor(locale string) preparedLexicon {
	if prep, ok := s.prepared[locale]; ok {
		return prep
	}
	return s.prepare(locale)
}

// Screen runs the profanity, cultural, slang and phonetic checks and
// returns one verdict per check, in that order.
func (s *ScreeningService) Screen(candidate entities.CandidateName, locale string) []entities.CheckVerdict {
	verdicts := make([]entities.CheckVerdict, 0, len(contentChecks)+1)

	if candidate.IsEmpty() {
		for _, cc := range contentChecks {
			verdicts = append(verdicts, emptyVerdict(cc.check))
		}
		return append(verdicts, emptyVerdict(entities.CheckPhonetic))
	}

	enc := s.encoders.ForLocale(locale)
	prep := s.preparedFor(locale)
	tokens := screeningTokens(candidate)

	for _, cc := range contentChecks {
		verdicts = append(verdicts, s.screenCategory(cc.check, cc.label, tokens, enc, prep[cc.category]))
	}
	verdicts = append(verdicts, s.screenPhonetic(tokens, enc, prep))

	return verdicts
}

// screeningTokens returns the words of the candidate plus, for multi-word
// names, the full normalized name so multi-word lexicon terms can match.
func screeningTokens(candidate entities.CandidateName) []string {
	words := candidate.Words()
	if len(words) <= 1 {
		return words
	}
	return append(words, candidate.Normalized)
}

func emptyVerdict(check entities.Check) entities.CheckVerdict {
	return entities.CheckVerdict{
		Check:  check,
		Score:  0,
		Reason: "empty name: nothing to screen",
	}
}

// matchMethod records how a lexicon term was matched, for verdict reasons.
type matchMethod int

const (
	matchNone matchMethod = iota
	matchFuzzy
	matchPhonetic
	matchExact
)

// matchResult is the best match found for one check.
type matchResult struct {
	score  float64
	method matchMethod
	token  string
	entry  entities.LexiconEntry
}

// better resolves two match results: higher score wins; at equal score the
// higher-severity entry wins on equal scores, then the stronger method.
func (r matchResult) better(o matchResult) matchResult {
	switch {
	case o.score > r.score:
		return o
	case o.score < r.score || o.score == 0:
		return r
	case o.entry.Severity > r.entry.Severity:
		return o
	case o.entry.Severity == r.entry.Severity && o.method > r.method:
		return o
	default:
		return r
	}
}

// screenCategory scores one lexicon category: per token, exact lookup,
// then phonetic key collision, then best fuzzy similarity, taking the
// maximum across tokens.
func (s *ScreeningService) screenCategory(check entities.Check, label string, tokens []string, enc PhoneticEncoder, terms []preparedTerm) entities.CheckVerdict {
	var best matchResult

	for _, tok := range tokens {
		tokKeys := keysForWords(enc, strings.Fields(tok))
		for i := range terms {
			t := &terms[i]
			var score float64
			var method matchMethod
			switch {
			case tok == t.normalized:
				score, method = 1.0, matchExact
			case keysOverlap(tokKeys, t.keys):
				score, method = 1.0, matchPhonetic
			default:
				score, method = BestSimilarity(tok, t.normalized), matchFuzzy
			}
			best = best.better(matchResult{score: score, method: method, token: tok, entry: t.entry})
		}
	}

	return s.buildVerdict(check, label, best)
}

// screenPhonetic is the standalone phonetic-collision check. It reports
// key collisions against terms of every category: a disguised spelling of
// any disallowed term is phonetic evasion regardless of category.
func (s *ScreeningService) screenPhonetic(tokens []string, enc PhoneticEncoder, prep preparedLexicon) entities.CheckVerdict {
	var best matchResult

	for _, tok := range tokens {
		tokKeys := keysForWords(enc, strings.Fields(tok))
		for _, cat := range entities.Categories {
			for i := range prep[cat] {
				t := &prep[cat][i]
				if keysOverlap(tokKeys, t.keys) {
					best = best.better(matchResult{score: 1.0, method: matchPhonetic, token: tok, entry: t.entry})
				}
			}
		}
	}

	threshold := s.thresholds.For(entities.CheckPhonetic)
	if best.score == 0 || !entities.Exceeds(best.score, threshold) {
		return entities.CheckVerdict{
			Check:  entities.CheckPhonetic,
			Score:  best.score,
			Reason: "no phonetic collision with disallowed terms",
		}
	}

	return entities.CheckVerdict{
		Check:       entities.CheckPhonetic,
		Flagged:     true,
		MatchedTerm: best.entry.Term,
		Score:       best.score,
		Reason:      fmt.Sprintf("%q shares a phonetic key with %q", best.token, best.entry.Term),
	}
}

// buildVerdict turns the best match for a category into a verdict.
func (s *ScreeningService) buildVerdict(check entities.Check, label string, best matchResult) entities.CheckVerdict {
	threshold := s.thresholds.For(check)

	if best.score == 0 {
		return entities.CheckVerdict{
			Check:  check,
			Score:  0,
			Reason: fmt.Sprintf("no %s term matched", label),
		}
	}

	if !entities.Exceeds(best.score, threshold) {
		return entities.CheckVerdict{
			Check:  check,
			Score:  best.score,
			Reason: fmt.Sprintf("best %s match %q scored %.2f, below threshold %.2f", label, best.entry.Term, best.score, threshold),
		}
	}

	var reason string
	switch best.method {
	case matchExact:
		reason = fmt.Sprintf("%q matches %s term %q", best.token, label, best.entry.Term)
	case matchPhonetic:
		reason = fmt.Sprintf("%q sounds like %s term %q", best.token, label, best.entry.Term)
	default:
		reason = fmt.Sprintf("%q is close to %s term %q (similarity %.2f)", best.token, label, best.entry.Term, best.score)
	}
	if best.entry.Note != "" {
		reason += ": " + best.entry.Note
	}

	return entities.CheckVerdict{
		Check:       check,
		Flagged:     true,
		MatchedTerm: best.entry.Term,
		Score:       best.score,
		Reason:      reason,
	}
}
