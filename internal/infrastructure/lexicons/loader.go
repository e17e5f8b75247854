package lexicons

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/parcelworks/nameguard/internal/domain/entities"
	"github.com/parcelworks/nameguard/internal/infrastructure/parsers"
)

// LoadDir reads every parseable lexicon file in dir into a store. Files
// without a known extension are ignored; a file that fails to parse is
// logged and skipped. An unreadable directory or a directory yielding no
// entries at all returns a *entities.LexiconLoadError: the system must not
// screen against an empty lexicon.
func LoadDir(dir string, log *logrus.Logger) (*Store, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, &entities.LexiconLoadError{Source: dir, Err: err}
	}

	var entries []entities.LexiconEntry
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		path := filepath.Join(dir, file.Name())
		parsed, err := LoadFile(path)
		if err != nil {
			log.WithError(err).WithField("file", path).Warn("skipping unparseable lexicon file")
			continue
		}
		entries = append(entries, convert(parsed, path, log)...)
	}

	if len(entries) == 0 {
		return nil, &entities.LexiconLoadError{Source: dir, Err: errors.New("no lexicon entries found")}
	}

	store, err := NewStore(entries)
	if err != nil {
		return nil, &entities.LexiconLoadError{Source: dir, Err: err}
	}

	log.WithFields(logrus.Fields{
		"dir":     dir,
		"entries": store.Len(),
		"locales": store.Locales(),
	}).Info("lexicons loaded")

	return store, nil
}

// LoadFile parses a single lexicon file. Files without a known extension
// return an error.
func LoadFile(path string) ([]parsers.RawEntry, error) {
	parser := parsers.ForFile(path)
	if parser == nil {
		return nil, &entities.LexiconLoadError{Source: path, Err: errors.New("unsupported file extension")}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &entities.LexiconLoadError{Source: path, Err: err}
	}
	defer f.Close()

	raw, err := parser.Parse(f)
	if err != nil {
		return nil, &entities.LexiconLoadError{Source: path, Err: err}
	}
	return raw, nil
}

// convert turns raw parsed rows into validated entries, logging and
// dropping the malformed ones.
func convert(raw []parsers.RawEntry, source string, log *logrus.Logger) []entities.LexiconEntry {
	entries := make([]entities.LexiconEntry, 0, len(raw))
	for _, r := range raw {
		entry := entities.LexiconEntry{
			Term:     r.Term,
			Category: entities.Category(r.Category),
			Locale:   r.Locale,
			Severity: r.Severity,
			Note:     r.Note,
		}
		if err := entry.Validate(); err != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"file": source,
				"line": r.LineNum,
			}).Warn("skipping invalid lexicon entry")
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}
