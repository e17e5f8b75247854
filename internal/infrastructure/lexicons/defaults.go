package lexicons

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultLexiconCSV is the starter English wordlist written by WriteDefault.
// Severity: 1 mild, 2 moderate, 3 severe.
const defaultLexiconCSV = `term,category,locale,severity,note
ghetto,profane,en,2,
hood,profane,en,1,
slum,profane,en,2,
dump,profane,en,1,
plantation,culturally_sensitive,en,3,evokes slavery-era estates
colonial,culturally_sensitive,en,1,
savage,culturally_sensitive,en,2,
squaw,culturally_sensitive,en,3,slur for Indigenous women
massa,culturally_sensitive,en,3,
crib,slang,en,1,
crip,slang,en,3,gang affiliation
blood,slang,en,2,gang affiliation
trap,slang,en,2,drug house connotation
bando,slang,en,2,abandoned drug house
dope,slang,en,1,
`

// WriteDefault writes the starter English lexicon to dir/en.csv. It fails
// if the file already exists.
func WriteDefault(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating lexicons directory: %w", err)
	}

	path := filepath.Join(dir, "en.csv")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("lexicon file already exists at %s", path)
	}

	if err := os.WriteFile(path, []byte(defaultLexiconCSV), 0644); err != nil {
		return "", fmt.Errorf("writing default lexicon: %w", err)
	}
	return path, nil
}
