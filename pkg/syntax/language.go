// Package syntax provides the shared language and style-scheme registries
// used for code boxes.
package syntax

import (
	"path/filepath"
	"sort"

	"github.com/grovetools/ctnotes/errors"
	"github.com/moby/patternmatcher"
)

// Language describes a highlightable language.
type Language struct {
	ID    string
	Name  string
	Globs []string

	matcher *patternmatcher.PatternMatcher
}

var builtinLanguages = []Language{
	{ID: "c", Name: "C", Globs: []string{"*.c", "*.h"}},
	{ID: "cpp", Name: "C++", Globs: []string{"*.cc", "*.cpp", "*.cxx", "*.hh", "*.hpp"}},
	{ID: "css", Name: "CSS", Globs: []string{"*.css"}},
	{ID: "dockerfile", Name: "Dockerfile", Globs: []string{"Dockerfile", "Dockerfile.*", "*.dockerfile"}},
	{ID: "go", Name: "Go", Globs: []string{"*.go"}},
	{ID: "html", Name: "HTML", Globs: []string{"*.html", "*.htm"}},
	{ID: "js", Name: "JavaScript", Globs: []string{"*.js", "*.mjs"}},
	{ID: "json", Name: "JSON", Globs: []string{"*.json"}},
	{ID: "makefile", Name: "Makefile", Globs: []string{"Makefile", "GNUmakefile", "*.mk"}},
	{ID: "markdown", Name: "Markdown", Globs: []string{"*.md", "*.markdown"}},
	{ID: "python", Name: "Python", Globs: []string{"*.py", "*.pyw"}},
	{ID: "rust", Name: "Rust", Globs: []string{"*.rs"}},
	{ID: "sh", Name: "Shell", Globs: []string{"*.sh", "*.bash", ".bashrc", ".profile"}},
	{ID: "sql", Name: "SQL", Globs: []string{"*.sql"}},
	{ID: "toml", Name: "TOML", Globs: []string{"*.toml"}},
	{ID: "yaml", Name: "YAML", Globs: []string{"*.yml", "*.yaml"}},
}

// LanguageManager is the registry of known languages.
type LanguageManager struct {
	languages map[string]*Language
	ids       []string
}

// NewLanguageManager compiles the built-in language globs.
func NewLanguageManager() (*LanguageManager, error) {
	lm := &LanguageManager{languages: make(map[string]*Language)}
	for _, lang := range builtinLanguages {
		if err := lm.register(lang); err != nil {
			return nil, err
		}
	}
	return lm, nil
}

func (lm *LanguageManager) register(lang Language) error {
	pm, err := patternmatcher.New(lang.Globs)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "invalid language glob").
			WithDetail("language", lang.ID)
	}
	lang.matcher = pm
	lm.languages[lang.ID] = &lang
	lm.ids = append(lm.ids, lang.ID)
	sort.Strings(lm.ids)
	return nil
}

// Language returns the language with the given id.
func (lm *LanguageManager) Language(id string) (*Language, bool) {
	lang, ok := lm.languages[id]
	return lang, ok
}

// IDs returns every registered language id, sorted.
func (lm *LanguageManager) IDs() []string {
	return append([]string(nil), lm.ids...)
}

// GuessLanguage matches the base name of filename against each language's
// globs. Languages are tried in id order; the first match wins.
func (lm *LanguageManager) GuessLanguage(filename string) (*Language, bool) {
	base := filepath.Base(filename)
	for _, id := range lm.ids {
		lang := lm.languages[id]
		if ok, err := lang.matcher.MatchesOrParentMatches(base); err == nil && ok {
			return lang, true
		}
	}
	return nil, false
}
