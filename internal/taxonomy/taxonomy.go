package taxonomy

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// GeneralConcept names the fallback concept built from a question's own words.
const GeneralConcept = "general"

// Concept is one row of the evidence taxonomy. Triggers select the concept
// from question text and Keywords substantiate it in evidence quotes.
// Higher priority rows are consulted first; equal priorities keep file order.
// Broadens names a narrower row whose keywords are tried after this row's.
type Concept struct {
	Name     string   `yaml:"name"`
	Triggers []string `yaml:"triggers"`
	Keywords []string `yaml:"keywords"`
	Priority int      `yaml:"priority"`
	Broadens string   `yaml:"broadens,omitempty"`
}

// KeywordSet is a compiled keyword list for one concept.
type KeywordSet struct {
	Concept  string
	Keywords []string
	General  bool
	matchers []*regexp.Regexp
}

// Matches returns the distinct keywords found in text, in keyword order.
func (s KeywordSet) Matches(text string) []string {
	var matched []string
	for i, matcher := range s.matchers {
		if matcher.MatchString(text) {
			matched = append(matched, s.Keywords[i])
		}
	}
	return matched
}

// Resolution lists the keyword sets that apply to a question: the primary
// concept's set, followed by the narrower set it broadens, if any. A general
// resolution carries a single set derived from the question.
type Resolution struct {
	Sets []KeywordSet
}

// Concept returns the name of the primary concept.
func (r Resolution) Concept() string {
	if len(r.Sets) == 0 {
		return GeneralConcept
	}
	return r.Sets[0].Concept
}

// General reports whether no taxonomy row matched the question.
func (r Resolution) General() bool {
	return len(r.Sets) == 0 || r.Sets[0].General
}

type compiledConcept struct {
	concept  Concept
	order    int
	triggers []*regexp.Regexp
	keywords KeywordSet
}

// Taxonomy maps question text to evidence keyword sets.
type Taxonomy struct {
	concepts []compiledConcept
}

// New compiles a taxonomy from concept rows.
func New(concepts []Concept) (*Taxonomy, error) {
	compiled := make([]compiledConcept, 0, len(concepts))
	seen := map[string]struct{}{}
	for i, concept := range concepts {
		concept.Name = strings.TrimSpace(concept.Name)
		if concept.Name == "" {
			return nil, fmt.Errorf("taxonomy concept %d: name is required", i)
		}
		if concept.Name == GeneralConcept {
			return nil, fmt.Errorf("taxonomy concept %d: name %q is reserved", i, GeneralConcept)
		}
		if _, ok := seen[concept.Name]; ok {
			return nil, fmt.Errorf("taxonomy concept %q: duplicate name", concept.Name)
		}
		seen[concept.Name] = struct{}{}
		concept.Broadens = strings.TrimSpace(concept.Broadens)
		concept.Triggers = cleanTerms(concept.Triggers)
		concept.Keywords = cleanTerms(concept.Keywords)
		if len(concept.Triggers) == 0 {
			return nil, fmt.Errorf("taxonomy concept %q: at least one trigger is required", concept.Name)
		}
		if len(concept.Keywords) == 0 {
			return nil, fmt.Errorf("taxonomy concept %q: at least one keyword is required", concept.Name)
		}
		compiled = append(compiled, compiledConcept{
			concept:  concept,
			order:    i,
			triggers: compileTerms(concept.Triggers),
			keywords: newKeywordSet(concept.Name, concept.Keywords, false),
		})
	}
	for _, c := range compiled {
		target := c.concept.Broadens
		if target == "" {
			continue
		}
		if target == c.concept.Name {
			return nil, fmt.Errorf("taxonomy concept %q: cannot broaden itself", target)
		}
		if _, ok := seen[target]; !ok {
			return nil, fmt.Errorf("taxonomy concept %q: broadens unknown concept %q", c.concept.Name, target)
		}
	}
	sort.SliceStable(compiled, func(a, b int) bool {
		return compiled[a].concept.Priority > compiled[b].concept.Priority
	})
	return &Taxonomy{concepts: compiled}, nil
}

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	taxonomy, err := New(DefaultConcepts())
	if err != nil {
		panic(err)
	}
	return taxonomy
}

// Concepts returns the concept rows in priority order.
func (t *Taxonomy) Concepts() []Concept {
	out := make([]Concept, 0, len(t.concepts))
	for _, c := range t.concepts {
		out = append(out, c.concept)
	}
	return out
}

// Extend returns a new taxonomy with extra rows merged in. Rows that reuse an
// existing name add their triggers and keywords to that row; a non-zero
// priority replaces the existing one.
func (t *Taxonomy) Extend(extra []Concept) (*Taxonomy, error) {
	base := make([]compiledConcept, len(t.concepts))
	copy(base, t.concepts)
	sort.SliceStable(base, func(a, b int) bool { return base[a].order < base[b].order })

	merged := make([]Concept, 0, len(base)+len(extra))
	index := map[string]int{}
	for _, c := range base {
		index[c.concept.Name] = len(merged)
		merged = append(merged, c.concept)
	}
	for _, c := range extra {
		name := strings.TrimSpace(c.Name)
		pos, ok := index[name]
		if !ok {
			index[name] = len(merged)
			merged = append(merged, c)
			continue
		}
		existing := merged[pos]
		existing.Triggers = append(append([]string{}, existing.Triggers...), c.Triggers...)
		existing.Keywords = append(append([]string{}, existing.Keywords...), c.Keywords...)
		if c.Priority != 0 {
			existing.Priority = c.Priority
		}
		if c.Broadens != "" {
			existing.Broadens = c.Broadens
		}
		merged[pos] = existing
	}
	return New(merged)
}

// Resolve finds the keyword sets for a question. The first row whose
// triggers match, in priority order, is the primary concept; when it
// broadens another row, that row's set follows. When nothing matches, the
// significant words of the question form a general set.
func (t *Taxonomy) Resolve(questionText string) Resolution {
	for _, c := range t.concepts {
		if !c.matches(questionText) {
			continue
		}
		sets := []KeywordSet{c.keywords}
		if narrow, ok := t.lookup(c.concept.Broadens); ok {
			sets = append(sets, narrow.keywords)
		}
		return Resolution{Sets: sets}
	}
	words := SignificantWords(questionText)
	if len(words) == 0 {
		return Resolution{}
	}
	return Resolution{Sets: []KeywordSet{newKeywordSet(GeneralConcept, words, true)}}
}

func (t *Taxonomy) lookup(name string) (compiledConcept, bool) {
	if name == "" {
		return compiledConcept{}, false
	}
	for _, c := range t.concepts {
		if c.concept.Name == name {
			return c, true
		}
	}
	return compiledConcept{}, false
}

func (c compiledConcept) matches(text string) bool {
	for _, trigger := range c.triggers {
		if trigger.MatchString(text) {
			return true
		}
	}
	return false
}

func newKeywordSet(name string, keywords []string, general bool) KeywordSet {
	return KeywordSet{
		Concept:  name,
		Keywords: keywords,
		General:  general,
		matchers: compileTerms(keywords),
	}
}

// compileTerms builds case-insensitive matchers anchored at a word start.
// Trailing word characters are allowed so "encrypt" also matches
// "encrypted" and "pen test" matches "pen testing".
func compileTerms(terms []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		parts := strings.Fields(term)
		for i, part := range parts {
			parts[i] = regexp.QuoteMeta(part)
		}
		pattern := `(?i)(^|[^\pL\pN])` + strings.Join(parts, `[\s\-]+`) + `[\pL\pN]*`
		out = append(out, regexp.MustCompile(pattern))
	}
	return out
}

func cleanTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := map[string]struct{}{}
	for _, term := range terms {
		term = strings.ToLower(strings.Join(strings.Fields(term), " "))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}
