// Package generator applies the uppercase and punctuation modes to a word layout.
package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/sahilm/fuzzy"

	"github.com/verte-zerg/typy/internal/layout"
	"github.com/verte-zerg/typy/internal/model"
)

// PunctSet is the punctuation appended to words in punctuation mode.
var PunctSet = []rune{'.', ',', '!', '?', ';', ':', '-'}

// Generator mutates layouts with randomized text rules.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a fixed seed.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Rand exposes the generator's source so layout building shares the seed.
func (g *Generator) Rand() *rand.Rand {
	return g.rnd
}

// Transform mutates word contents in place. Row structure is never changed
// and no row grows past the layout budget.
func (g *Generator) Transform(l *layout.Layout, modes []model.Mode, settings model.ModeSettings) {
	if hasMode(modes, model.ModeNormal) {
		return
	}
	upper := hasMode(modes, model.ModeUppercase)
	punct := hasMode(modes, model.ModePunctuation)
	for row := 0; row < l.Rows(); row++ {
		words := l.Words(row)
		for i, word := range words {
			if upper {
				word = applyCaps(g.rnd, word, settings.UppercaseChance)
				l.SetWord(row, i, word)
			}
			if punct && i < len(words)-1 {
				l.SetWord(row, i, applyPunct(g.rnd, word, settings.PunctuationChance, PunctSet))
			}
		}
	}
}

// ResolveModes decides the effective mode set. Requested modes win over the
// defaults, and normal anywhere in the set disables every other mode.
func ResolveModes(requested []model.Mode, defaults []model.Mode) []model.Mode {
	modes := requested
	if len(modes) == 0 {
		modes = defaults
	}
	if len(modes) == 0 || hasMode(modes, model.ModeNormal) {
		return []model.Mode{model.ModeNormal}
	}
	seen := make(map[model.Mode]struct{}, len(modes))
	result := make([]model.Mode, 0, len(modes))
	for _, m := range modes {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		result = append(result, m)
	}
	return result
}

// ParseModes converts mode names into modes. Unknown names produce an error
// carrying the closest known mode.
func ParseModes(names []string) ([]model.Mode, error) {
	modes := make([]model.Mode, 0, len(names))
	for _, raw := range names {
		for _, part := range strings.Split(raw, ",") {
			name := strings.ToLower(strings.TrimSpace(part))
			if name == "" {
				continue
			}
			mode, ok := lookupMode(name)
			if !ok {
				if hint := Suggest(name, modeNames()); hint != "" {
					return nil, fmt.Errorf("unknown mode %q (did you mean %q?)", name, hint)
				}
				return nil, fmt.Errorf("unknown mode %q", name)
			}
			modes = append(modes, mode)
		}
	}
	return modes, nil
}

// Suggest returns the best fuzzy match for input among candidates, or "".
func Suggest(input string, candidates []string) string {
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

func lookupMode(name string) (model.Mode, bool) {
	for _, m := range model.AllModes {
		if string(m) == name {
			return m, true
		}
	}
	return "", false
}

func modeNames() []string {
	names := make([]string, 0, len(model.AllModes))
	for _, m := range model.AllModes {
		names = append(names, string(m))
	}
	return names
}

func hasMode(modes []model.Mode, want model.Mode) bool {
	for _, m := range modes {
		if m == want {
			return true
		}
	}
	return false
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	runes := []rune(word)
	for i, r := range runes {
		if rnd.Float64() < capsPct {
			runes[i] = unicode.ToUpper(r)
		}
	}
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() >= punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}
