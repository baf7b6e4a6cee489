// Package words holds the fixed vocabulary the game draws secrets from, along with a coarse
// visual profile per word that the synthetic guesser uses to rank candidates.
package words

import (
	"math/rand"
	"strings"
)

type Shape string

const (
	ShapeGeneric Shape = "generic"
	ShapeRound   Shape = "round"
	ShapeWide    Shape = "wide"
	ShapeTall    Shape = "tall"
)

type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

type Profile struct {
	Shape      Shape
	Complexity Complexity
}

type Entry struct {
	Word    string
	Profile Profile
}

var defaultEntries = []Entry{
	{"pizza", Profile{ShapeRound, ComplexityMedium}},
	{"airplane", Profile{ShapeWide, ComplexityHigh}},
	{"cat", Profile{ShapeGeneric, ComplexityMedium}},
	{"dog", Profile{ShapeGeneric, ComplexityMedium}},
	{"computer", Profile{ShapeWide, ComplexityMedium}},
	{"banana", Profile{ShapeTall, ComplexityLow}},
	{"tree", Profile{ShapeTall, ComplexityMedium}},
	{"car", Profile{ShapeWide, ComplexityMedium}},
	{"house", Profile{ShapeTall, ComplexityMedium}},
	{"phone", Profile{ShapeTall, ComplexityLow}},
	{"book", Profile{ShapeWide, ComplexityLow}},
	{"guitar", Profile{ShapeTall, ComplexityHigh}},
	{"mountain", Profile{ShapeGeneric, ComplexityMedium}},
	{"river", Profile{ShapeWide, ComplexityHigh}},
	{"sun", Profile{ShapeRound, ComplexityLow}},
	{"moon", Profile{ShapeRound, ComplexityLow}},
	{"cloud", Profile{ShapeRound, ComplexityMedium}},
	{"umbrella", Profile{ShapeTall, ComplexityMedium}},
	{"cookie", Profile{ShapeRound, ComplexityMedium}},
	{"pencil", Profile{ShapeTall, ComplexityLow}},
	{"chair", Profile{ShapeTall, ComplexityMedium}},
	{"table", Profile{ShapeWide, ComplexityMedium}},
	{"flower", Profile{ShapeTall, ComplexityHigh}},
	{"rocket", Profile{ShapeTall, ComplexityMedium}},
	{"fish", Profile{ShapeWide, ComplexityMedium}},
	{"train", Profile{ShapeWide, ComplexityHigh}},
	{"shoe", Profile{ShapeWide, ComplexityLow}},
	{"ball", Profile{ShapeRound, ComplexityLow}},
	{"camera", Profile{ShapeWide, ComplexityMedium}},
}

// Catalog is immutable after construction and safe for concurrent reads.
type Catalog struct {
	words    []string
	profiles map[string]Profile
}

// Default returns the built-in 29-word catalog.
func Default() *Catalog {
	return New(defaultEntries)
}

// New builds a catalog from entries. Words are lower-cased; duplicates keep the first profile.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		words:    make([]string, 0, len(entries)),
		profiles: make(map[string]Profile, len(entries)),
	}
	for _, e := range entries {
		w := Normalize(e.Word)
		if w == "" {
			continue
		}
		if _, dup := c.profiles[w]; dup {
			continue
		}
		p := e.Profile
		if p.Shape == "" {
			p.Shape = ShapeGeneric
		}
		if p.Complexity == "" {
			p.Complexity = ComplexityMedium
		}
		c.words = append(c.words, w)
		c.profiles[w] = p
	}
	return c
}

// Normalize trims and lower-cases a word or guess.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Words returns the vocabulary in catalog order.
func (c *Catalog) Words() []string {
	out := make([]string, len(c.words))
	copy(out, c.words)
	return out
}

func (c *Catalog) Len() int {
	return len(c.words)
}

func (c *Catalog) Contains(word string) bool {
	_, ok := c.profiles[Normalize(word)]
	return ok
}

// Profile returns the visual profile of word; unknown words are generic/medium.
func (c *Catalog) Profile(word string) Profile {
	if p, ok := c.profiles[Normalize(word)]; ok {
		return p
	}
	return Profile{Shape: ShapeGeneric, Complexity: ComplexityMedium}
}

// WithLength returns catalog words of exactly n characters, in catalog order.
func (c *Catalog) WithLength(n int) []string {
	var out []string
	for _, w := range c.words {
		if len([]rune(w)) == n {
			out = append(out, w)
		}
	}
	return out
}

// Picker offers candidate secrets to a drawer.
type Picker interface {
	Options(n int) []string
}

// RandomPicker draws distinct words uniformly from a catalog.
type RandomPicker struct {
	catalog *Catalog
	rng     *rand.Rand
}

func NewRandomPicker(catalog *Catalog, rng *rand.Rand) *RandomPicker {
	return &RandomPicker{catalog: catalog, rng: rng}
}

// Options returns n distinct words, or the whole catalog shuffled when n exceeds its size.
func (p *RandomPicker) Options(n int) []string {
	pool := p.catalog.Words()
	p.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if n < 0 {
		n = 0
	}
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}
