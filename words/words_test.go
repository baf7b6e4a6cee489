package words

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.Equal(t, 29, c.Len())
	assert.True(t, c.Contains("pizza"))
	assert.True(t, c.Contains("  CAMERA "))
	assert.False(t, c.Contains("spaceship"))

	assert.Equal(t, Profile{ShapeRound, ComplexityLow}, c.Profile("sun"))
	assert.Equal(t, Profile{ShapeWide, ComplexityHigh}, c.Profile("airplane"))
	assert.Equal(t, Profile{ShapeGeneric, ComplexityMedium}, c.Profile("unknown"))
}

func TestNew_NormalizesAndDeduplicates(t *testing.T) {
	c := New([]Entry{
		{Word: " Apple ", Profile: Profile{ShapeRound, ComplexityLow}},
		{Word: "apple", Profile: Profile{ShapeTall, ComplexityHigh}},
		{Word: ""},
		{Word: "kite"},
	})

	assert.Equal(t, []string{"apple", "kite"}, c.Words())
	assert.Equal(t, ShapeRound, c.Profile("apple").Shape)
	assert.Equal(t, Profile{ShapeGeneric, ComplexityMedium}, c.Profile("kite"))
}

func TestWithLength(t *testing.T) {
	c := Default()
	three := c.WithLength(3)

	assert.ElementsMatch(t, []string{"cat", "dog", "car", "sun"}, three)
	for _, w := range c.WithLength(5) {
		assert.Len(t, w, 5)
	}
}

func TestRandomPicker_DistinctOptions(t *testing.T) {
	c := Default()
	p := NewRandomPicker(c, rand.New(rand.NewSource(7)))

	for i := 0; i < 50; i++ {
		opts := p.Options(3)
		require.Len(t, opts, 3)

		seen := map[string]bool{}
		for _, o := range opts {
			assert.True(t, c.Contains(o))
			assert.False(t, seen[o], "duplicate option %q", o)
			seen[o] = true
		}
	}

	assert.Len(t, p.Options(100), c.Len())
	assert.Empty(t, p.Options(0))
}
