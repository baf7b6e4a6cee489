package hint

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	assert.Equal(t, "___", Mask("cat"))
	assert.Equal(t, "___ ____", Mask("ice café"))
	assert.Equal(t, "", Mask(""))
}

func TestRevealOne_Monotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	word := "umbrella"
	mask := Mask(word)

	for i := 1; i <= len(word); i++ {
		next := RevealOne(rng, word, mask)
		assert.Equal(t, i, Revealed(next))
		assert.Len(t, next, len(word))
		assert.True(t, Consistent(next, word))

		// previously disclosed letters stay disclosed
		for j := range mask {
			if mask[j] != Hidden {
				assert.Equal(t, mask[j], next[j])
			}
		}
		mask = next
	}

	assert.Equal(t, word, mask)
	assert.Equal(t, word, RevealOne(rng, word, mask))
}

func TestRevealOne_SkipsSpacesAndMismatches(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	word := "a b"
	mask := Mask(word)

	mask = RevealOne(rng, word, mask)
	mask = RevealOne(rng, word, mask)
	assert.Equal(t, "a b", mask)

	assert.Equal(t, "__", RevealOne(rng, "cat", "__"))
}

func TestConsistent(t *testing.T) {
	assert.True(t, Consistent("___", "dog"))
	assert.True(t, Consistent("c__", "cat"))
	assert.False(t, Consistent("c__", "dog"))
	assert.False(t, Consistent("____", "cat"))
}

func TestLetters(t *testing.T) {
	assert.Equal(t, 3, Letters("c__"))
	assert.Equal(t, 5, Letters("__ ___"))
	assert.Equal(t, 1, Revealed("c_ __"))
}
