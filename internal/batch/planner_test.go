package batch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeBatchesEmpty(t *testing.T) {
	assert.Nil(t, MakeBatches(nil))
	assert.Nil(t, MakeBatches([]string{}))
}

func TestMakeBatchesSingleFragment(t *testing.T) {
	got := MakeBatches([]string{"hello"})
	assert.Equal(t, []string{"hello"}, got)
}

func TestMakeBatchesCharCap(t *testing.T) {
	// 190 + 30 > 200, so the second fragment starts a new batch.
	a := strings.Repeat("a", 190)
	b := strings.Repeat("b", 30)

	got := MakeBatches([]string{a, b})
	require.Len(t, got, 2)
	assert.Equal(t, a, got[0])
	assert.Equal(t, b, got[1])
}

func TestMakeBatchesCharCapExcludesSeparator(t *testing.T) {
	// 100 + 100 = 200 fits exactly; the newline separator is not counted
	// against the cap until the next append.
	a := strings.Repeat("a", 100)
	b := strings.Repeat("b", 100)

	got := MakeBatches([]string{a, b})
	require.Len(t, got, 1)
	assert.Equal(t, a+"\n"+b, got[0])
}

func TestMakeBatchesFragmentCap(t *testing.T) {
	fragments := []string{"one", "two", "three", "four", "five", "six", "seven"}

	got := MakeBatches(fragments)
	require.Len(t, got, 2)
	assert.Equal(t, "one\ntwo\nthree\nfour\nfive", got[0])
	assert.Equal(t, "six\nseven", got[1])
}

func TestMakeBatchesOversizedFragmentKeptWhole(t *testing.T) {
	big := strings.Repeat("x", 500)

	got := MakeBatches([]string{"lead", big, "tail"})
	require.Len(t, got, 3)
	assert.Equal(t, "lead", got[0])
	assert.Equal(t, big, got[1])
	assert.Equal(t, "tail", got[2])
}

func TestMakeBatchesPreservesOrderAndContent(t *testing.T) {
	fragments := []string{
		"Team standup",
		"Monday 9:30",
		"Conference Room B",
		"Bring the roadmap deck",
		"Follow-up with design after",
		"Lunch at noon",
	}

	got := MakeBatches(fragments)

	joined := strings.Join(got, "\n")
	assert.Equal(t, strings.Join(fragments, "\n"), joined)
}
