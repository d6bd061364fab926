package similarity

import (
	"testing"

	"spendscope/internal/models"
	"spendscope/internal/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"only stopwords", "the and of", nil},
		{"single token", "starbucks", []string{"starbucks"}},
		{
			"unigrams and bigrams",
			"Whole Foods Market",
			[]string{"whole", "foods", "market", "whole foods", "foods market"},
		},
		{
			"stopwords removed before bigrams",
			"payment to the landlord",
			[]string{"payment", "landlord", "payment landlord"},
		},
		{"punctuation split", "uber*trip-help", []string{"uber", "trip", "help", "uber trip", "trip help"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenize(tt.input))
		})
	}
}

func TestNewIndex(t *testing.T) {
	ix, err := NewIndex(taxonomy.Default())
	require.NoError(t, err)
	require.NotNil(t, ix)
	assert.NotEmpty(t, ix.vocabulary)
	assert.Len(t, ix.categories, taxonomy.Default().Len())
}

func TestNewIndexEmptyVocabulary(t *testing.T) {
	// Only the keyword-free fallback category: nothing to index.
	tax := taxonomy.New(nil)

	ix, err := NewIndex(tax)
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
	assert.Nil(t, ix)
}

func TestScoreBatch(t *testing.T) {
	ix, err := NewIndex(taxonomy.Default())
	require.NoError(t, err)

	matches, err := ix.ScoreBatch([]string{
		"starbucks coffee downtown",
		"monthly rent apartment 4b",
		"grocery store run",
	})
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, models.CategoryDining, matches[0].Category)
	assert.Greater(t, matches[0].Score, 0.1)

	assert.Equal(t, models.CategoryHousing, matches[1].Category)
	assert.Greater(t, matches[1].Score, 0.1)

	assert.Equal(t, models.CategoryGroceries, matches[2].Category)
	assert.Greater(t, matches[2].Score, 0.1)
}

func TestScoreBatchNoOverlap(t *testing.T) {
	ix, err := NewIndex(taxonomy.Default())
	require.NoError(t, err)

	matches, err := ix.ScoreBatch([]string{"zzqx wvvk"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Zero(t, matches[0].Score)
}

func TestScoreBatchEmpty(t *testing.T) {
	ix, err := NewIndex(taxonomy.Default())
	require.NoError(t, err)

	matches, err := ix.ScoreBatch(nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)
	assert.Nil(t, matches)
}

func TestScoreBatchDeterministic(t *testing.T) {
	ix, err := NewIndex(taxonomy.Default())
	require.NoError(t, err)

	descriptions := []string{"uber ride airport", "netflix subscription", "shell gas station"}

	first, err := ix.ScoreBatch(descriptions)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := ix.ScoreBatch(descriptions)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
