package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/cookbook/backend/internal/model"
)

func sampleRecipes() []model.Recipe {
	return []model.Recipe{
		{ID: "1", Title: "Tarte aux pommes", Description: "Classique", Category: "Desserts", Difficulty: model.DifficultyMedium, PrepTime: 10, CookTime: 10},
		{ID: "2", Title: "Tartare de bœuf", Description: "Cru et frais", Category: "Plats principaux", Difficulty: model.DifficultyEasy, PrepTime: 60, CookTime: 30},
		{ID: "3", Title: "Soupe à l'oignon", Description: "Gratinée", Category: "Entrées", Difficulty: model.DifficultyHard, PrepTime: 20, CookTime: 45},
		{ID: "4", Title: "Citronnade", Description: "Boisson fraîche", Category: "Boissons", Difficulty: model.DifficultyEasy, PrepTime: 5, CookTime: 0},
	}
}

func ids(recipes []model.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.ID)
	}
	return out
}

func TestApplySearchTartSortedByTime(t *testing.T) {
	got := Apply(sampleRecipes(), Query{SearchTerm: "tart", Category: All, Difficulty: All, Sort: SortByTime})
	require.Len(t, got, 2)
	assert.Equal(t, "Tarte aux pommes", got[0].Title)
	assert.Equal(t, "Tartare de bœuf", got[1].Title)
}

func TestApplyTextMatchesAnyField(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{"title", "SOUPE", []string{"3"}},
		{"description", "fraîch", []string{"4"}},
		{"category", "boissons", []string{"4"}},
		{"trimmed", "  citron  ", []string{"4"}},
		{"blank matches all", "   ", []string{"4", "3", "2", "1"}},
		{"no match", "pizza", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sampleRecipes(), Query{SearchTerm: tt.term, Sort: SortByName})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyCategoryIsExactAndCaseSensitive(t *testing.T) {
	got := Apply(sampleRecipes(), Query{Category: "Desserts", Sort: SortByName})
	assert.Equal(t, []string{"1"}, ids(got))

	got = Apply(sampleRecipes(), Query{Category: "desserts", Sort: SortByName})
	assert.Empty(t, got)
}

func TestApplyDifficultyFilter(t *testing.T) {
	got := Apply(sampleRecipes(), Query{Difficulty: "easy", Sort: SortByTime})
	assert.Equal(t, []string{"4", "2"}, ids(got))

	got = Apply(sampleRecipes(), Query{Difficulty: "extreme"})
	assert.Empty(t, got)
}

func TestApplyUnknownDifficultyNeverMatches(t *testing.T) {
	recipes := append(sampleRecipes(), model.Recipe{ID: "5", Title: "Mystère", Difficulty: "legendary"})
	got := Apply(recipes, Query{Difficulty: "legendary"})
	assert.Empty(t, got)

	got = Apply(recipes, Query{Sort: SortByDifficulty})
	assert.Equal(t, "5", got[len(got)-1].ID)
}

func TestApplyFiltersCompose(t *testing.T) {
	got := Apply(sampleRecipes(), Query{SearchTerm: "tar", Category: "Plats principaux", Difficulty: "easy"})
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestApplySortByNameIsLocaleAwareAndStable(t *testing.T) {
	recipes := []model.Recipe{
		{ID: "a", Title: "Zeste"},
		{ID: "b", Title: "Éclair"},
		{ID: "c", Title: "Crème brûlée"},
		{ID: "d", Title: "Eclair"},
		{ID: "e", Title: "Abricot"},
	}
	got := Apply(recipes, Query{Sort: SortByName})
	assert.Equal(t, []string{"e", "c", "b", "d", "a"}, ids(got))

	same := []model.Recipe{{ID: "x", Title: "Flan"}, {ID: "y", Title: "Flan"}, {ID: "z", Title: "Flan"}}
	assert.Equal(t, []string{"x", "y", "z"}, ids(Apply(same, Query{Sort: SortByName})))

	accents := []model.Recipe{{ID: "first", Title: "Crème"}, {ID: "second", Title: "Creme"}, {ID: "third", Title: "crème"}}
	assert.Equal(t, []string{"first", "second", "third"}, ids(Apply(accents, Query{Sort: SortByName})))
}

func TestApplySortByDifficulty(t *testing.T) {
	got := Apply(sampleRecipes(), Query{Sort: SortByDifficulty})
	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Difficulty.Rank(), got[i].Difficulty.Rank())
	}
	// easy ties keep input order
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(got))
}

func TestApplySortByTimeKeepsTies(t *testing.T) {
	recipes := []model.Recipe{
		{ID: "a", PrepTime: 10, CookTime: 20},
		{ID: "b", PrepTime: 30},
		{ID: "c", PrepTime: 5},
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids(Apply(recipes, Query{Sort: SortByTime})))
}

func TestApplyUnknownSortKeepsInputOrder(t *testing.T) {
	got := Apply(sampleRecipes(), Query{Sort: "popularity"})
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(got))
}

func TestApplyEmptyCollection(t *testing.T) {
	got := Apply(nil, DefaultQuery())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApplyIsPureAndIdempotent(t *testing.T) {
	input := sampleRecipes()
	before := ids(input)
	q := Query{SearchTerm: "t", Sort: SortByTime}

	first := Apply(input, q)
	second := Apply(input, q)

	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, before, ids(input), "input must not be reordered")

	in := make(map[string]bool)
	for _, r := range input {
		in[r.ID] = true
	}
	for _, r := range first {
		assert.True(t, in[r.ID], "result must be a subset of the input")
	}
}

func TestParseQuery(t *testing.T) {
	q := ParseQuery(url.Values{"q": {"tart"}, "difficulty": {"hard"}})
	assert.Equal(t, Query{SearchTerm: "tart", Category: All, Difficulty: "hard", Sort: SortByName}, q)

	q = ParseQuery(url.Values{"search": {"soupe"}, "category": {"Entrées"}, "sort": {"time"}})
	assert.Equal(t, "soupe", q.SearchTerm)
	assert.Equal(t, "Entrées", q.Category)
	assert.Equal(t, SortByTime, q.Sort)
}

func TestViewModeToggle(t *testing.T) {
	assert.Equal(t, ViewList, ViewGrid.Toggle())
	assert.Equal(t, ViewGrid, ViewList.Toggle())
}
