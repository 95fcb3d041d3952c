package catalog

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pageza/cookbook/backend/internal/model"
)

// CollationTag is the locale used for title ordering.
var CollationTag = language.French

func sortRecipes(recipes []model.Recipe, key SortKey) {
	switch key {
	case SortByName:
		// collate.Collator keeps internal buffers; one per call. Loose makes
		// titles differing only by accents or case compare equal.
		c := collate.New(CollationTag, collate.Loose)
		slices.SortStableFunc(recipes, func(a, b model.Recipe) int {
			return c.CompareString(a.Title, b.Title)
		})
	case SortByTime:
		slices.SortStableFunc(recipes, func(a, b model.Recipe) int {
			return cmp.Compare(a.TotalTime(), b.TotalTime())
		})
	case SortByDifficulty:
		slices.SortStableFunc(recipes, func(a, b model.Recipe) int {
			return cmp.Compare(a.Difficulty.Rank(), b.Difficulty.Rank())
		})
	}
}
