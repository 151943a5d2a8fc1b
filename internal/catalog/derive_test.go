package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/vibe-guide/internal/models"
	"github.com/vibe-guide/internal/types"
)

func sampleCatalog() *models.Catalog {
	return &models.Catalog{Vibes: []models.Vibe{
		{Key: types.VibeParty, Items: []models.Location{{ID: "A"}, {ID: "B"}}},
		{Key: types.VibeOutdoor, Items: []models.Location{{ID: "C"}}},
	}}
}

func ids(locs []models.Location) []string {
	out := make([]string, len(locs))
	for i, l := range locs {
		out[i] = l.ID
	}
	return out
}

func TestFlattenCatalog_Scenario(t *testing.T) {
	flat := FlattenCatalog(sampleCatalog())
	if diff := cmp.Diff([]string{"A", "B", "C"}, ids(flat)); diff != "" {
		t.Errorf("FlattenCatalog mismatch (-want +got):\n%s", diff)
	}

	limited := ApplyShowLimit(flat, types.Limited(2))
	if diff := cmp.Diff([]string{"A", "B"}, ids(limited)); diff != "" {
		t.Errorf("ApplyShowLimit mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenCatalog_Deterministic(t *testing.T) {
	c, err := Default()
	assert.NoError(t, err)
	if diff := cmp.Diff(FlattenCatalog(c), FlattenCatalog(c)); diff != "" {
		t.Errorf("FlattenCatalog not deterministic:\n%s", diff)
	}
	assert.Empty(t, FlattenCatalog(nil))
	assert.Empty(t, FlattenCatalog(&models.Catalog{}))
}

func TestApplyShowLimit_Edges(t *testing.T) {
	items := []int{1, 2, 3}

	assert.Equal(t, []int{}, ApplyShowLimit(items, types.Limited(0)))
	assert.Equal(t, []int{}, ApplyShowLimit(items, types.Limited(-3)), "negative clamps to zero")
	assert.Equal(t, items, ApplyShowLimit(items, types.Limited(3)))
	assert.Equal(t, items, ApplyShowLimit(items, types.Limited(10)))
	assert.Equal(t, items, ApplyShowLimit(items, types.All()))
	assert.Nil(t, ApplyShowLimit([]int(nil), types.All()))

	head := ApplyShowLimit(items, types.Limited(1))
	_ = append(head, 99)
	assert.Equal(t, []int{1, 2, 3}, items, "appending to the result leaves the source intact")
}

func TestApplyShowLimitProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("all is the identity", prop.ForAll(
		func(items []int) bool {
			return cmp.Equal(items, ApplyShowLimit(items, types.All()))
		},
		gen.SliceOf(gen.Int()),
	))

	properties.Property("zero yields an empty sequence", prop.ForAll(
		func(items []int) bool {
			return len(ApplyShowLimit(items, types.Limited(0))) == 0
		},
		gen.SliceOf(gen.Int()),
	))

	properties.Property("a limit at or above the length is the identity", prop.ForAll(
		func(items []int, extra int) bool {
			return cmp.Equal(items, ApplyShowLimit(items, types.Limited(len(items)+extra)))
		},
		gen.SliceOf(gen.Int()),
		gen.IntRange(0, 50),
	))

	properties.Property("result is a prefix of length min(n, len)", prop.ForAll(
		func(items []int, n int) bool {
			got := ApplyShowLimit(items, types.Limited(n))
			want := n
			if want < 0 {
				want = 0
			}
			if want > len(items) {
				want = len(items)
			}
			return len(got) == want && cmp.Equal(got, items[:want], cmp.Comparer(func(a, b []int) bool {
				if len(a) != len(b) {
					return false
				}
				for i := range a {
					if a[i] != b[i] {
						return false
					}
				}
				return true
			}))
		},
		gen.SliceOf(gen.Int()),
		gen.IntRange(-10, 60),
	))

	properties.TestingRun(t)
}
