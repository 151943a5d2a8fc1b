package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vibe-guide/internal/errors"
	"github.com/vibe-guide/internal/models"
	"github.com/vibe-guide/internal/types"
)

func TestRecommendationService_Vibes(t *testing.T) {
	f := newFixture(t)
	svc := NewRecommendationService(f.provider, f.settings, f.saved)

	vibes := svc.Vibes()
	require.Len(t, vibes, 2)
	assert.Equal(t, VibeSummary{Key: types.VibeParty, Label: "Party & Chill", Count: 2}, vibes[0])
	assert.Equal(t, types.VibeOutdoor, vibes[1].Key)
}

func TestRecommendationService_CategoriesOn(t *testing.T) {
	f := newFixture(t)
	svc := NewRecommendationService(f.provider, f.settings, f.saved)
	require.NoError(t, f.settings.SetShowLimit(types.Limited(1)))

	recs, err := svc.Recommend("")
	require.NoError(t, err)
	assert.True(t, recs.CategoriesOn)
	require.NotNil(t, recs.Vibe)
	assert.Equal(t, types.VibeParty, recs.Vibe.Key)
	assert.Equal(t, []string{"party-0", "party-1"}, spotIDs(recs.Spots), "show limit is ignored while grouped")

	recs, err = svc.Recommend(types.VibeOutdoor)
	require.NoError(t, err)
	assert.Equal(t, []string{"outdoor-0"}, spotIDs(recs.Spots))
	assert.Equal(t, "Viewpoint\n55.70000° N, 9.60000° E\n", recs.Spots[0].ShareText)

	_, err = svc.Recommend("karaoke")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRecommendationService_CategoriesOffAppliesLimit(t *testing.T) {
	f := newFixture(t)
	svc := NewRecommendationService(f.provider, f.settings, f.saved)
	f.settings.SetCategoriesOn(false)

	tests := []struct {
		limit types.ShowLimit
		want  []string
	}{
		{types.All(), []string{"party-0", "party-1", "outdoor-0"}},
		{types.Limited(2), []string{"party-0", "party-1"}},
		{types.Limited(0), []string{}},
		{types.Limited(9), []string{"party-0", "party-1", "outdoor-0"}},
	}
	for _, tt := range tests {
		t.Run(tt.limit.String(), func(t *testing.T) {
			require.NoError(t, f.settings.SetShowLimit(tt.limit))
			recs, err := svc.Recommend("karaoke")
			require.NoError(t, err, "vibe is ignored while flattened")
			assert.False(t, recs.CategoriesOn)
			assert.Nil(t, recs.Vibe)
			assert.Equal(t, tt.want, spotIDs(recs.Spots))
		})
	}
}

func TestRecommendationService_ReflectsSavedState(t *testing.T) {
	f := newFixture(t)
	svc := NewRecommendationService(f.provider, f.settings, f.saved)
	f.saved.Toggle(models.Location{ID: "party-1"})

	recs, err := svc.Recommend(types.VibeParty)
	require.NoError(t, err)
	assert.False(t, recs.Spots[0].Saved)
	assert.True(t, recs.Spots[1].Saved)
}
