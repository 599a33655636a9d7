package ranking

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestCacheKey(t *testing.T) {
	resume := profile([]string{"Go"}, 3, "Degree")
	vacancy := &types.VacancyRecord{ID: 7, Title: "Developer"}

	key := CacheKey(resume, vacancy)
	assert.True(t, strings.HasPrefix(key, "score:"))
	assert.Len(t, key, len("score:")+64)
	assert.Equal(t, key, CacheKey(profile([]string{"Go"}, 3, "Degree"), &types.VacancyRecord{ID: 7, Title: "Developer"}))

	weighted := &types.VacancyRecord{ID: 7, Title: "Developer", Weights: &types.WeightOverride{Skills: types.Float64Ptr(1)}}
	assert.NotEqual(t, key, CacheKey(resume, weighted))
	assert.NotEqual(t, key, CacheKey(profile([]string{"Go"}, 4, "Degree"), vacancy))
}

func TestRescoreLockKey(t *testing.T) {
	assert.Equal(t, "rescore:lock:42", RescoreLockKey(42))
}
