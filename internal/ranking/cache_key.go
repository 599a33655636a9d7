package ranking

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	scoreKeyPrefix = "score:"
	lockKeyPrefix  = "rescore:lock:"

	// ScoreKeyPattern matches every cached score.
	ScoreKeyPattern = scoreKeyPrefix + "*"
)

type scoreCacheKeyInput struct {
	Resume  *types.ResumeProfile  `json:"resume"`
	Vacancy *types.VacancyRecord  `json:"vacancy"`
	Weights *types.WeightOverride `json:"weights"`
}

// CacheKey derives the cache key of a score from everything that can change
// it. Equal inputs always produce the same key.
func CacheKey(resume *types.ResumeProfile, vacancy *types.VacancyRecord) string {
	in := scoreCacheKeyInput{Resume: resume, Vacancy: vacancy}
	if vacancy != nil {
		in.Weights = vacancy.Weights
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return scoreKeyPrefix + hex.EncodeToString(sum[:])
}

// RescoreLockKey is held while a vacancy is being rescored.
func RescoreLockKey(vacancyID int64) string {
	return lockKeyPrefix + strconv.FormatInt(vacancyID, 10)
}
