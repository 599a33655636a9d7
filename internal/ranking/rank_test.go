package ranking

import (
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func app(id int64, score *int) types.Application {
	return types.Application{ID: id, VacancyID: 1, ApplicantID: id * 10, MatchScore: score}
}

func ids(apps []types.Application) []int64 {
	out := make([]int64, len(apps))
	for i, a := range apps {
		out[i] = a.ID
	}
	return out
}

func TestRankApplications_ScoreThenID(t *testing.T) {
	apps := []types.Application{
		app(5, nil),
		app(3, types.IntPtr(80)),
		app(4, types.IntPtr(90)),
		app(1, types.IntPtr(80)),
		app(2, nil),
	}

	ranked := RankApplications(apps)

	assert.Equal(t, []int64{4, 1, 3, 2, 5}, ids(ranked))
	assert.Equal(t, []int64{5, 3, 4, 1, 2}, ids(apps), "input order is preserved")
}

func TestRankApplications_Empty(t *testing.T) {
	assert.Empty(t, RankApplications(nil))
}

func TestBoard(t *testing.T) {
	board := Board([]types.Application{app(2, nil), app(1, types.IntPtr(70))})

	require.Len(t, board, 2)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, int64(1), board[0].Application.ID)
	assert.Equal(t, types.AnonymousLabel(10), board[0].Label)
	assert.Equal(t, 0, board[1].Rank, "unscored rows have no rank")
	assert.Regexp(t, `^Candidate #[0-9A-F]{6}$`, board[1].Label)
}
