package ranking

import (
	"sort"

	"github.com/jonathan/resume-matcher/internal/types"
)

// BoardEntry is one row of a vacancy's ranking board.
type BoardEntry struct {
	Rank        int                `json:"rank"`
	Label       string             `json:"label"`
	Application *types.Application `json:"application"`
}

// RankApplications returns the applications ordered by score, highest first.
// Equal scores keep ascending application ID order and unscored
// applications come last. The input slice is not modified.
func RankApplications(apps []types.Application) []types.Application {
	ranked := make([]types.Application, len(apps))
	copy(ranked, apps)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].MatchScore, ranked[j].MatchScore
		switch {
		case a == nil && b == nil:
			return ranked[i].ID < ranked[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a > *b
		default:
			return ranked[i].ID < ranked[j].ID
		}
	})
	return ranked
}

// Board ranks apps and labels each row with the applicant's anonymous label.
// Unscored applications are listed without a rank.
func Board(apps []types.Application) []BoardEntry {
	ranked := RankApplications(apps)
	board := make([]BoardEntry, len(ranked))
	for i := range ranked {
		board[i] = BoardEntry{
			Label:       types.AnonymousLabel(ranked[i].ApplicantID),
			Application: &ranked[i],
		}
		if ranked[i].MatchScore != nil {
			board[i].Rank = i + 1
		}
	}
	return board
}
