package types

import (
	"crypto/sha1" //nolint:gosec // display label, not a security boundary
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Application statuses.
const (
	StatusSubmitted          = "submitted"
	StatusInReview           = "in_review"
	StatusShortlisted        = "shortlisted"
	StatusRejected           = "rejected"
	StatusHired              = "hired"
	StatusInterviewInvited   = "interview_invited"
	StatusInterviewScheduled = "interview_scheduled"
	StatusWithdrawn          = "withdrawn"
)

// AllowedStatuses lists every status an application may hold.
var AllowedStatuses = []string{
	StatusSubmitted,
	StatusInReview,
	StatusShortlisted,
	StatusRejected,
	StatusHired,
	StatusInterviewInvited,
	StatusInterviewScheduled,
	StatusWithdrawn,
}

var statusAliases = map[string]string{
	"review":     StatusInReview,
	"inreview":   StatusInReview,
	"shortlist":  StatusShortlisted,
	"short_list": StatusShortlisted,
	"reject":     StatusRejected,
	"decline":    StatusRejected,
	"declined":   StatusRejected,
	"hire":       StatusHired,
	"accepted":   StatusHired,
	"invited":    StatusInterviewInvited,
	"interview":  StatusInterviewInvited,
	"scheduled":  StatusInterviewScheduled,
	"withdraw":   StatusWithdrawn,
	"new":        StatusSubmitted,
	"applied":    StatusSubmitted,
}

// anonymousSalt prefixes applicant IDs before hashing anonymous labels.
const anonymousSalt = "i-hr"

// Application links an applicant's résumé to a vacancy and carries the last
// computed score.
type Application struct {
	ID             int64        `json:"id"`
	VacancyID      int64        `json:"vacancy_id"`
	ApplicantID    int64        `json:"applicant_id"`
	ResumeID       *int64       `json:"resume_id,omitempty"`
	Status         string       `json:"status"`
	MatchScore     *int         `json:"match_score"`
	MatchBreakdown *ScoreResult `json:"match_breakdown,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// StatusUpdate is the body of a status change request.
type StatusUpdate struct {
	Status string `json:"status" validate:"required,max=50"`
	Note   string `json:"note,omitempty" validate:"max=2000"`
}

// NormalizeStatus folds a free-form status onto the allowed vocabulary. The
// boolean is false when the value cannot be mapped.
func NormalizeStatus(s string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if mapped, ok := statusAliases[key]; ok {
		key = mapped
	}
	for _, allowed := range AllowedStatuses {
		if key == allowed {
			return key, true
		}
	}
	return "", false
}

// AnonymousLabel returns the label shown instead of the applicant's name on
// blind ranking boards.
func AnonymousLabel(applicantID int64) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s%d", anonymousSalt, applicantID))) //nolint:gosec
	return "Candidate #" + strings.ToUpper(hex.EncodeToString(sum[:])[:6])
}
