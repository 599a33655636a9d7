package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-matcher/internal/experience"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
	"go.uber.org/zap"
)

// scoreRequest is the body of POST /score. Resume is an extraction document
// in any of the shapes the normalizer accepts.
type scoreRequest struct {
	Resume     json.RawMessage `json:"resume"`
	ResumeText string          `json:"resume_text"`
	Vacancy    json.RawMessage `json:"vacancy"`
}

type scoreResponse struct {
	Profile *types.ResumeProfile `json:"profile"`
	Result  *types.ScoreResult   `json:"result"`
}

type rankingResponse struct {
	VacancyID    int64                  `json:"vacancy_id"`
	Applications []ranking.BoardEntry   `json:"applications"`
	Pending      *ranking.RescoreReport `json:"pending,omitempty"`
}

// handleScore scores an ad-hoc résumé document against a vacancy.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	vacancy, err := decodeVacancy(req.Vacancy)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if string(req.Resume) == "null" {
		req.Resume = nil
	}
	doc, err := experience.DecodeDocument(req.Resume)
	if err != nil {
		s.fail(w, r, &ErrValidation{Field: "resume", Message: err.Error()})
		return
	}

	profile, result := s.rescorer.ScoreDocument(r.Context(), doc, req.ResumeText, vacancy)
	if err := schemas.Validate(schemas.ScoreResultSchema, result); err != nil {
		s.fail(w, r, fmt.Errorf("score result violates contract: %w", err))
		return
	}

	requestLogger(r.Context(), s.logger).Debug("scored resume",
		append(logger.VacancyFields(vacancy.ID, result.Breakdown.JobFamily),
			zap.String("title", logger.Truncate(vacancy.Title, 80)),
			zap.Int("score", result.Score),
		)...,
	)
	s.jsonResponse(w, http.StatusOK, scoreResponse{Profile: profile, Result: result})
}

// handleRanking scores any applications without a breakdown, then returns
// the vacancy's ranking board.
func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	vacancyID, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	// While a full rescore holds the lock, the scores stored so far are served.
	pending, err := s.rescorer.ScorePending(r.Context(), vacancyID)
	if err != nil && !errors.Is(err, ranking.ErrRescoreInProgress) {
		s.fail(w, r, err)
		return
	}

	apps, err := s.store.ListApplications(r.Context(), vacancyID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	board := ranking.Board(apps)
	if board == nil {
		board = []ranking.BoardEntry{}
	}
	s.jsonResponse(w, http.StatusOK, rankingResponse{
		VacancyID:    vacancyID,
		Applications: board,
		Pending:      pending,
	})
}

// handleRescore recomputes every application score of a vacancy.
func (s *Server) handleRescore(w http.ResponseWriter, r *http.Request) {
	vacancyID, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	report, err := s.rescorer.RescoreVacancy(r.Context(), vacancyID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// handleSetStatus changes the status of an application.
func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	applicationID, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req types.StatusUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.fail(w, r, validationError(err, "body"))
		return
	}

	status, ok := types.NormalizeStatus(req.Status)
	if !ok {
		s.fail(w, r, &ErrValidation{
			Field:   "status",
			Message: "must be one of " + strings.Join(types.AllowedStatuses, ", "),
		})
		return
	}

	app, err := s.store.SetStatus(r.Context(), applicationID, status, strings.TrimSpace(req.Note))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}

// decodeVacancy checks a vacancy document against its schema and decodes it.
// Reversed experience bounds are swapped before validation.
func decodeVacancy(raw json.RawMessage) (*types.VacancyRecord, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, &ErrValidation{Field: "vacancy", Message: "is required"}
	}
	if err := schemas.ValidateBytes(schemas.VacancySchema, raw); err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) && len(schemaErr.Errors) > 0 {
			first := schemaErr.Errors[0]
			return nil, &ErrValidation{Field: "vacancy." + first.Field, Message: first.Message}
		}
		return nil, &ErrValidation{Field: "vacancy", Message: err.Error()}
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ErrValidation{Field: "vacancy", Message: err.Error()}
	}
	vacancy, err := types.DecodeVacancy(doc)
	if err != nil {
		return nil, &ErrValidation{Field: "vacancy", Message: err.Error()}
	}
	vacancy.SwapExperienceBounds()
	if err := vacancy.Validate(); err != nil {
		return nil, validationError(err, "vacancy")
	}
	return vacancy, nil
}

// validationError converts a validator failure into an ErrValidation naming
// the first offending field under prefix.
func validationError(err error, prefix string) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{
			Field:   prefix + "." + strings.ToLower(fe.Field()),
			Message: fmt.Sprintf("failed %q check", fe.Tag()),
		}
	}
	return &ErrValidation{Field: prefix, Message: err.Error()}
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &ErrValidation{Field: "id", Message: fmt.Sprintf("invalid id %q", raw)}
	}
	return id, nil
}
