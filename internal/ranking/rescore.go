package ranking

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-matcher/internal/experience"
	"github.com/jonathan/resume-matcher/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkers = 4
	lockTTL        = 5 * time.Minute
)

// ErrRescoreInProgress is returned when another rescoring run holds the
// vacancy's lock.
var ErrRescoreInProgress = errors.New("rescore already in progress")

// Store is the persistence a Rescorer reads from and writes scores to.
type Store interface {
	GetVacancy(ctx context.Context, id int64) (*types.VacancyRecord, error)
	ListApplications(ctx context.Context, vacancyID int64) ([]types.Application, error)
	// GetParsedResume returns nil without error when the application's
	// résumé has not been parsed yet.
	GetParsedResume(ctx context.Context, applicationID int64) (*types.ParsedResume, error)
	// SaveScore overwrites any previous score of the application.
	SaveScore(ctx context.Context, applicationID int64, result *types.ScoreResult) error
}

// ScoreCache memoizes score results by CacheKey.
type ScoreCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	// DeleteIfEquals removes key only while it still holds value.
	DeleteIfEquals(ctx context.Context, key string, value string) (bool, error)
}

// RescorerOptions configures a Rescorer. Zero values select defaults.
type RescorerOptions struct {
	Workers  int
	Cache    ScoreCache
	CacheTTL time.Duration
	Logger   *zap.Logger
	// Now overrides the clock used to resolve "present" in work history.
	Now func() time.Time
}

// RescoreReport summarizes one rescoring run.
type RescoreReport struct {
	RunID     uuid.UUID `json:"run_id"`
	VacancyID int64     `json:"vacancy_id"`
	Total     int       `json:"total"`
	Scored    int       `json:"scored"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
}

// Rescorer scores the applications of a vacancy with a bounded worker pool.
type Rescorer struct {
	store      Store
	cache      ScoreCache
	cacheTTL   time.Duration
	workers    int
	logger     *zap.Logger
	normalizer experience.Normalizer
}

// NewRescorer creates a Rescorer over store.
func NewRescorer(store Store, opts RescorerOptions) *Rescorer {
	r := &Rescorer{
		store:      store,
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
		workers:    opts.Workers,
		logger:     opts.Logger,
		normalizer: experience.Normalizer{Now: opts.Now},
	}
	if r.workers <= 0 {
		r.workers = defaultWorkers
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// ScoreProfile scores profile against vacancy, consulting the cache first.
// Cache failures fall back to computing the score.
func (r *Rescorer) ScoreProfile(ctx context.Context, profile *types.ResumeProfile, vacancy *types.VacancyRecord) *types.ScoreResult {
	if r.cache == nil {
		return Score(profile, vacancy)
	}

	key := CacheKey(profile, vacancy)
	var cached types.ScoreResult
	found, err := r.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		r.logger.Debug("score cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		return &cached
	}

	result := Score(profile, vacancy)
	if err := r.cache.SetJSON(ctx, key, result, r.cacheTTL); err != nil {
		r.logger.Debug("score cache write failed", zap.String("key", key), zap.Error(err))
	}
	return result
}

// ScoreDocument normalizes an extraction document and scores it.
func (r *Rescorer) ScoreDocument(ctx context.Context, doc map[string]any, rawText string, vacancy *types.VacancyRecord) (*types.ResumeProfile, *types.ScoreResult) {
	profile := r.normalizer.Normalize(doc, rawText)
	return profile, r.ScoreProfile(ctx, profile, vacancy)
}

// RescoreVacancy recomputes and stores the score of every application of
// the vacancy. A failure on one application is logged and counted; the run
// continues with the rest.
func (r *Rescorer) RescoreVacancy(ctx context.Context, vacancyID int64) (*RescoreReport, error) {
	return r.run(ctx, vacancyID, false)
}

// ScorePending scores only the applications that have no breakdown yet.
func (r *Rescorer) ScorePending(ctx context.Context, vacancyID int64) (*RescoreReport, error) {
	return r.run(ctx, vacancyID, true)
}

type outcome int

const (
	outcomeScored outcome = iota
	outcomeSkipped
	outcomeFailed
)

func (r *Rescorer) run(ctx context.Context, vacancyID int64, pendingOnly bool) (*RescoreReport, error) {
	vacancy, err := r.store.GetVacancy(ctx, vacancyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vacancy %d: %w", vacancyID, err)
	}
	vacancy.SwapExperienceBounds()

	apps, err := r.store.ListApplications(ctx, vacancyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications for vacancy %d: %w", vacancyID, err)
	}
	if pendingOnly {
		apps = pending(apps)
	}

	report := &RescoreReport{RunID: uuid.New(), VacancyID: vacancyID, Total: len(apps)}
	log := r.logger.With(
		zap.String("run_id", report.RunID.String()),
		zap.Int64("vacancy_id", vacancyID),
	)

	if len(apps) == 0 {
		return report, nil
	}

	if r.cache != nil {
		lockKey := RescoreLockKey(vacancyID)
		acquired, err := r.cache.SetIfNotExists(ctx, lockKey, report.RunID.String(), lockTTL)
		if err != nil {
			log.Debug("rescore lock unavailable", zap.Error(err))
		} else if !acquired {
			return nil, ErrRescoreInProgress
		} else {
			defer func() {
				released, err := r.cache.DeleteIfEquals(context.WithoutCancel(ctx), lockKey, report.RunID.String())
				if err != nil {
					log.Debug("rescore lock release failed", zap.Error(err))
				} else if !released {
					log.Warn("rescore lock expired before the run finished")
				}
			}()
		}
	}

	log.Info("rescore started", zap.Int("applications", len(apps)), zap.Int("workers", r.workers))
	started := time.Now()

	var scored, skipped, failed atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for _, app := range apps {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			switch r.rescoreOne(gCtx, log, vacancy, app) {
			case outcomeScored:
				scored.Add(1)
			case outcomeSkipped:
				skipped.Add(1)
			default:
				failed.Add(1)
			}
			return nil
		})
	}
	err = g.Wait()

	report.Scored = int(scored.Load())
	report.Skipped = int(skipped.Load())
	report.Failed = int(failed.Load())

	log.Info("rescore finished",
		zap.Int("scored", report.Scored),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
		zap.Duration("elapsed", time.Since(started)),
	)

	if err != nil {
		return report, fmt.Errorf("rescore interrupted: %w", err)
	}
	return report, nil
}

func (r *Rescorer) rescoreOne(ctx context.Context, log *zap.Logger, vacancy *types.VacancyRecord, app types.Application) outcome {
	log = log.With(zap.Int64("application_id", app.ID))

	parsed, err := r.store.GetParsedResume(ctx, app.ID)
	if err != nil {
		log.Warn("failed to load parsed resume", zap.Error(err))
		return outcomeFailed
	}
	if parsed == nil {
		log.Debug("resume not parsed yet, skipping")
		return outcomeSkipped
	}

	_, result := r.ScoreDocument(ctx, parsed.Document, parsed.RawText, vacancy)
	if err := r.store.SaveScore(ctx, app.ID, result); err != nil {
		log.Warn("failed to save score", zap.Error(err))
		return outcomeFailed
	}
	log.Debug("application scored", zap.Int("score", result.Score))
	return outcomeScored
}

func pending(apps []types.Application) []types.Application {
	out := make([]types.Application, 0, len(apps))
	for _, app := range apps {
		if app.MatchBreakdown == nil {
			out = append(out, app)
		}
	}
	return out
}
