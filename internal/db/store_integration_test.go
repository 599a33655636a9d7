//go:build integration

package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/types"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if _, err := db.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func cleanupVacancy(t *testing.T, db *DB, vacancyID int64) {
	t.Helper()
	ctx := context.Background()
	_, _ = db.pool.Exec(ctx, "DELETE FROM vacancies WHERE id = $1", vacancyID)
}

func cleanupApplicant(t *testing.T, db *DB, applicantID int64) {
	t.Helper()
	ctx := context.Background()
	_, _ = db.pool.Exec(ctx, "DELETE FROM applicants WHERE id = $1", applicantID)
}

// =============================================================================
// Migration Integration Tests
// =============================================================================

func TestIntegration_Migrate_Idempotent(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	applied, err := db.Migrate(context.Background())
	if err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("second Migrate applied %v, want nothing", applied)
	}
}

// =============================================================================
// Vacancy & Application Integration Tests
// =============================================================================

func TestIntegration_Vacancy_RoundTrip(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	in := &types.VacancyRecord{
		Title:              "Maintenance Technician",
		Requirements:       "3+ years maintaining pumps",
		SkillsRequired:     []string{"Pumps", "Valves"},
		ExperienceMinYears: types.IntPtr(3),
		EducationRequired:  types.StringPtr("Diploma"),
		Weights:            &types.WeightOverride{Skills: types.Float64Ptr(0.6)},
	}
	id, err := db.UpsertVacancy(ctx, in)
	if err != nil {
		t.Fatalf("UpsertVacancy failed: %v", err)
	}
	defer cleanupVacancy(t, db, id)

	got, err := db.GetVacancy(ctx, id)
	if err != nil {
		t.Fatalf("GetVacancy failed: %v", err)
	}
	if got.Title != in.Title || len(got.SkillsRequired) != 2 {
		t.Errorf("GetVacancy = %+v", got)
	}
	if got.SkillsOptional != nil {
		t.Errorf("SkillsOptional = %v, want nil", got.SkillsOptional)
	}
	if got.Weights == nil || got.Weights.Skills == nil || *got.Weights.Skills != 0.6 {
		t.Errorf("Weights = %+v", got.Weights)
	}

	got.Title = "Senior Maintenance Technician"
	if _, err := db.UpsertVacancy(ctx, got); err != nil {
		t.Fatalf("UpsertVacancy update failed: %v", err)
	}
	updated, err := db.GetVacancy(ctx, id)
	if err != nil {
		t.Fatalf("GetVacancy failed: %v", err)
	}
	if updated.Title != "Senior Maintenance Technician" {
		t.Errorf("Title = %q", updated.Title)
	}

	_, err = db.GetVacancy(ctx, -1)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetVacancy(-1) error = %v, want ErrNotFound", err)
	}
}

func TestIntegration_Rescore_EndToEnd(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	vacancyID, err := db.UpsertVacancy(ctx, &types.VacancyRecord{
		Title:          "Backend Developer",
		SkillsRequired: []string{"PHP", "Laravel"},
	})
	if err != nil {
		t.Fatalf("UpsertVacancy failed: %v", err)
	}
	defer cleanupVacancy(t, db, vacancyID)

	suffix := time.Now().UnixNano()
	parsedApplicant, err := db.UpsertApplicant(ctx, "Parsed Applicant", fmt.Sprintf("parsed-%d@test.example.com", suffix))
	if err != nil {
		t.Fatalf("UpsertApplicant failed: %v", err)
	}
	defer cleanupApplicant(t, db, parsedApplicant)
	pendingApplicant, err := db.UpsertApplicant(ctx, "Pending Applicant", fmt.Sprintf("pending-%d@test.example.com", suffix))
	if err != nil {
		t.Fatalf("UpsertApplicant failed: %v", err)
	}
	defer cleanupApplicant(t, db, pendingApplicant)

	resumeID, err := db.CreateResume(ctx, parsedApplicant, "cv.pdf")
	if err != nil {
		t.Fatalf("CreateResume failed: %v", err)
	}
	err = db.SaveParsedResume(ctx, resumeID, "", map[string]any{
		"entities": map[string]any{"skills": []any{"php", "laravel"}, "total_experience_years": 6},
	})
	if err != nil {
		t.Fatalf("SaveParsedResume failed: %v", err)
	}

	// No explicit resume: the latest upload of the applicant is used.
	parsedApp, err := db.CreateApplication(ctx, parsedApplicant, vacancyID, nil)
	if err != nil {
		t.Fatalf("CreateApplication failed: %v", err)
	}
	pendingApp, err := db.CreateApplication(ctx, pendingApplicant, vacancyID, nil)
	if err != nil {
		t.Fatalf("CreateApplication failed: %v", err)
	}

	again, err := db.CreateApplication(ctx, parsedApplicant, vacancyID, nil)
	if err != nil {
		t.Fatalf("CreateApplication repeat failed: %v", err)
	}
	if again != parsedApp {
		t.Errorf("repeat application id = %d, want %d", again, parsedApp)
	}

	missing, err := db.GetParsedResume(ctx, pendingApp)
	if err != nil || missing != nil {
		t.Errorf("GetParsedResume(pending) = %v, %v; want nil, nil", missing, err)
	}

	report, err := ranking.NewRescorer(db, ranking.RescorerOptions{Workers: 2}).RescoreVacancy(ctx, vacancyID)
	if err != nil {
		t.Fatalf("RescoreVacancy failed: %v", err)
	}
	if report.Scored != 1 || report.Skipped != 1 || report.Failed != 0 {
		t.Errorf("report = %+v", report)
	}

	app, err := db.GetApplication(ctx, parsedApp)
	if err != nil {
		t.Fatalf("GetApplication failed: %v", err)
	}
	// Full skills and experience, no education on file.
	if app.MatchScore == nil || *app.MatchScore != 85 {
		t.Errorf("MatchScore = %v, want 85", app.MatchScore)
	}
	if app.MatchBreakdown == nil || app.MatchBreakdown.Breakdown.JobFamily != "it" {
		t.Errorf("MatchBreakdown = %+v", app.MatchBreakdown)
	}
	if app.ResumeID == nil || *app.ResumeID != resumeID {
		t.Errorf("ResumeID = %v, want %d", app.ResumeID, resumeID)
	}

	updated, err := db.SetStatus(ctx, parsedApp, types.StatusShortlisted, "strong match")
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if updated.Status != types.StatusShortlisted {
		t.Errorf("Status = %q", updated.Status)
	}

	if err := db.SaveScore(ctx, -1, &types.ScoreResult{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("SaveScore(-1) error = %v, want ErrNotFound", err)
	}
}
