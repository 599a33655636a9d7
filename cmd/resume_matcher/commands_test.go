package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const backendVacancy = `{"title": "Backend Developer", "skills_required": ["PHP", "Laravel"]}`

func TestScoreCommand(t *testing.T) {
	opts := scoreOptions{
		resumeFile: writeFile(t, "resume.json", `{"skills": ["php", "laravel"], "experience_years": 6}`),
		vacancy:    writeFile(t, "vacancy.json", backendVacancy),
	}

	var out bytes.Buffer
	require.NoError(t, runScore(&out, opts))

	var result types.ScoreResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, 85, result.Score)
	assert.Equal(t, "it", result.Breakdown.JobFamily)
	assert.Equal(t, []string{"PHP", "Laravel"}, result.Breakdown.Skills.Matched)
}

func TestScoreCommand_OutputFileAndVerbose(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "score.json")
	opts := scoreOptions{
		resumeFile: writeFile(t, "resume.json", `{"skills": ["php"], "experience_years": 1}`),
		vacancy:    writeFile(t, "vacancy.json", backendVacancy),
		out:        outPath,
		verbose:    true,
	}

	var out bytes.Buffer
	require.NoError(t, runScore(&out, opts))
	assert.Contains(t, out.String(), "Output: "+outPath)
	assert.Contains(t, out.String(), "┌")

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var result types.ScoreResult
	require.NoError(t, json.Unmarshal(content, &result))
	assert.Equal(t, []string{"Laravel"}, result.Breakdown.Skills.Missing)
}

func TestScoreCommand_Errors(t *testing.T) {
	vacancy := writeFile(t, "vacancy.json", backendVacancy)
	resume := writeFile(t, "resume.json", `{"skills": ["php"]}`)

	tests := []struct {
		name        string
		opts        scoreOptions
		errorString string
	}{
		{
			name:        "missing vacancy",
			opts:        scoreOptions{resumeFile: resume},
			errorString: "--vacancy is required",
		},
		{
			name:        "missing resume",
			opts:        scoreOptions{vacancy: vacancy},
			errorString: "--resume or --resume-text is required",
		},
		{
			name:        "unreadable resume",
			opts:        scoreOptions{vacancy: vacancy, resumeFile: filepath.Join(t.TempDir(), "absent.json")},
			errorString: "failed to read file",
		},
		{
			name:        "malformed resume",
			opts:        scoreOptions{vacancy: vacancy, resumeFile: writeFile(t, "bad.json", "{not json")},
			errorString: "failed to unmarshal JSON",
		},
		{
			name:        "vacancy with bad bounds",
			opts:        scoreOptions{resumeFile: resume, vacancy: writeFile(t, "v.json", `{"title": "X", "experience_min_years": -3}`)},
			errorString: "invalid vacancy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runScore(&bytes.Buffer{}, tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestClassifyCommand(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runClassify(&out, "", "Senior Laravel developer for our API platform"))

	var result classifyResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "it", string(result.Family))
	assert.InDelta(t, 0.55, result.Weights.Skills, 1e-9)

	out.Reset()
	require.NoError(t, runClassify(&out, writeFile(t, "vacancy.json", `{"title": "Maintenance Technician"}`), ""))
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "maintenance", string(result.Family))

	assert.Error(t, runClassify(&out, "", ""))
}

func TestNormalizeSkillsCommand(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runNormalizeSkills(&out, []string{"k8s", "Kubernetes", "js"}, ""))

	var got []string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, []string{"Kubernetes", "JavaScript"}, got)

	out.Reset()
	path := writeFile(t, "skills.json", `["k8s", "js"]`)
	require.NoError(t, runNormalizeSkills(&out, nil, path))
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, []string{"Kubernetes", "JavaScript"}, got)

	assert.Error(t, runNormalizeSkills(&out, nil, ""))
	assert.Error(t, runNormalizeSkills(&out, []string{"go"}, path))
}

func TestNormalizeResumeCommand(t *testing.T) {
	var out bytes.Buffer
	resume := writeFile(t, "resume.json", `{"entities": {"skills": "php, laravel", "experience_years": 4}}`)
	require.NoError(t, runNormalizeResume(&out, resume, "", ""))

	var profile types.ResumeProfile
	require.NoError(t, json.Unmarshal(out.Bytes(), &profile))
	assert.Equal(t, []string{"PHP", "Laravel"}, profile.Skills)
	assert.Equal(t, 4.0, profile.ExperienceYears)
}

func TestDatabaseCommands_RequireURL(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MATCHER_DATABASE_URL", "")

	rescoreVacancyID = 1
	rankingVacancyID = 1
	t.Cleanup(func() {
		rescoreVacancyID = 0
		rankingVacancyID = 0
	})

	for name, run := range map[string]func() error{
		"rescore": func() error { return runRescore(context.Background(), &bytes.Buffer{}) },
		"ranking": func() error { return runRanking(context.Background(), &bytes.Buffer{}) },
		"migrate": func() error { return runMigrate(context.Background(), &bytes.Buffer{}) },
	} {
		t.Run(name, func(t *testing.T) {
			err := run()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "database URL is required")
		})
	}
}

func TestRescoreCommand_InvalidVacancyID(t *testing.T) {
	rescoreVacancyID = 0
	err := runRescore(context.Background(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--vacancy-id")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), app+" version: "))
}
