package experience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNormalizer() Normalizer {
	return Normalizer{Now: func() time.Time { return fixedNow }}
}

func TestNormalize_EmptyDocument(t *testing.T) {
	p := NormalizeProfile(nil, "")

	require.NotNil(t, p)
	assert.Equal(t, []string{}, p.Skills)
	assert.Equal(t, []string{}, p.Certifications)
	assert.Equal(t, []string{}, p.Tools)
	assert.Equal(t, []string{}, p.Keywords)
	assert.Empty(t, p.Experiences)
	assert.Empty(t, p.Projects)
	assert.Equal(t, 0.0, p.ExperienceYears)
	assert.Nil(t, p.Education)
	assert.Equal(t, "", p.Email)
}

func TestNormalize_ListFields(t *testing.T) {
	doc := map[string]any{
		"Skills":    "Python, SQL",
		"licenses":  "NEBOSH; First Aid",
		"systems":   []any{"sap pm", "powerbi"},
		"keywords":  []any{"reliability"},
		"email":     " siti@example.com ",
		"education": "Bachelor of Accounting",
	}

	p := testNormalizer().Normalize(doc, "")

	assert.Equal(t, []string{"Python", "SQL"}, p.Skills)
	assert.Equal(t, []string{"NEBOSH", "First Aid"}, p.Certifications)
	assert.Equal(t, []string{"SAP PM", "Power BI"}, p.Tools)
	assert.Equal(t, []string{"Reliability"}, p.Keywords)
	assert.Equal(t, "siti@example.com", p.Email)
	require.NotNil(t, p.Education)
	assert.Equal(t, "Bachelor of Accounting", *p.Education)
}

func TestNormalize_StructuredEducationIsEncoded(t *testing.T) {
	doc := map[string]any{
		"education": []any{map[string]any{"level": "Bachelor", "field": "Accounting"}},
	}

	p := testNormalizer().Normalize(doc, "")

	require.NotNil(t, p.Education)
	assert.Equal(t, `[{"field":"Accounting","level":"Bachelor"}]`, *p.Education)
}

func TestNormalize_ExplicitYears(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
		want float64
	}{
		{"number", map[string]any{"experience_years": 4.0}, 4},
		{"fractional floors", map[string]any{"years_experience": 4.8}, 4},
		{"string with unit", map[string]any{"experience_years": "5 years"}, 5},
		{"zero falls through to next key", map[string]any{"experience_years": 0.0, "years_experience": 3.0}, 3},
		{"experience object", map[string]any{"experience": map[string]any{"years": "6"}}, 6},
		{"negative ignored", map[string]any{"experience_years": -2.0}, 0},
		{"boolean ignored", map[string]any{"experience_years": true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testNormalizer().Normalize(tt.doc, "")
			assert.Equal(t, tt.want, p.ExperienceYears)
		})
	}
}

func TestNormalize_ExplicitYearsBeatWorkHistory(t *testing.T) {
	doc := map[string]any{
		"experience_years": 10.0,
		"work":             []any{map[string]any{"title": "Fitter", "start": "2019", "end": "2021"}},
	}

	p := testNormalizer().Normalize(doc, "")

	assert.Equal(t, 10.0, p.ExperienceYears)
	assert.Len(t, p.Experiences, 1)
}

func TestNormalize_WorkHistorySpans(t *testing.T) {
	doc := map[string]any{
		"work": []any{
			map[string]any{"title": "Technician", "company": "A", "start": "2019-01", "end": "2021-01"},
			map[string]any{"role": "Supervisor", "employer": "B", "from": "Jan 2021", "to": "Present"},
		},
	}

	p := testNormalizer().Normalize(doc, "")

	// 24 + 53 months
	assert.Equal(t, 6.0, p.ExperienceYears)
	require.Len(t, p.Experiences, 2)
	assert.Equal(t, "Supervisor", p.Experiences[1].Title)
	assert.Equal(t, "B", p.Experiences[1].Company)
	assert.Equal(t, "Present", p.Experiences[1].End)
}

func TestNormalize_WorkHistoryDashedMonthRange(t *testing.T) {
	doc := map[string]any{"work": []any{map[string]any{"dates": "2019-05–2021-03"}}}

	p := testNormalizer().Normalize(doc, "")

	require.Len(t, p.Experiences, 1)
	assert.Equal(t, "2019-05", p.Experiences[0].Start)
	assert.Equal(t, "2021-03", p.Experiences[0].End)
	// 22 months
	assert.Equal(t, 1.0, p.ExperienceYears)
}

func TestNormalize_MalformedFieldKeepsDates(t *testing.T) {
	doc := map[string]any{
		"work": []any{
			map[string]any{"start": 2018.0, "end": 2020.0, "title": []any{"Technician"}, "company": map[string]any{"name": "A"}},
		},
	}

	p := testNormalizer().Normalize(doc, "")

	require.Len(t, p.Experiences, 1)
	assert.Equal(t, "Technician", p.Experiences[0].Title)
	assert.Empty(t, p.Experiences[0].Company)
	assert.Equal(t, 2.0, p.ExperienceYears)
}

func TestNormalize_WorkHistoryAlternateShapes(t *testing.T) {
	doc := map[string]any{
		"experience": []any{
			map[string]any{"position": "Planner", "years": "2"},
			map[string]any{"job_title": "Operator", "period": "2018 - 2020"},
			map[string]any{"designation": "Intern", "duration": "18 months"},
			map[string]any{"title": "Helper", "start": "sometime"},
			map[string]any{"title": map[string]any{"nested": 1.0}},
		},
	}

	p := testNormalizer().Normalize(doc, "")

	// 24 + 24 + 18 months; the unreadable row adds nothing
	assert.Equal(t, 5.0, p.ExperienceYears)
	require.Len(t, p.Experiences, 4)
	assert.Equal(t, "Planner", p.Experiences[0].Title)
	require.NotNil(t, p.Experiences[0].Years)
	assert.Equal(t, 2.0, *p.Experiences[0].Years)
	assert.Nil(t, p.Experiences[3].Years)
}

func TestNormalize_CurrentFlagMeansPresent(t *testing.T) {
	doc := map[string]any{
		"work": []any{
			map[string]any{"title": "Engineer", "start": "2023-06", "current": true},
		},
	}

	p := testNormalizer().Normalize(doc, "")

	assert.Equal(t, 2.0, p.ExperienceYears)
	assert.Equal(t, "present", p.Experiences[0].End)
}

func TestNormalize_Bullets(t *testing.T) {
	doc := map[string]any{
		"work": []any{
			map[string]any{
				"title":            "Technician",
				"start":            "2020",
				"end":              "2022",
				"responsibilities": []any{"Overhauled pumps, motors and valves", "Logged work orders"},
			},
		},
	}

	p := testNormalizer().Normalize(doc, "")

	require.Len(t, p.Experiences, 1)
	assert.Equal(t, []string{"Overhauled pumps, motors and valves", "Logged work orders"}, p.Experiences[0].Bullets)
}

func TestNormalize_RawTextFallbacks(t *testing.T) {
	raw := "Ahmad Ali\n" +
		"Maintenance Technician — Petronas (2019–Present)\n" +
		"Skills: preventive maintenance, LOTO\n" +
		"SPM 2012\n" +
		"Diploma in Mechanical Engineering\n" +
		"ahmad@example.com\n"

	p := testNormalizer().Normalize(map[string]any{}, raw)

	assert.Equal(t, []string{"Preventive Maintenance", "LOTO"}, p.Skills)
	require.Len(t, p.Experiences, 1)
	assert.Equal(t, "Maintenance Technician", p.Experiences[0].Title)
	assert.Equal(t, "Petronas", p.Experiences[0].Company)
	assert.Equal(t, 6.0, p.ExperienceYears)
	require.NotNil(t, p.Education)
	assert.Equal(t, "Diploma in Mechanical Engineering", *p.Education)
	assert.Equal(t, "ahmad@example.com", p.Email)
}

func TestNormalize_ClaimedYearsInRawText(t *testing.T) {
	p := testNormalizer().Normalize(nil, "Technician with 7 years of experience in plant maintenance")
	assert.Equal(t, 7.0, p.ExperienceYears)
}

func TestNormalize_FinalYearProjectImputesOneYear(t *testing.T) {
	doc := map[string]any{
		"projects": []any{map[string]any{"title": "Final Year Project: Smart Irrigation", "summary": "IoT sensors"}},
	}

	p := testNormalizer().Normalize(doc, "")

	assert.Equal(t, 1.0, p.ExperienceYears)
	require.Len(t, p.Projects, 1)
	assert.Equal(t, "IoT sensors", p.Projects[0].Description)
}

func TestNormalize_FinalYearProjectFromRawText(t *testing.T) {
	p := testNormalizer().Normalize(nil, "Fresh graduate. Completed FYP on solar tracking.")

	assert.Equal(t, 1.0, p.ExperienceYears)
	require.Len(t, p.Projects, 1)
	assert.Equal(t, "Final Year Project", p.Projects[0].Title)
}

func TestNormalize_ProjectsDoNotImputeWithoutMarker(t *testing.T) {
	p := testNormalizer().Normalize(map[string]any{"projects": "Inventory tracker"}, "")

	assert.Equal(t, 0.0, p.ExperienceYears)
	assert.Equal(t, "Inventory tracker", p.Projects[0].Title)
}

func TestHighestDegreeLine(t *testing.T) {
	line := HighestDegreeLine("SPM 2010\nBachelor of Mechanical Engineering (Hons)\nDiploma in Electrical")
	require.NotNil(t, line)
	assert.Equal(t, "Bachelor of Mechanical Engineering (Hons)", *line)

	assert.Nil(t, HighestDegreeLine("no schooling listed"))
}
