// Package types provides the data shapes exchanged between the scoring core,
// persistence and the API surfaces.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/mitchellh/mapstructure"
)

// VacancyRecord is a job posting under evaluation. Nil slices and pointers
// mean the field was absent.
type VacancyRecord struct {
	ID                 int64           `json:"id,omitempty" mapstructure:"id"`
	Title              string          `json:"title" mapstructure:"title" validate:"max=500"`
	Description        string          `json:"description,omitempty" mapstructure:"description"`
	Requirements       string          `json:"requirements,omitempty" mapstructure:"requirements"`
	Responsibilities   string          `json:"responsibilities,omitempty" mapstructure:"responsibilities"`
	SkillsRequired     []string        `json:"skills_required,omitempty" mapstructure:"skills_required"`
	SkillsOptional     []string        `json:"skills_optional,omitempty" mapstructure:"skills_optional"`
	ExperienceMinYears *int            `json:"experience_min_years,omitempty" mapstructure:"experience_min_years" validate:"omitempty,gte=0,lte=60"`
	ExperienceMaxYears *int            `json:"experience_max_years,omitempty" mapstructure:"experience_max_years" validate:"omitempty,gte=0,lte=60"`
	EducationRequired  *string         `json:"education_required,omitempty" mapstructure:"education_required"`
	Weights            *WeightOverride `json:"weights,omitempty" mapstructure:"weights"`
}

// vacancyKeyAliases lists alternate input keys accepted for a vacancy field,
// checked in order when the canonical key is absent.
var vacancyKeyAliases = map[string][]string{
	"skills_required": {"required_skills", "skills"},
	"skills_optional": {"skills_nice", "nice_to_have", "optional_skills"},
}

// Validate checks field ranges and that the experience bounds are ordered.
func (v *VacancyRecord) Validate() error {
	validate := validator.New()
	if err := validate.Struct(v); err != nil {
		return err
	}
	if v.ExperienceMinYears != nil && v.ExperienceMaxYears != nil && *v.ExperienceMinYears > *v.ExperienceMaxYears {
		return fmt.Errorf("experience_min_years (%d) exceeds experience_max_years (%d)", *v.ExperienceMinYears, *v.ExperienceMaxYears)
	}
	if v.Weights != nil {
		return v.Weights.Validate()
	}
	return nil
}

// SwapExperienceBounds orders min and max when both are present and reversed.
func (v *VacancyRecord) SwapExperienceBounds() {
	if v.ExperienceMinYears != nil && v.ExperienceMaxYears != nil && *v.ExperienceMinYears > *v.ExperienceMaxYears {
		v.ExperienceMinYears, v.ExperienceMaxYears = v.ExperienceMaxYears, v.ExperienceMinYears
	}
}

// DecodeVacancy builds a VacancyRecord from a loosely typed key-value document.
// Numeric strings are accepted for numbers, skill lists may be delimited
// strings or lists of objects, and alternate skill keys are honoured.
func DecodeVacancy(doc map[string]any) (*VacancyRecord, error) {
	input := make(map[string]any, len(doc))
	for k, v := range doc {
		input[strings.ToLower(strings.TrimSpace(k))] = v
	}
	for canonical, alternates := range vacancyKeyAliases {
		if present(input[canonical]) {
			continue
		}
		for _, alt := range alternates {
			if present(input[alt]) {
				input[canonical] = input[alt]
				break
			}
		}
	}

	var v VacancyRecord
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       skillListHook,
		Result:           &v,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vacancy decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return nil, fmt.Errorf("failed to decode vacancy: %w", err)
	}
	return &v, nil
}

// skillListHook flattens any value destined for a []string field through the
// skill flattener so objects and delimited strings decode into plain lists.
func skillListHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf([]string{}) || data == nil {
		return data, nil
	}
	return skills.Flatten(data), nil
}

func present(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	case []any:
		return len(val) > 0
	case []string:
		return len(val) > 0
	}
	return true
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}
