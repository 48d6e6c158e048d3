// Package resume compares resume text with the skills a career requires.
package resume

import (
	"strings"

	"github.com/okian/careerlens/internal/domain/model"
)

const (
	atsWeight = 0.8
	atsBase   = 10
)

// SkillTable resolves the ordered skill list for a career.
type SkillTable interface {
	RequiredSkills(career string) []string
}

// Matcher produces skill-gap reports.
type Matcher struct {
	skills SkillTable
}

// NewMatcher creates a matcher backed by skills.
func NewMatcher(skills SkillTable) *Matcher {
	return &Matcher{skills: skills}
}

// Analyze reports which of the career's skills appear in text. Matching is
// case-insensitive substring containment, so short skills such as "r" match
// inside other words.
func (m *Matcher) Analyze(text, career string) (model.SkillGapReport, error) {
	if strings.TrimSpace(text) == "" {
		return model.SkillGapReport{}, model.ErrEmptyInput
	}
	haystack := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	required := m.skills.RequiredSkills(career)

	report := model.SkillGapReport{
		Career:        career,
		FoundSkills:   []string{},
		MissingSkills: []string{},
	}
	for _, skill := range required {
		if strings.Contains(haystack, strings.ToLower(skill)) {
			report.FoundSkills = append(report.FoundSkills, skill)
		} else {
			report.MissingSkills = append(report.MissingSkills, skill)
		}
	}
	if len(required) > 0 {
		report.MatchScore = model.Round2(100 * float64(len(report.FoundSkills)) / float64(len(required)))
	}
	report.ATSScore = model.Round2(report.MatchScore*atsWeight + atsBase)
	return report, nil
}
