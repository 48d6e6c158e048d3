// Package taxonomy holds the static career reference table: salaries,
// required skills, market figures, interview questions and roadmaps.
package taxonomy

import (
	"sort"

	"github.com/okian/careerlens/internal/domain/model"
)

// Fallbacks for careers missing from the catalog.
const (
	DefaultBaseSalary = 50000.0
	GenericQuestion   = "Tell me about your technical background."
)

var (
	defaultMarket  = model.Market{Demand: 50, Growth: 5, Trend: "Variable"}
	defaultRoadmap = []string{"General Skill Development"}
)

// CareerProfile is the reference entry for one supported career.
type CareerProfile struct {
	Name           string       `koanf:"name" json:"name"`
	Interest       string       `koanf:"interest" json:"interest"`
	BaseSalary     float64      `koanf:"base_salary" json:"base_salary"`
	RequiredSkills []string     `koanf:"required_skills" json:"required_skills"`
	Market         model.Market `koanf:"market" json:"market"`
	Questions      []string     `koanf:"questions" json:"questions"`
	Roadmap        []string     `koanf:"roadmap" json:"roadmap"`
}

// Catalog is an immutable career table. Accessors return copies.
type Catalog struct {
	profiles map[string]CareerProfile
	names    []string
}

// New builds a catalog. Later entries with the same name replace earlier ones.
func New(profiles []CareerProfile) (*Catalog, error) {
	c := &Catalog{profiles: make(map[string]CareerProfile, len(profiles))}
	for _, p := range profiles {
		if p.Name == "" {
			return nil, ErrInvalidProfile
		}
		if _, dup := c.profiles[p.Name]; !dup {
			c.names = append(c.names, p.Name)
		}
		c.profiles[p.Name] = clone(p)
	}
	return c, nil
}

// Lookup returns the profile for career.
func (c *Catalog) Lookup(career string) (CareerProfile, bool) {
	p, ok := c.profiles[career]
	if !ok {
		return CareerProfile{}, false
	}
	return clone(p), true
}

// Names lists careers in catalog order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// BaseSalary returns the base salary for career or DefaultBaseSalary.
func (c *Catalog) BaseSalary(career string) float64 {
	if p, ok := c.profiles[career]; ok {
		return p.BaseSalary
	}
	return DefaultBaseSalary
}

// RequiredSkills returns the skills for career; unknown careers have none.
func (c *Catalog) RequiredSkills(career string) []string {
	return append([]string(nil), c.profiles[career].RequiredSkills...)
}

// Market returns demand figures for career with a generic fallback.
func (c *Catalog) Market(career string) model.Market {
	if p, ok := c.profiles[career]; ok {
		return p.Market
	}
	return defaultMarket
}

// Questions returns the interview pool for career or the generic question.
func (c *Catalog) Questions(career string) []string {
	if p, ok := c.profiles[career]; ok && len(p.Questions) > 0 {
		return append([]string(nil), p.Questions...)
	}
	return []string{GenericQuestion}
}

// Roadmap returns learning milestones for career.
func (c *Catalog) Roadmap(career string) []string {
	if p, ok := c.profiles[career]; ok && len(p.Roadmap) > 0 {
		return append([]string(nil), p.Roadmap...)
	}
	return append([]string(nil), defaultRoadmap...)
}

// Interests returns the distinct interest domains sorted lexically, which is
// the order a label encoder assigns codes in.
func (c *Catalog) Interests() []string {
	seen := make(map[string]struct{}, len(c.profiles))
	out := make([]string, 0, len(c.profiles))
	for _, name := range c.names {
		in := c.profiles[name].Interest
		if in == "" {
			continue
		}
		if _, ok := seen[in]; ok {
			continue
		}
		seen[in] = struct{}{}
		out = append(out, in)
	}
	sort.Strings(out)
	return out
}

func clone(p CareerProfile) CareerProfile {
	p.RequiredSkills = append([]string(nil), p.RequiredSkills...)
	p.Questions = append([]string(nil), p.Questions...)
	p.Roadmap = append([]string(nil), p.Roadmap...)
	return p
}
