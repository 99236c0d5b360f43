package library

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"

	"github.com/agentstation/strainmap/pkg/labels"
	"github.com/agentstation/strainmap/pkg/strains"
)

// Filter narrows a profile list. Empty criteria match everything.
// Search matches a substring of the name, Manufacturer the whole
// manufacturer, Effect and Medical a substring of any list entry. All
// comparisons ignore case and diacritics.
type Filter struct {
	Search       string `json:"search,omitempty" yaml:"search,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	Effect       string `json:"effect,omitempty" yaml:"effect,omitempty"`
	Medical      string `json:"medical,omitempty" yaml:"medical,omitempty"`
}

// Apply returns the matching profiles in input order.
func (f Filter) Apply(profiles []strains.Profile) []strains.Profile {
	fold := newFolder()
	search := fold(f.Search)
	manufacturer := fold(f.Manufacturer)
	effect := fold(f.Effect)
	medical := fold(f.Medical)

	out := []strains.Profile{}
	for _, p := range profiles {
		if search != "" && !strings.Contains(fold(p.Name), search) {
			continue
		}
		if manufacturer != "" && fold(p.Manufacturer) != manufacturer {
			continue
		}
		if effect != "" && !anyContains(fold, p.Effects, effect) {
			continue
		}
		if medical != "" && !anyContains(fold, p.MedicalApplications, medical) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// newFolder returns a match key function: trimmed, marks stripped, case
// folded. Casers and transform chains keep state, so the result must not
// be shared between goroutines.
func newFolder() func(string) string {
	caser := cases.Fold()
	marks := stripMarks()
	return func(s string) string {
		s = strings.TrimSpace(s)
		if stripped, _, err := transform.String(marks, s); err == nil {
			s = stripped
		}
		return caser.String(s)
	}
}

func anyContains(fold func(string) string, items []string, needle string) bool {
	for _, item := range items {
		if strings.Contains(fold(item), needle) {
			return true
		}
	}
	return false
}

// UniqueValues collects the distinct trimmed values of a scalar or list
// field, sorted in German collation order.
func UniqueValues(profiles []strains.Profile, key labels.Key) []string {
	seen := map[string]struct{}{}
	out := []string{}
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	for _, p := range profiles {
		switch {
		case key == labels.Terpenes:
			for _, t := range p.Terpenes {
				add(t.Name)
			}
		case key.IsList():
			for _, v := range p.List(key) {
				add(v)
			}
		default:
			add(p.Text(key))
		}
	}

	collate.New(language.German).SortStrings(out)
	return out
}
