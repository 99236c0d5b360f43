// Package template holds the structured import template and checks pasted
// text against its required labels.
package template

import (
	"regexp"
	"strings"
)

// RequiredLabels are the labels a complete import text carries, in template order.
var RequiredLabels = []string{
	"Strain",
	"Hersteller",
	"Genetik",
	"THC",
	"CBD",
	"Anbau",
	"Terpenprofil",
	"Wirkungsprofil",
	"Geschmack/Aroma",
	"Gesamtwirkung",
	"Onset & Dauer",
	"Characteristic",
	"Medizinische Anwendungen",
	"Community-Feedback",
}

// Template is the blank import form.
const Template = `Strain:
Hersteller:
Genetik:
THC:
CBD:
Anbau:
Terpenprofil:
- Terpenname (0.0%) - Wirkung 1, Wirkung 2
Wirkungsprofil:
Geschmack/Aroma:
Gesamtwirkung:
Onset & Dauer:
Characteristic:
Medizinische Anwendungen:
Community-Feedback:
Notizen:
`

var labelPatterns = compile(RequiredLabels)

func compile(labels []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(labels))
	for i, label := range labels {
		out[i] = regexp.MustCompile(`(?im)^\s*` + regexp.QuoteMeta(label) + `\s*:`)
	}
	return out
}

// Validation is the result of Validate.
type Validation struct {
	Valid   bool     `json:"valid" yaml:"valid"`
	Missing []string `json:"missing" yaml:"missing"`
}

// Validate reports which required labels are absent from text. A label
// counts when it starts a line (after optional spaces) and is followed by
// a colon; case is ignored.
func Validate(text string) Validation {
	missing := []string{}
	for i, re := range labelPatterns {
		if !re.MatchString(text) {
			missing = append(missing, RequiredLabels[i])
		}
	}
	return Validation{Valid: len(missing) == 0, Missing: missing}
}

// String renders the missing labels for error messages.
func (v Validation) String() string {
	if v.Valid {
		return "complete"
	}
	return "missing " + strings.Join(v.Missing, ", ")
}
