package template_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/strainmap/pkg/parser"
	"github.com/agentstation/strainmap/pkg/template"
)

func TestTemplateIsValid(t *testing.T) {
	v := template.Validate(template.Template)
	assert.True(t, v.Valid)
	assert.Empty(t, v.Missing)
	assert.Equal(t, "complete", v.String())
}

func TestValidateMissing(t *testing.T) {
	text := "strain: Blue Dream\n  HERSTELLER : Aurora\nTHC: 22%\nGenetik Blueberry"

	v := template.Validate(text)

	assert.False(t, v.Valid)
	assert.NotContains(t, v.Missing, "Strain")
	assert.NotContains(t, v.Missing, "Hersteller")
	assert.NotContains(t, v.Missing, "THC")
	assert.Contains(t, v.Missing, "Genetik", "label without colon does not count")
	assert.Len(t, v.Missing, len(template.RequiredLabels)-3)
	assert.True(t, strings.HasPrefix(v.String(), "missing Genetik, CBD"))
}

func TestValidateEmpty(t *testing.T) {
	v := template.Validate("")
	assert.False(t, v.Valid)
	assert.Equal(t, template.RequiredLabels, v.Missing)
}

func TestBlankTemplateParses(t *testing.T) {
	p := parser.Parse(template.Template)
	assert.Empty(t, p.Name)
	assert.Empty(t, p.Manufacturer)
	assert.Empty(t, p.Effects)
	assert.Empty(t, p.Notes)
}
