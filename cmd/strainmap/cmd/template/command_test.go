package template_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/strainmap/cmd/strainmap/cmd/template"
	"github.com/agentstation/strainmap/internal/cmd/application"
	"github.com/agentstation/strainmap/pkg/errors"
	strainTemplate "github.com/agentstation/strainmap/pkg/template"
)

func run(t *testing.T, format, stdin string, args ...string) (string, error) {
	t.Helper()
	app := &application.Mock{OutputFormatFunc: func() string { return format }}
	cmd := template.NewCommand(app)

	var stdout bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestTemplatePrints(t *testing.T) {
	out, err := run(t, "table", "")
	require.NoError(t, err)
	assert.Equal(t, strainTemplate.Template, out)
}

func TestValidateComplete(t *testing.T) {
	out, err := run(t, "table", strainTemplate.Template, "validate")
	require.NoError(t, err)
	assert.Equal(t, "✓ Template complete\n", out)
}

func TestValidateIncomplete(t *testing.T) {
	out, err := run(t, "json", "Strain: Gelato\nTHC: 25%\n", "validate")
	assert.True(t, errors.IsValidationError(err))

	var v strainTemplate.Validation
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.False(t, v.Valid)
	assert.Contains(t, v.Missing, "Hersteller")
	assert.NotContains(t, v.Missing, "Strain")
}

func TestValidateIncompleteTable(t *testing.T) {
	out, err := run(t, "table", "Strain: Gelato\n", "validate")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(out, "! Template incomplete\n   Hersteller\n"))
}
