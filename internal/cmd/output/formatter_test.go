package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/strainmap/internal/cmd/output"
	"github.com/agentstation/strainmap/internal/cmd/table"
	"github.com/agentstation/strainmap/pkg/errors"
	"github.com/agentstation/strainmap/pkg/reconciler"
	"github.com/agentstation/strainmap/pkg/strains"
)

var profiles = []strains.Profile{
	{ID: "blue-dream", Name: "Blue Dream", Manufacturer: "Aurora", THC: "22%"},
	{ID: "pink-kush", Name: "Pink Kush", CBD: "<1%"},
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"table", "JSON", " yaml ", "wide", ""} {
		_, err := output.ParseFormat(in)
		assert.NoError(t, err, in)
	}

	_, err := output.ParseFormat("xml")
	assert.True(t, errors.IsValidationError(err))
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, output.FormatYAML, output.DetectFormat("YAML"))
}

func TestPrinterProfilesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewPrinter(&buf, output.FormatJSON).Profiles(profiles))

	var got []strains.Profile
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, profiles, got)
}

func TestPrinterProfilesYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewPrinter(&buf, output.FormatYAML).Profiles(profiles))

	assert.Contains(t, buf.String(), "name: Blue Dream")
	assert.Contains(t, buf.String(), "id: pink-kush")
}

func TestPrinterProfilesTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewPrinter(&buf, output.FormatTable).Profiles(profiles))

	out := buf.String()
	assert.Contains(t, out, "Blue Dream")
	assert.Contains(t, out, "pink-kush")
	assert.NotContains(t, out, "{")
}

func TestPrinterReview(t *testing.T) {
	rows := []reconciler.ReviewRow{
		{Label: "Name", Value: "Blue Dream", Source: reconciler.SourceBoth, Confidence: reconciler.High},
		{Label: "THC", Value: "22%", Source: reconciler.SourceLocal, Confidence: reconciler.Low},
	}

	var buf bytes.Buffer
	require.NoError(t, output.NewPrinter(&buf, output.FormatJSON).Review(rows))

	var got struct {
		Rows    []reconciler.ReviewRow `json:"rows"`
		Summary reconciler.Summary     `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got.Rows, 2)
	assert.Equal(t, 1, got.Summary.High)
	assert.Equal(t, 1, got.Summary.Low)

	buf.Reset()
	require.NoError(t, output.NewPrinter(&buf, output.FormatTable).Review(rows))
	assert.Contains(t, buf.String(), "Local+LLM")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, map[string]int{"deleted": 1}))
	assert.JSONEq(t, `{"deleted":1}`, buf.String())
}

func TestTableFormatterSections(t *testing.T) {
	var buf bytes.Buffer
	data := []table.Data{
		{Headers: []string{"A"}, Rows: [][]string{{"first"}}},
		{Headers: []string{"B"}, Rows: [][]string{{"second"}}},
	}
	require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, data))
	assert.Contains(t, buf.String(), "first")
	assert.Contains(t, buf.String(), "second")
}
