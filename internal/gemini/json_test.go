package gemini_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/strainmap/internal/gemini"
	"github.com/agentstation/strainmap/pkg/errors"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]any
	}{
		{
			name:  "plain object",
			input: `{"name":"Blue Dream"}`,
			want:  map[string]any{"name": "Blue Dream"},
		},
		{
			name:  "json fence",
			input: "```json\n{\"name\":\"Blue Dream\"}\n```",
			want:  map[string]any{"name": "Blue Dream"},
		},
		{
			name:  "bare fence",
			input: "```\n{\"thc\":\"22%\"}\n```",
			want:  map[string]any{"thc": "22%"},
		},
		{
			name:  "prose around object",
			input: `Ergebnis: {"name":"Pink Kush","notes":"a } b"} fertig`,
			want:  map[string]any{"name": "Pink Kush", "notes": "a } b"},
		},
		{
			name:  "escaped quote in string",
			input: `x {"notes":"sagt \"hallo {\" laut"} y {"other":1}`,
			want:  map[string]any{"notes": `sagt "hallo {" laut`},
		},
		{
			name:  "nested object",
			input: `vorher {"profiles":[{"name":"A"}]} nachher`,
			want:  map[string]any{"profiles": []any{map[string]any{"name": "A"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gemini.ParseJSON(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseJSONFailures(t *testing.T) {
	for _, input := range []string{"", "keine Daten", `{"name": "offen`, "[1,2,3]"} {
		t.Run(input, func(t *testing.T) {
			_, err := gemini.ParseJSON(input)
			require.Error(t, err)

			var parseErr *errors.ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}
