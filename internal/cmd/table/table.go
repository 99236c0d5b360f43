// Package table converts strain profiles and review rows into table data for CLI output.
package table

import (
	"strconv"
	"strings"

	"github.com/agentstation/strainmap/pkg/labels"
	"github.com/agentstation/strainmap/pkg/reconciler"
	"github.com/agentstation/strainmap/pkg/strains"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// maxCell bounds the width of free-text cells in narrow tables.
const maxCell = 48

// ProfilesToTableData converts a profile list to table format. Wide output
// adds effects, terpenes and medical applications.
func ProfilesToTableData(profiles []strains.Profile, wide bool) Data {
	headers := []string{"ID", "Name", "Manufacturer", "Genetics", "THC", "CBD"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight}
	if wide {
		headers = append(headers, "Effects", "Terpenes", "Medical")
		align = append(align, AlignLeft, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		row := []string{
			dash(p.ID),
			dash(p.Name),
			dash(p.Manufacturer),
			dash(Truncate(p.Genetics, maxCell)),
			dash(p.THC),
			dash(p.CBD),
		}
		if wide {
			row = append(row,
				dash(strings.Join(p.Effects, ", ")),
				dash(TerpeneNames(p.Terpenes)),
				dash(strings.Join(p.MedicalApplications, ", ")),
			)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// ProfileToTableData renders one profile as field/value pairs in review order.
// Empty fields are skipped.
func ProfileToTableData(p strains.Profile) Data {
	rows := [][]string{{"ID", dash(p.ID)}}
	for _, f := range reconciler.Fields {
		var value string
		switch {
		case f.Key == labels.Terpenes:
			lines := make([]string, 0, len(p.Terpenes))
			for _, t := range p.Terpenes {
				lines = append(lines, t.String())
			}
			value = strings.Join(lines, "\n")
		case p.List(f.Key) != nil:
			value = strings.Join(p.List(f.Key), "\n")
		default:
			value = p.Text(f.Key)
		}
		if value == "" {
			continue
		}
		rows = append(rows, []string{f.Label, value})
	}
	if p.CreatedAt != "" {
		rows = append(rows, []string{"Created", p.CreatedAt})
	}
	return Data{Headers: []string{"Field", "Value"}, Rows: rows}
}

// ReviewToTableData converts review rows to table format. Wide output adds
// the local and LLM values next to the merged one.
func ReviewToTableData(rows []reconciler.ReviewRow, wide bool) Data {
	headers := []string{"Field", "Value", "Source", "Confidence"}
	if wide {
		headers = []string{"Field", "Value", "Local", "LLM", "Source", "Confidence"}
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		value := row.Value
		if !wide {
			value = Truncate(value, maxCell)
		}
		r := []string{row.Label, value}
		if wide {
			r = append(r, dash(row.LocalValue), dash(row.LLMValue))
		}
		r = append(r, string(row.Source), string(row.Confidence))
		out = append(out, r)
	}
	return Data{Headers: headers, Rows: out}
}

// SummaryToTableData renders confidence counts as a single row.
func SummaryToTableData(s reconciler.Summary) Data {
	return Data{
		Headers: []string{"Rows", "High", "Medium", "Low"},
		Rows: [][]string{{
			strconv.Itoa(s.Rows),
			strconv.Itoa(s.High),
			strconv.Itoa(s.Medium),
			strconv.Itoa(s.Low),
		}},
		ColumnAlignment: []Align{AlignRight, AlignRight, AlignRight, AlignRight},
	}
}

// TerpeneNames joins terpene names with ", ".
func TerpeneNames(terpenes []strains.Terpene) string {
	names := make([]string, 0, len(terpenes))
	for _, t := range terpenes {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

// Truncate shortens s to max runes, marking the cut with "...".
func Truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if max <= 3 || len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
