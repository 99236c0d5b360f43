package output

import (
	"io"

	"github.com/agentstation/strainmap/internal/cmd/table"
	"github.com/agentstation/strainmap/pkg/importer"
	"github.com/agentstation/strainmap/pkg/reconciler"
	"github.com/agentstation/strainmap/pkg/strains"
)

// Printer writes command results in one format.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a printer for w.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format}
}

// Format returns the printer's format.
func (p *Printer) Format() Format {
	return p.format
}

func (p *Printer) print(tableData, raw any) error {
	formatter := NewFormatter(p.format)
	if p.format.IsTable() {
		return formatter.Format(p.w, tableData)
	}
	return formatter.Format(p.w, raw)
}

// Profiles prints a profile list.
func (p *Printer) Profiles(profiles []strains.Profile) error {
	return p.print(table.ProfilesToTableData(profiles, p.format == FormatWide), profiles)
}

// Profile prints a single profile.
func (p *Printer) Profile(profile strains.Profile) error {
	return p.print(table.ProfileToTableData(profile), profile)
}

// Review prints review rows followed by their summary.
func (p *Printer) Review(rows []reconciler.ReviewRow) error {
	summary := reconciler.Summarize(rows)
	tables := []table.Data{
		table.ReviewToTableData(rows, p.format == FormatWide),
		table.SummaryToTableData(summary),
	}
	raw := struct {
		Rows    []reconciler.ReviewRow `json:"rows" yaml:"rows"`
		Summary reconciler.Summary     `json:"summary" yaml:"summary"`
	}{rows, summary}
	return p.print(tables, raw)
}

// Import prints an import result. Tables show the merged review; JSON and
// YAML carry the whole result.
func (p *Printer) Import(res *importer.Result) error {
	tables := []table.Data{
		table.ReviewToTableData(res.Rows, p.format == FormatWide),
		table.SummaryToTableData(res.Summary),
	}
	return p.print(tables, res)
}
