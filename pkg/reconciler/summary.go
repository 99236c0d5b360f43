package reconciler

// Summary counts review rows per confidence tier and source.
type Summary struct {
	Rows   int            `json:"rows" yaml:"rows"`
	High   int            `json:"high" yaml:"high"`
	Medium int            `json:"medium" yaml:"medium"`
	Low    int            `json:"low" yaml:"low"`
	Source map[Source]int `json:"source" yaml:"source"`
}

// Summarize aggregates rows.
func Summarize(rows []ReviewRow) Summary {
	s := Summary{Rows: len(rows), Source: make(map[Source]int)}
	for _, row := range rows {
		switch row.Confidence {
		case High:
			s.High++
		case Medium:
			s.Medium++
		default:
			s.Low++
		}
		s.Source[row.Source]++
	}
	return s
}

// NeedsAttention returns rows with Low confidence and rows where the LLM
// replaced a local value.
func NeedsAttention(rows []ReviewRow) []ReviewRow {
	out := []ReviewRow{}
	for _, row := range rows {
		if row.Confidence == Low || (row.Source == SourceLLM && row.LocalValue != "") {
			out = append(out, row)
		}
	}
	return out
}
