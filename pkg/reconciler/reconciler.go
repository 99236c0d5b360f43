// Package reconciler compares a local candidate, an LLM candidate and the
// merged profile, and explains field by field where the merged value came
// from and how much it can be trusted.
package reconciler

import (
	"strings"

	"github.com/agentstation/strainmap/pkg/labels"
	"github.com/agentstation/strainmap/pkg/strains"
)

// Source names the extraction origin of a merged value.
type Source string

// Sources.
const (
	SourceNone  Source = "-"
	SourceLocal Source = "Local"
	SourceLLM   Source = "LLM"
	SourceBoth  Source = "Local+LLM"
)

// Confidence is the trust tier of a merged value.
type Confidence string

// Confidence tiers.
const (
	Low    Confidence = "Low"
	Medium Confidence = "Medium"
	High   Confidence = "High"
)

// ReviewRow explains one populated field of the merged profile.
type ReviewRow struct {
	Key        labels.Key `json:"key" yaml:"key"`
	Label      string     `json:"label" yaml:"label"`
	Value      string     `json:"value" yaml:"value"`
	LocalValue string     `json:"localValue" yaml:"localValue"`
	LLMValue   string     `json:"llmValue" yaml:"llmValue"`
	Source     Source     `json:"source" yaml:"source"`
	Confidence Confidence `json:"confidence" yaml:"confidence"`
}

// Field is one entry of the review order.
type Field struct {
	Key   labels.Key
	Label string
}

// Fields is the fixed order of review rows.
var Fields = []Field{
	{labels.Name, "Name"},
	{labels.Manufacturer, "Manufacturer"},
	{labels.Genetics, "Genetics"},
	{labels.THC, "THC"},
	{labels.CBD, "CBD"},
	{labels.Cultivation, "Cultivation"},
	{labels.Effects, "Effects"},
	{labels.AromaFlavor, "Aroma/Flavor"},
	{labels.OverallEffect, "Overall effect"},
	{labels.OnsetDuration, "Onset & duration"},
	{labels.Characteristic, "Characteristic"},
	{labels.MedicalApplications, "Medical applications"},
	{labels.CommunityFeedback, "Community feedback"},
	{labels.Notes, "Notes"},
	{labels.Terpenes, "Terpenes"},
}

const listSeparator = " | "

// Review builds one row per field with a non-empty merged value, in Fields
// order. Inputs may be any candidate shape; they are normalized first.
// When usedLLM is false the LLM candidate is still shown in LLMValue but
// never counts as a source.
func Review(local, llm, merged any, usedLLM bool) []ReviewRow {
	l := strains.Normalize(local, strains.WithoutTimestamp())
	m := strains.Normalize(merged, strains.WithoutTimestamp())
	x := strains.Normalize(llm, strains.WithoutTimestamp())

	rows := make([]ReviewRow, 0, len(Fields))
	for _, f := range Fields {
		display := displayValue(m, f.Key)
		if display == "" {
			continue
		}
		localCmp, llmCmp, mergedCmp := comparableValue(l, f.Key), comparableValue(x, f.Key), comparableValue(m, f.Key)
		source, confidence := evaluate(localCmp, llmCmp, mergedCmp, usedLLM)
		rows = append(rows, ReviewRow{
			Key:        f.Key,
			Label:      f.Label,
			Value:      display,
			LocalValue: displayValue(l, f.Key),
			LLMValue:   displayValue(x, f.Key),
			Source:     source,
			Confidence: confidence,
		})
	}
	return rows
}

// evaluate applies the source and confidence rules to comparable strings.
func evaluate(local, llm, merged string, usedLLM bool) (Source, Confidence) {
	switch {
	case merged == "":
		return SourceNone, Low
	case !usedLLM || llm == "":
		if local != "" {
			return SourceLocal, Medium
		}
		return SourceNone, Low
	case local == "":
		return SourceLLM, Medium
	case local == llm:
		return SourceBoth, High
	case merged == llm:
		return SourceLLM, Medium
	case merged == local:
		return SourceLocal, Medium
	default:
		// edited after merging
		return SourceBoth, Low
	}
}

// comparableValue renders a field as one deterministic string.
func comparableValue(p strains.Profile, key labels.Key) string {
	switch {
	case key == labels.Terpenes:
		return joinTerpenes(p.Terpenes)
	case key.IsList():
		return strings.Join(p.List(key), listSeparator)
	default:
		return strings.TrimSpace(p.Text(key))
	}
}

// displayValue renders a field for people: lists comma-separated,
// terpenes as "name (amount) - effects" joined by " | ".
func displayValue(p strains.Profile, key labels.Key) string {
	switch {
	case key == labels.Terpenes:
		return joinTerpenes(p.Terpenes)
	case key.IsList():
		return strings.Join(p.List(key), ", ")
	default:
		return strings.TrimSpace(p.Text(key))
	}
}

func joinTerpenes(terpenes []strains.Terpene) string {
	parts := make([]string, 0, len(terpenes))
	for _, t := range terpenes {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, listSeparator)
}
