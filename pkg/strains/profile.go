// Package strains defines the canonical strain profile and the two total
// functions that every candidate passes through: Normalize and Merge.
//
// A candidate can come from the local parser, from the LLM, from the library
// document or from an HTTP request body. None of them is trusted to have the
// right shape, so every consumer normalizes before use.
package strains

import (
	"strings"

	"github.com/agentstation/strainmap/pkg/labels"
)

// Profile is the canonical strain record.
type Profile struct {
	ID                  string    `json:"id" yaml:"id"`
	Name                string    `json:"name" yaml:"name"`
	Manufacturer        string    `json:"manufacturer" yaml:"manufacturer"`
	Genetics            string    `json:"genetics" yaml:"genetics"`
	THC                 string    `json:"thc" yaml:"thc"`
	CBD                 string    `json:"cbd" yaml:"cbd"`
	Cultivation         string    `json:"cultivation" yaml:"cultivation"`
	Terpenes            []Terpene `json:"terpenes" yaml:"terpenes"`
	Effects             []string  `json:"effects" yaml:"effects"`
	AromaFlavor         []string  `json:"aromaFlavor" yaml:"aromaFlavor"`
	OverallEffect       string    `json:"overallEffect" yaml:"overallEffect"`
	OnsetDuration       string    `json:"onsetDuration" yaml:"onsetDuration"`
	Characteristic      string    `json:"characteristic" yaml:"characteristic"`
	MedicalApplications []string  `json:"medicalApplications" yaml:"medicalApplications"`
	CommunityFeedback   string    `json:"communityFeedback" yaml:"communityFeedback"`
	Notes               string    `json:"notes" yaml:"notes"`
	Image               string    `json:"image" yaml:"image"`
	CreatedAt           string    `json:"createdAt" yaml:"createdAt"`
}

// Terpene is one entry of a terpene profile.
type Terpene struct {
	Name    string   `json:"name" yaml:"name"`
	Amount  string   `json:"amount" yaml:"amount"`
	Effects []string `json:"effects" yaml:"effects"`
}

// String renders "name (amount) - effect1, effect2". Empty parts are omitted.
func (t Terpene) String() string {
	var b strings.Builder
	b.WriteString(t.Name)
	if t.Amount != "" {
		b.WriteString(" (")
		b.WriteString(t.Amount)
		b.WriteString(")")
	}
	if len(t.Effects) > 0 {
		b.WriteString(" - ")
		b.WriteString(strings.Join(t.Effects, ", "))
	}
	return b.String()
}

// Candidate is the untyped shape of a profile decoded from JSON or YAML.
type Candidate map[string]any

// scalarKeys lists the string fields in declaration order.
var scalarKeys = []labels.Key{
	labels.ID, labels.Name, labels.Manufacturer, labels.Genetics, labels.THC, labels.CBD,
	labels.Cultivation, labels.OverallEffect, labels.OnsetDuration, labels.Characteristic,
	labels.CommunityFeedback, labels.Notes, labels.Image, labels.CreatedAt,
}

// listKeys lists the set-like string list fields.
var listKeys = []labels.Key{labels.Effects, labels.AromaFlavor, labels.MedicalApplications}

// scalar returns a pointer to the string field for key, or nil.
func (p *Profile) scalar(key labels.Key) *string {
	switch key {
	case labels.ID:
		return &p.ID
	case labels.Name:
		return &p.Name
	case labels.Manufacturer:
		return &p.Manufacturer
	case labels.Genetics:
		return &p.Genetics
	case labels.THC:
		return &p.THC
	case labels.CBD:
		return &p.CBD
	case labels.Cultivation:
		return &p.Cultivation
	case labels.OverallEffect:
		return &p.OverallEffect
	case labels.OnsetDuration:
		return &p.OnsetDuration
	case labels.Characteristic:
		return &p.Characteristic
	case labels.CommunityFeedback:
		return &p.CommunityFeedback
	case labels.Notes:
		return &p.Notes
	case labels.Image:
		return &p.Image
	case labels.CreatedAt:
		return &p.CreatedAt
	}
	return nil
}

// list returns a pointer to the list field for key, or nil.
func (p *Profile) list(key labels.Key) *[]string {
	switch key {
	case labels.Effects:
		return &p.Effects
	case labels.AromaFlavor:
		return &p.AromaFlavor
	case labels.MedicalApplications:
		return &p.MedicalApplications
	}
	return nil
}

// Text returns the string value of a scalar field, or "" for other keys.
func (p Profile) Text(key labels.Key) string {
	if s := p.scalar(key); s != nil {
		return *s
	}
	return ""
}

// List returns the values of a list field, or nil for other keys.
func (p Profile) List(key labels.Key) []string {
	if l := p.list(key); l != nil {
		return *l
	}
	return nil
}

// IsEmpty reports whether the profile carries no data besides id and createdAt.
func (p Profile) IsEmpty() bool {
	for _, key := range scalarKeys {
		if key == labels.ID || key == labels.CreatedAt {
			continue
		}
		if p.Text(key) != "" {
			return false
		}
	}
	for _, key := range listKeys {
		if len(p.List(key)) > 0 {
			return false
		}
	}
	return len(p.Terpenes) == 0
}
