// Package labels maps free-text field labels ("Hersteller", "Breeder",
// "Geschmack/Aroma") to canonical strain profile keys.
//
// The synonym table is plain data. Every key resolves to itself and no
// synonym belongs to more than one key.
package labels

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Key is a canonical profile field key.
type Key string

// Canonical keys. ThcCbd and Overview are not profile fields: ThcCbd is the
// combined "THC/CBD" label and Overview marks a heading without data.
const (
	None                Key = ""
	ID                  Key = "id"
	Name                Key = "name"
	Manufacturer        Key = "manufacturer"
	Genetics            Key = "genetics"
	THC                 Key = "thc"
	CBD                 Key = "cbd"
	ThcCbd              Key = "thcCbd"
	Cultivation         Key = "cultivation"
	Terpenes            Key = "terpenes"
	Effects             Key = "effects"
	AromaFlavor         Key = "aromaFlavor"
	OverallEffect       Key = "overallEffect"
	OnsetDuration       Key = "onsetDuration"
	Characteristic      Key = "characteristic"
	MedicalApplications Key = "medicalApplications"
	CommunityFeedback   Key = "communityFeedback"
	Notes               Key = "notes"
	Image               Key = "image"
	CreatedAt           Key = "createdAt"
	Overview            Key = "overview"
)

// Entry lists the synonyms of one key. Synonyms are stored normalized.
type Entry struct {
	Key      Key
	Synonyms []string
}

// entries is append-only.
var entries = []Entry{
	{ID, []string{"id"}},
	{Name, []string{"strain", "strain name", "name", "sorte", "strainname"}},
	{Manufacturer, []string{"hersteller", "breeder", "manufacturer", "produzent", "producer"}},
	{Genetics, []string{"genetik", "genetics", "kreuzung", "lineage"}},
	{THC, []string{"thc", "thc gehalt"}},
	{CBD, []string{"cbd", "cbd gehalt"}},
	{ThcCbd, []string{"thc/cbd", "thc & cbd", "thc und cbd", "cannabinoide", "cannabinoids"}},
	{Cultivation, []string{"anbau", "cultivation", "kultivierung"}},
	{Terpenes, []string{"terpenprofil", "terpene", "terpeneprofil", "terpenes", "terpene profile", "terpenprofile"}},
	{Effects, []string{"wirkungsprofil", "effects", "wirkung", "wirkungen", "effect profile"}},
	{AromaFlavor, []string{"geschmack/aroma", "aroma", "geschmack", "aroma/geschmack", "flavor", "flavour", "aroma/flavor"}},
	{OverallEffect, []string{"gesamtwirkung", "overall effect"}},
	{OnsetDuration, []string{"onset & dauer", "onset und dauer", "onset/dauer", "onset & duration", "wirkungseintritt"}},
	{Characteristic, []string{"characteristic", "charakteristik", "charakter", "characteristics"}},
	{MedicalApplications, []string{"medizinische anwendungen", "medical applications", "anwendungen", "medical uses", "indikationen"}},
	{CommunityFeedback, []string{"community feedback", "communityfeedback", "feedback", "erfahrungsberichte"}},
	{Notes, []string{"notizen", "notes", "hinweise", "anmerkungen"}},
	{Image, []string{"image", "bild", "foto"}},
	{CreatedAt, []string{"created at", "erstellt am"}},
	{Overview, []string{"steckbrief", "overview", "profil", "übersicht"}},
}

var index = buildIndex(entries)

func buildIndex(table []Entry) map[string]Key {
	idx := make(map[string]Key)
	add := func(synonym string, key Key) {
		normalized := Normalize(synonym)
		if owner, ok := idx[normalized]; ok && owner != key {
			panic(fmt.Sprintf("labels: synonym %q claimed by %s and %s", normalized, owner, key))
		}
		idx[normalized] = key
	}
	for _, e := range table {
		add(string(e.Key), e.Key)
		for _, s := range e.Synonyms {
			add(s, e.Key)
		}
	}
	return idx
}

// Table returns a copy of the synonym table.
func Table() []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{Key: e.Key, Synonyms: append([]string(nil), e.Synonyms...)}
	}
	return out
}

var lower = cases.Lower(language.German)

// Normalize lowercases a label and strips everything except letters,
// digits, '/', '&' and single spaces.
func Normalize(label string) string {
	folded := lower.String(norm.NFC.String(label))

	var b strings.Builder
	b.Grow(len(folded))
	space := false
	for _, r := range folded {
		switch {
		case unicode.IsSpace(r):
			space = b.Len() > 0
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '/', r == '&':
			if space {
				b.WriteByte(' ')
				space = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolve returns the canonical key for a label, or None.
func Resolve(label string) Key {
	return index[Normalize(label)]
}

// IsSection reports whether a key opens a multi-line section.
func (k Key) IsSection() bool {
	switch k {
	case Terpenes, Effects, MedicalApplications, CommunityFeedback, OverallEffect, AromaFlavor:
		return true
	}
	return false
}

// IsList reports whether a key names a list field of the profile.
func (k Key) IsList() bool {
	switch k {
	case Effects, AromaFlavor, MedicalApplications:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (k Key) String() string {
	return string(k)
}
