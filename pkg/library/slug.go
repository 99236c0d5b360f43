package library

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/agentstation/strainmap/pkg/constants"
	"github.com/agentstation/strainmap/pkg/strains"
)

// stripMarks removes combining marks: "Grüne" becomes "Grune". The chain
// keeps state, so each caller gets its own.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Slugify derives a library id from a strain name: diacritics folded,
// lowercase ASCII letters, digits and single dashes, at most 36 bytes.
// Names without usable characters get "strain-<unix millis>".
func Slugify(name string, clock strains.Clock) string {
	folded, _, err := transform.String(stripMarks(), name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(strings.ReplaceAll(folded, "ß", "ss"))

	var b strings.Builder
	dash := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			dash = true
		}
	}

	slug := b.String()
	if len(slug) > constants.MaxSlugLength {
		slug = strings.TrimRight(slug[:constants.MaxSlugLength], "-")
	}
	if slug == "" {
		return fmt.Sprintf("strain-%d", clock().UnixMilli())
	}
	return slug
}
