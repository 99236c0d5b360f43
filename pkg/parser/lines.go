package parser

import (
	"strings"
	"unicode/utf8"
)

const bulletPrefix = "- "

// bulletGlyphs are rewritten to the "- " prefix at the start of a line.
const bulletGlyphs = "•∙·▪●◦"

var dashReplacer = strings.NewReplacer("\t", " ", "\u00a0", " ", "\u2014", "-", "\u2013", "-")

// normalizeLines splits text into cleaned, non-empty lines.
func normalizeLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = normalizeLine(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func normalizeLine(line string) string {
	line = strings.Join(strings.Fields(dashReplacer.Replace(line)), " ")
	if strings.Trim(line, "-*=_ "+bulletGlyphs) == "" {
		return "" // separator
	}

	first, _ := utf8.DecodeRuneInString(line)
	switch {
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		return bulletPrefix + strings.TrimSpace(line[2:])
	case strings.ContainsRune(bulletGlyphs, first):
		return bulletPrefix + strings.TrimSpace(strings.TrimLeft(line, bulletGlyphs))
	}
	return line
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, bulletPrefix)
}

func stripBullet(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, bulletPrefix))
}

func appendLine(existing, line string) string {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return existing
	case existing == "":
		return line
	default:
		return existing + "\n" + line
	}
}
