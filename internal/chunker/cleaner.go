package chunker

import (
	"regexp"
	"strings"
)

// Patterns removed line-by-line before chunking. PDF extraction leaves
// page numbers and repeated header/footer furniture that would pollute
// substring matching.
var (
	pageNumberLine = regexp.MustCompile(`^\s*\d{1,4}\s*$`)

	headerFooterLines = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*page \d+( of \d+)?\s*$`),
		regexp.MustCompile(`(?i)^\s*copyright\b.*$`),
		regexp.MustCompile(`(?i)^\s*all rights reserved\.?\s*$`),
		regexp.MustCompile(`(?i)^\s*confidential( and proprietary)?\.?\s*$`),
		regexp.MustCompile(`(?i)^\s*last updated:?\s.*$`),
	}

	hyphenBreak   = regexp.MustCompile(`(\p{L})-\n[ \t]*(\p{L})`)
	spaceRuns     = regexp.MustCompile(`[ \t]{2,}`)
	tripleNewline = regexp.MustCompile(`\n{3,}`)
)

// Clean applies the deterministic pre-chunking pass to raw extracted
// text: line endings are normalised, words hyphenated across line
// breaks are rejoined, isolated page numbers and repeating
// header/footer lines are stripped, runs of spaces and tabs collapse
// to one space and runs of blank lines collapse to one blank line.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	// Normalise line endings first so the line filters see plain \n.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	// Rejoin words split across line breaks before line filtering,
	// otherwise the second half of a word can look like a short line.
	text = hyphenBreak.ReplaceAllString(text, "$1$2")

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if pageNumberLine.MatchString(line) {
			continue
		}
		if isHeaderFooter(line) {
			continue
		}
		kept = append(kept, line)
	}
	text = strings.Join(kept, "\n")

	text = spaceRuns.ReplaceAllString(text, " ")
	text = tripleNewline.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

func isHeaderFooter(line string) bool {
	for _, re := range headerFooterLines {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
