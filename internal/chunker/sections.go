package chunker

import (
	"strings"
	"unicode"
)

// Section is a titled span of document text.
type Section struct {
	// Title is the heading that opened the section. Empty for text
	// before the first heading or when no heading was found.
	Title string

	// Text is the section body, headings excluded.
	Text string
}

// SectionDetector splits document text into titled sections.
// It is an interface so alternative strategies (for example PDF-native
// heading metadata) can replace the textual heuristic without touching
// the chunk-packing logic.
type SectionDetector interface {
	Detect(text string) []Section
}

// Ensure HeadingDetector implements the interface.
var _ SectionDetector = (*HeadingDetector)(nil)

// HeadingDetector finds heading-like lines in a single linear pass:
// markdown-style #/##/### prefixes, or all-caps lines of length >= 7
// containing no lowercase letters.
type HeadingDetector struct{}

// NewHeadingDetector creates the default textual section detector.
func NewHeadingDetector() *HeadingDetector {
	return &HeadingDetector{}
}

// Detect splits text at heading lines. Text before the first heading
// (or the whole input when no heading is found) forms one untitled
// section. Empty input yields no sections.
func (d *HeadingDetector) Detect(text string) []Section {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var sections []Section
	var title string
	var body strings.Builder

	flush := func() {
		content := strings.TrimSpace(body.String())
		if content != "" {
			sections = append(sections, Section{Title: title, Text: content})
		}
		body.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		if heading, ok := headingTitle(line); ok {
			flush()
			title = heading
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	flush()

	return sections
}

// headingTitle reports whether line is a heading and returns its title.
func headingTitle(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}

	// Markdown-style headings: one to three leading hashes.
	if strings.HasPrefix(trimmed, "#") {
		hashes := 0
		for hashes < len(trimmed) && trimmed[hashes] == '#' {
			hashes++
		}
		if hashes <= 3 && hashes < len(trimmed) && trimmed[hashes] == ' ' {
			return strings.TrimSpace(trimmed[hashes:]), true
		}
		return "", false
	}

	// All-caps lines. Short lines and lines with any lowercase letter
	// are ordinary prose.
	if len(trimmed) < 7 {
		return "", false
	}
	hasLetter := false
	for _, r := range trimmed {
		if unicode.IsLower(r) {
			return "", false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	if !hasLetter {
		return "", false
	}
	return trimmed, true
}
