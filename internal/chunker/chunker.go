package chunker

import (
	"regexp"
	"strings"
)

// DefaultMaxChunkSize is the default passage size bound in characters.
const DefaultMaxChunkSize = 1500

// DefaultOverlapSize is the default cross-chunk overlap in characters.
// The overlap budget includes the continuation marker, so a passage
// never exceeds maxChunkSize+overlapSize.
const DefaultOverlapSize = 180

// MinSectionLength is the minimum section (and chunk) content length.
// Shorter fragments carry too little context to be useful hits.
const MinSectionLength = 50

// ContinuationMarker separates an injected overlap prefix from the
// passage body, so readers can see where the previous chunk ended.
const ContinuationMarker = "[...] "

var paragraphSplit = regexp.MustCompile(`\n[ \t]*\n`)

// Passage is one chunk-content candidate produced by the chunker.
type Passage struct {
	// Content is the passage text, overlap prefix included.
	Content string

	// SectionTitle is inherited from the originating section.
	SectionTitle string

	// Index is the sequential position across the whole document.
	Index int
}

// Chunker splits cleaned document text into bounded passages.
type Chunker struct {
	maxChunkSize int
	overlapSize  int
	detector     SectionDetector
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxChunkSize sets the passage size bound in characters.
func WithMaxChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.maxChunkSize = size
		}
	}
}

// WithOverlapSize sets the overlap between passages in characters.
func WithOverlapSize(size int) Option {
	return func(c *Chunker) {
		if size >= 0 {
			c.overlapSize = size
		}
	}
}

// WithSectionDetector replaces the default heading heuristic.
func WithSectionDetector(d SectionDetector) Option {
	return func(c *Chunker) {
		if d != nil {
			c.detector = d
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		maxChunkSize: DefaultMaxChunkSize,
		overlapSize:  DefaultOverlapSize,
		detector:     NewHeadingDetector(),
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlapSize >= c.maxChunkSize {
		c.overlapSize = c.maxChunkSize / 4
	}

	return c
}

// Chunk splits cleaned text into an ordered sequence of passages.
// Sections shorter than MinSectionLength are dropped; everything else
// is emitted, recursively split by paragraph, sentence and finally
// word boundary so no content is lost to the size bound. Every
// passage after the first within a section carries an overlap prefix
// drawn from the tail of its predecessor.
func (c *Chunker) Chunk(text string) []Passage {
	sections := c.detector.Detect(text)

	var passages []Passage
	index := 0

	for _, section := range sections {
		if len(section.Text) < MinSectionLength {
			continue
		}

		bodies := c.splitSection(section.Text)
		for i, body := range bodies {
			content := body
			if i > 0 && c.overlapSize > 0 {
				content = c.overlapPrefix(bodies[i-1]) + body
			}
			passages = append(passages, Passage{
				Content:      content,
				SectionTitle: section.Title,
				Index:        index,
			})
			index++
		}
	}

	return passages
}

// splitSection returns the passage bodies for one section, each within
// the size bound.
func (c *Chunker) splitSection(text string) []string {
	if len(text) <= c.maxChunkSize {
		return []string{text}
	}

	paragraphs := paragraphSplit.Split(text, -1)
	return c.pack(paragraphs, "\n\n", c.splitParagraph)
}

// splitParagraph handles a single paragraph longer than the bound by
// packing sentences, falling back to word splitting for a single
// oversized sentence.
func (c *Chunker) splitParagraph(text string) []string {
	return c.pack(splitSentences(text), " ", func(sentence string) []string {
		return c.pack(strings.Fields(sentence), " ", nil)
	})
}

// pack greedily joins parts into buffers no longer than maxChunkSize.
// A single part over the bound is handed to split for finer division;
// a nil split emits the oversized part as-is (last resort).
func (c *Chunker) pack(parts []string, sep string, split func(string) []string) []string {
	var out []string
	var buf strings.Builder

	flush := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			out = append(out, s)
		}
		buf.Reset()
	}

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if len(part) > c.maxChunkSize {
			flush()
			if split != nil {
				out = append(out, split(part)...)
			} else {
				out = append(out, part)
			}
			continue
		}

		extra := len(part)
		if buf.Len() > 0 {
			extra += len(sep)
		}
		if buf.Len()+extra > c.maxChunkSize {
			flush()
		}
		if buf.Len() > 0 {
			buf.WriteString(sep)
		}
		buf.WriteString(part)
	}
	flush()

	return out
}

// overlapPrefix returns the trailing overlap of the previous body,
// truncated forward to a word boundary and terminated by the
// continuation marker. The marker counts against the overlap budget.
func (c *Chunker) overlapPrefix(prev string) string {
	budget := c.overlapSize - len(ContinuationMarker)
	if budget <= 0 {
		return ContinuationMarker
	}

	if len(prev) > budget {
		tail := prev[len(prev)-budget:]
		// Never start mid-word: drop the leading fragment up to the
		// first space.
		if cut := strings.IndexByte(tail, ' '); cut >= 0 && prev[len(prev)-budget-1] != ' ' {
			tail = tail[cut+1:]
		}
		prev = tail
	}

	return prev + ContinuationMarker
}

// splitSentences splits text at terminal punctuation.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
