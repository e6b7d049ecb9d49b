package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadingTitle(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    string
		heading bool
	}{
		{"markdown h1", "# Introduction", "Introduction", true},
		{"markdown h2", "## Apex Triggers", "Apex Triggers", true},
		{"markdown h3", "### Limits", "Limits", true},
		{"markdown h4 not a heading", "#### Deep", "", false},
		{"hash without space", "#!shebang", "", false},
		{"all caps", "GOVERNOR LIMITS", "GOVERNOR LIMITS", true},
		{"all caps with digits", "CHAPTER 12 OVERVIEW", "CHAPTER 12 OVERVIEW", true},
		{"too short caps", "LIMITS", "", false},
		{"mixed case", "Governor Limits", "", false},
		{"digits only", "123456789", "", false},
		{"blank", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := headingTitle(tt.line)
			assert.Equal(t, tt.heading, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeadingDetector_Detect(t *testing.T) {
	d := NewHeadingDetector()

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, d.Detect(""))
	})

	t.Run("no headings yields one untitled section", func(t *testing.T) {
		sections := d.Detect("just some prose\nacross two lines")
		require.Len(t, sections, 1)
		assert.Equal(t, "", sections[0].Title)
		assert.Equal(t, "just some prose\nacross two lines", sections[0].Text)
	})

	t.Run("text before first heading is untitled", func(t *testing.T) {
		sections := d.Detect("preamble\n# First\nbody one\n# Second\nbody two")
		require.Len(t, sections, 3)
		assert.Equal(t, "", sections[0].Title)
		assert.Equal(t, "preamble", sections[0].Text)
		assert.Equal(t, "First", sections[1].Title)
		assert.Equal(t, "body one", sections[1].Text)
		assert.Equal(t, "Second", sections[2].Title)
		assert.Equal(t, "body two", sections[2].Text)
	})

	t.Run("all caps heading starts a section", func(t *testing.T) {
		sections := d.Detect("INTRODUCTION TO APEX\nsome body text")
		require.Len(t, sections, 1)
		assert.Equal(t, "INTRODUCTION TO APEX", sections[0].Title)
		assert.Equal(t, "some body text", sections[0].Text)
	})

	t.Run("consecutive headings keep the last title", func(t *testing.T) {
		sections := d.Detect("# Skipped\n# Kept\nbody")
		require.Len(t, sections, 1)
		assert.Equal(t, "Kept", sections[0].Title)
	})
}
