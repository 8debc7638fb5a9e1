package cloze

import (
	"slices"
	"strings"
)

// Parse splits a template into literal and blank segments and derives the
// accepted answers of every blank. Parsing never fails: with an odd number
// of markers the content after the last marker is kept as literal text,
// marker included.
func Parse(raw string, caseSensitive bool) Template {
	parts := strings.Split(raw, Marker)
	balanced := len(parts)%2 == 1
	tmpl := Template{Raw: raw, CaseSensitive: caseSensitive}
	for i, part := range parts {
		switch {
		case i%2 == 0:
			tmpl.appendText(part)
		case !balanced && i == len(parts)-1:
			tmpl.appendText(Marker + part)
		default:
			tmpl.Segments = append(tmpl.Segments, Segment{
				Kind:  SegmentBlank,
				Text:  part,
				Blank: len(tmpl.Solutions),
			})
			tmpl.Solutions = append(tmpl.Solutions, parseSolutions(part, caseSensitive))
		}
	}
	return tmpl
}

// appendText adds literal text, merging with a preceding literal segment.
func (tmpl *Template) appendText(text string) {
	if n := len(tmpl.Segments); n > 0 && tmpl.Segments[n-1].Kind == SegmentText {
		tmpl.Segments[n-1].Text += text
		return
	}
	tmpl.Segments = append(tmpl.Segments, Segment{Kind: SegmentText, Text: text, Blank: -1})
}

// parseSolutions derives the accepted alternatives of one blank.
func parseSolutions(content string, caseSensitive bool) []string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return []string{""}
	}
	alternatives := strings.Split(trimmed, Separator)
	for i, alternative := range alternatives {
		alternatives[i] = NormalizeAnswer(alternative, caseSensitive)
	}
	return alternatives
}

// Blanks returns the number of blank slots.
func (tmpl Template) Blanks() int {
	return len(tmpl.Solutions)
}

// Normalize applies the template's case folding to a submitted answer.
func (tmpl Template) Normalize(value string) string {
	return NormalizeAnswer(value, tmpl.CaseSensitive)
}

// IsOpen reports whether a blank has no fixed answer.
func (tmpl Template) IsOpen(blank int) bool {
	if blank < 0 || blank >= len(tmpl.Solutions) {
		return false
	}
	solutions := tmpl.Solutions[blank]
	return len(solutions) == 1 && solutions[0] == ""
}

// Accepts reports whether an already normalized answer is accepted for a blank.
// Open blanks accept any answer.
func (tmpl Template) Accepts(blank int, answer string) bool {
	if blank < 0 || blank >= len(tmpl.Solutions) {
		return false
	}
	if tmpl.IsOpen(blank) {
		return true
	}
	return slices.Contains(tmpl.Solutions[blank], answer)
}
