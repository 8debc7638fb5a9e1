package cloze

// Marker delimits a blank inside a template.
const Marker = "%"

// Separator splits the accepted alternatives declared inside a blank.
const Separator = "/"

// SegmentKind distinguishes literal text from blank slots.
type SegmentKind int

const (
	// SegmentText is rendered verbatim.
	SegmentText SegmentKind = iota
	// SegmentBlank is rendered as a single text input.
	SegmentBlank
)

// String returns a short label for the segment kind.
func (kind SegmentKind) String() string {
	switch kind {
	case SegmentText:
		return "text"
	case SegmentBlank:
		return "blank"
	default:
		return "unknown"
	}
}

// Segment is one piece of a parsed template.
type Segment struct {
	Kind SegmentKind
	// Text holds the literal text, or the raw content between the markers of a blank.
	Text string
	// Blank is the 0-based position of a blank slot and -1 for literal text.
	Blank int
}

// Template is a parsed cloze text.
type Template struct {
	Raw           string
	CaseSensitive bool
	// Segments alternate text and blank, starting and ending with text.
	Segments []Segment
	// Solutions holds the accepted answers for each blank, index aligned with blanks.
	Solutions [][]string
}
