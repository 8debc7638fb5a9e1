package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cloze/internal/cloze"
	"cloze/internal/trial"
)

// answerInput allows tests to override stdin for plain answer prompts.
var answerInput io.Reader

// renderPlain renders the template with numbered placeholders for the blanks.
func renderPlain(segments []cloze.Segment) string {
	var b strings.Builder
	for _, segment := range segments {
		if segment.Kind == cloze.SegmentText {
			b.WriteString(segment.Text)
			continue
		}
		b.WriteString("[" + strconv.Itoa(segment.Blank+1) + "]")
	}
	return b.String()
}

// runPlain collects answers line by line until the trial finishes.
func runPlain(tr *trial.Trial, reader *bufio.Reader, out io.Writer, mistakeMessage string) (trial.Outcome, error) {
	fmt.Fprintln(out, renderPlain(tr.Segments()))
	for {
		fields := tr.Fields()
		if len(fields) == 0 {
			fmt.Fprintf(out, "Press Enter to %s: ", tr.Button())
			if _, err := readLine(reader); err != nil && !errors.Is(err, io.EOF) {
				return trial.Outcome{}, err
			}
		}
		for _, field := range fields {
			fmt.Fprintf(out, "Blank %d: ", field.ID+1)
			line, err := readLine(reader)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					return trial.Outcome{}, err
				}
				if line == "" {
					return trial.Outcome{}, fmt.Errorf("missing input for blank %d: %w", field.ID+1, io.ErrUnexpectedEOF)
				}
			}
			if err := tr.SetValue(field.ID, line); err != nil {
				return trial.Outcome{}, err
			}
		}
		outcome, err := tr.Submit()
		if err != nil {
			return outcome, err
		}
		if outcome.Finished {
			return outcome, nil
		}
		fmt.Fprintln(out, mistakeMessage)
		if len(outcome.Incorrect) > 0 {
			fmt.Fprintf(out, "Check blanks: %s\n", joinBlankNumbers(outcome.Incorrect))
		}
		if len(outcome.Empty) > 0 {
			fmt.Fprintf(out, "Fill blanks: %s\n", joinBlankNumbers(outcome.Empty))
		}
	}
}

// joinBlankNumbers formats 0-based field ids as 1-based numbers.
func joinBlankNumbers(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id + 1)
	}
	return strings.Join(parts, ", ")
}
