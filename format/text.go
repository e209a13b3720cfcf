package format

import (
	"bytes"
	"fmt"
	"io"

	"github.com/viktorexe/codeanatomy/engine"
)

// TextEncoder renders a report for the console: explanation blocks first,
// then the memory estimate, then any advisory warnings.
type TextEncoder struct {
	w      io.Writer
	report *engine.Report
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(report *engine.Report) error {
	e.report = report
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	r := e.report

	if !r.Parse.Success {
		fmt.Fprintf(&buf, "[ERROR] %s\n\n", r.Parse.Error)
	}

	for _, block := range r.Explanation.Blocks {
		fmt.Fprintf(&buf, "%s\n", block.Title)
		for range block.Title {
			buf.WriteByte('-')
		}
		fmt.Fprintf(&buf, "\n%s\n", block.Body)
		if block.CodeExcerpt != "" {
			fmt.Fprintf(&buf, "\n    %s\n", block.CodeExcerpt)
		}
		buf.WriteByte('\n')
	}

	fmt.Fprintf(&buf, "Memory Estimate\n---------------\n")
	m := r.Memory
	fmt.Fprintf(&buf, "  stack: %d / %d bytes over %d frame(s)\n", m.StackUsed, m.StackCapacity, m.ActiveFrames)
	fmt.Fprintf(&buf, "  heap:  %d / %d bytes, %d leaked block(s)\n", m.HeapUsed, m.HeapCapacity, m.LeakCount)
	if r.MemoryError != "" {
		fmt.Fprintf(&buf, "  [WARN] simulation stopped early: %s\n", r.MemoryError)
	}

	if !r.Validation.Valid {
		buf.WriteByte('\n')
		for _, msg := range r.Validation.Errors {
			fmt.Fprintf(&buf, "[WARN] %s\n", msg)
		}
	}

	return buf.Bytes(), nil
}
