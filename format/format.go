package format

import (
	"encoding"

	"github.com/viktorexe/codeanatomy/engine"
)

// Encoder renders an analysis report to an output stream.
type Encoder interface {
	encoding.TextMarshaler
	Encode(report *engine.Report) error
}
