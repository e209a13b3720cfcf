package format

import (
	"encoding/json"
	"io"

	"github.com/viktorexe/codeanatomy/engine"
)

type JSONEncoder struct {
	w      io.Writer
	report *engine.Report
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(report *engine.Report) error {
	e.report = report
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.report, "", "  ")
}
