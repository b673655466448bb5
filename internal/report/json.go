package report

import (
	"encoding/json"
	"io"

	"github.com/CCZU-OSSA/cczukit/internal/model"
)

// JSONWriter renders plans, schedules, grades and exams as JSON documents.
type JSONWriter struct {
	baseWriter

	// pretty switches from compact to indented output.
	pretty      bool
	linePrefix  string
	levelIndent string

	// version, when set, wraps every payload in a JSONReport.
	version string
}

// JSONWriterOption customizes a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent indents nested values with indent and starts every line with prefix.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.pretty = true
		w.linePrefix = prefix
		w.levelIndent = indent
	}
}

// WithPrettyPrint is WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithEnvelope wraps each payload in a JSONReport carrying version.
func WithEnvelope(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter returns a JSONWriter writing to output.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	jw := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, apply := range opts {
		apply(jw)
	}
	return jw
}

// JSONReport is the envelope written when WithEnvelope is set.
type JSONReport struct {
	// Version identifies the cczukit build that produced the document.
	Version string `json:"version"`

	// Kind is one of "plan", "schedule", "grades" or "exams".
	Kind string `json:"kind"`

	// Data is the payload.
	Data any `json:"data"`
}

// WritePlan outputs the plan in JSON format.
func (w *JSONWriter) WritePlan(plan *model.TrainingPlan) (int, error) {
	return w.writeJSON("plan", plan)
}

// WriteSchedule outputs the schedule in JSON format.
func (w *JSONWriter) WriteSchedule(schedule *Schedule) (int, error) {
	return w.writeJSON("schedule", schedule)
}

// WriteGrades outputs the grades in JSON format.
func (w *JSONWriter) WriteGrades(grades *Grades) (int, error) {
	return w.writeJSON("grades", grades)
}

// WriteExams outputs the exams in JSON format.
func (w *JSONWriter) WriteExams(exams *Exams) (int, error) {
	return w.writeJSON("exams", exams)
}

// writeJSON marshals v, wrapped when an envelope is configured, and writes
// it followed by a newline.
func (w *JSONWriter) writeJSON(kind string, v any) (int, error) {
	if w.version != "" {
		v = &JSONReport{Version: w.version, Kind: kind, Data: v}
	}

	encoded, err := w.marshal(v)
	if err != nil {
		return 0, err
	}
	return w.output.Write(append(encoded, '\n'))
}

func (w *JSONWriter) marshal(v any) ([]byte, error) {
	if !w.pretty {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, w.linePrefix, w.levelIndent)
}
