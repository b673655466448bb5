package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/CCZU-OSSA/cczukit/internal/model"
)

// unexpectedFormat is the message used when no candidate shape matches.
const unexpectedFormat = "unexpected training plan response format"

// errShapeMismatch tells Decode to try the next candidate.
var errShapeMismatch = errors.New("payload does not match candidate shape")

// candidate decodes one response shape. It returns errShapeMismatch when
// the payload is not of its shape, and any other error to stop decoding.
type candidate func(raw []byte) ([]model.RawTrainingPlanItem, error)

// candidates are tried in order; the first non-mismatch result wins.
var candidates = []candidate{
	decodeErrorEnvelope,
	decodeStrictEnvelope,
	decodeLooseEnvelope,
	decodeBareArray,
}

// Decode extracts the curriculum rows from a raw response body.
// Server-side errors and unrecognized payloads are reported as
// *model.UnknownFormatError.
func Decode(raw []byte) ([]model.RawTrainingPlanItem, error) {
	for _, c := range candidates {
		items, err := c(raw)
		if errors.Is(err, errShapeMismatch) {
			continue
		}
		return items, err
	}
	return nil, &model.UnknownFormatError{Message: unexpectedFormat}
}

// decodeErrorEnvelope matches {"status": <int>, "message": "<text>"}.
// A non-zero status is a server-reported error; a zero status falls
// through to the other shapes.
func decodeErrorEnvelope(raw []byte) ([]model.RawTrainingPlanItem, error) {
	var env struct {
		Status  *int    `json:"status"`
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || env.Status == nil || env.Message == nil {
		return nil, errShapeMismatch
	}
	if *env.Status != 0 {
		return nil, &model.UnknownFormatError{Message: *env.Message}
	}
	return nil, errShapeMismatch
}

// strictItem requires every mandatory key to be present with the right type.
type strictItem struct {
	Semester           *int     `json:"xq"`
	CourseCode         *string  `json:"kcdm"`
	CourseName         *string  `json:"kcmc"`
	ClassificationCode *string  `json:"lbdh"`
	Credits            *float64 `json:"xf"`
	ClassificationName *string  `json:"lbmc"`
	Year               *int     `json:"nj"`
	MajorCode          *string  `json:"zydm"`
	StudyLength        *string  `json:"xz"`
	StudentID          *string  `json:"xh"`
	Score              *float64 `json:"kscj"`
	Category           *string  `json:"lb"`
	MajorName          *string  `json:"zymc"`
}

func (s strictItem) complete() bool {
	return s.Semester != nil && s.CourseCode != nil && s.CourseName != nil &&
		s.ClassificationCode != nil && s.Credits != nil && s.ClassificationName != nil
}

func (s strictItem) item() model.RawTrainingPlanItem {
	return model.RawTrainingPlanItem{
		Semester:           *s.Semester,
		CourseCode:         *s.CourseCode,
		CourseName:         *s.CourseName,
		ClassificationCode: *s.ClassificationCode,
		ClassificationName: *s.ClassificationName,
		Credits:            *s.Credits,
		Year:               s.Year,
		MajorCode:          deref(s.MajorCode),
		StudyLength:        deref(s.StudyLength),
		StudentID:          deref(s.StudentID),
		Score:              s.Score,
		Category:           deref(s.Category),
		MajorName:          deref(s.MajorName),
	}
}

// decodeStrictEnvelope matches {"status": <int>, "message": [<item>...]}
// where every item is fully and correctly typed.
func decodeStrictEnvelope(raw []byte) ([]model.RawTrainingPlanItem, error) {
	var env struct {
		Status  *int          `json:"status"`
		Message *[]strictItem `json:"message"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || env.Status == nil || env.Message == nil {
		return nil, errShapeMismatch
	}
	items := make([]model.RawTrainingPlanItem, 0, len(*env.Message))
	for _, s := range *env.Message {
		if !s.complete() {
			return nil, errShapeMismatch
		}
		items = append(items, s.item())
	}
	return items, nil
}

// decodeLooseEnvelope matches any object whose "message" is an array.
// Numbers may arrive as strings and missing keys default to zero values.
func decodeLooseEnvelope(raw []byte) ([]model.RawTrainingPlanItem, error) {
	v, err := decodeAny(raw)
	if err != nil {
		return nil, errShapeMismatch
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errShapeMismatch
	}

	status, _ := looseInt(obj["status"])
	if msg, isText := obj["message"].(string); isText && status != 0 {
		return nil, &model.UnknownFormatError{Message: msg}
	}

	rows, ok := obj["message"].([]any)
	if !ok {
		return nil, errShapeMismatch
	}
	return looseItems(rows), nil
}

// decodeBareArray matches a top-level array of loosely typed records.
func decodeBareArray(raw []byte) ([]model.RawTrainingPlanItem, error) {
	v, err := decodeAny(raw)
	if err != nil {
		return nil, errShapeMismatch
	}
	rows, ok := v.([]any)
	if !ok {
		return nil, errShapeMismatch
	}
	return looseItems(rows), nil
}

func decodeAny(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// looseItems converts every object in rows; other elements are skipped.
func looseItems(rows []any) []model.RawTrainingPlanItem {
	items := make([]model.RawTrainingPlanItem, 0, len(rows))
	for _, row := range rows {
		e, ok := row.(map[string]any)
		if !ok {
			continue
		}
		semester, _ := looseInt(e["xq"])
		credits, _ := looseFloat(e["xf"])
		category := looseString(e["lb"])

		item := model.RawTrainingPlanItem{
			Semester:           semester,
			CourseCode:         looseString(e["kcdm"]),
			CourseName:         looseString(e["kcmc"]),
			ClassificationCode: firstNonEmpty(looseString(e["lbdh"]), category),
			ClassificationName: firstNonEmpty(looseString(e["lbmc"]), category),
			Credits:            credits,
			MajorCode:          looseString(e["zydm"]),
			StudyLength:        looseString(e["xz"]),
			StudentID:          looseString(e["xh"]),
			Category:           category,
			MajorName:          looseString(e["zymc"]),
		}
		if year, ok := looseInt(e["nj"]); ok {
			item.Year = &year
		}
		if score, ok := looseFloat(e["kscj"]); ok {
			item.Score = &score
		}
		items = append(items, item)
	}
	return items
}

// looseInt accepts an integral number or a numeric string.
func looseInt(v any) (int, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n), true
		}
		if f, err := t.Float64(); err == nil && f == math.Trunc(f) {
			return int(f), true
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// looseFloat accepts a number or a numeric string.
func looseFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f, true
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// looseString accepts a string or renders a number.
func looseString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
