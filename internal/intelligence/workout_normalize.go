package intelligence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/liftplan/internal/domain"
	"github.com/alexanderramin/liftplan/internal/llm"
)

// MalformedKind tells a payload that is not JSON apart from JSON of the
// wrong shape.
type MalformedKind string

const (
	MalformedParse  MalformedKind = "parse"
	MalformedSchema MalformedKind = "schema"
)

// MalformedGenerationError is returned when generator output cannot be used.
// Raw holds the untouched generator text.
type MalformedGenerationError struct {
	Kind MalformedKind
	Raw  string
	Err  error
}

func (e *MalformedGenerationError) Error() string {
	return fmt.Sprintf("malformed generation (%s): %v", e.Kind, e.Err)
}

func (e *MalformedGenerationError) Unwrap() error { return e.Err }

// workoutPayloadJSON mirrors the requested output schema. Exercises stays raw
// until the shape check has passed.
type workoutPayloadJSON struct {
	Name              flexString      `json:"name"`
	Description       flexString      `json:"description"`
	EstimatedDuration flexInt         `json:"estimatedDuration"`
	Exercises         json.RawMessage `json:"exercises"`
}

type exerciseJSON struct {
	Name     flexString  `json:"name"`
	Sets     flexInt     `json:"sets"`
	Reps     flexString  `json:"reps"`
	RestTime flexInt     `json:"restTime"`
	Notes    *flexString `json:"notes"`
}

// NormalizeWorkoutResponse turns raw generator text into a payload. Code
// fences and prose around the JSON object are ignored. Any failure is a
// *MalformedGenerationError; no default plan is ever substituted.
func NormalizeWorkoutResponse(raw string) (domain.GenerationPayload, error) {
	var exercises []exerciseJSON
	validate := func(p workoutPayloadJSON) error {
		list, err := decodeExercises(p.Exercises)
		if err != nil {
			return err
		}
		exercises = list
		return nil
	}

	parsed, err := llm.ExtractJSON(raw, validate)
	if err != nil {
		kind := MalformedParse
		if errors.Is(err, llm.ErrSchemaMismatch) {
			kind = MalformedSchema
		}
		return domain.GenerationPayload{}, &MalformedGenerationError{Kind: kind, Raw: raw, Err: err}
	}

	payload := domain.GenerationPayload{
		Name:             string(parsed.Name),
		Description:      string(parsed.Description),
		EstimatedMinutes: int(parsed.EstimatedDuration),
		Exercises:        make([]domain.GeneratedExerciseEntry, len(exercises)),
	}
	for i, e := range exercises {
		entry := domain.GeneratedExerciseEntry{
			Name:        string(e.Name),
			Sets:        int(e.Sets),
			Reps:        string(e.Reps),
			RestSeconds: int(e.RestTime),
		}
		if e.Notes != nil {
			notes := string(*e.Notes)
			entry.Notes = &notes
		}
		payload.Exercises[i] = entry
	}
	return payload, nil
}

func decodeExercises(raw json.RawMessage) ([]exerciseJSON, error) {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0:
		return nil, fmt.Errorf("exercises field is missing")
	case bytes.Equal(trimmed, []byte("null")):
		return nil, fmt.Errorf("exercises field is null")
	case trimmed[0] != '[':
		return nil, fmt.Errorf("exercises field must be an array")
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("exercises: %v", err)
	}
	out := make([]exerciseJSON, len(items))
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, fmt.Errorf("exercises[%d] must be an object", i)
		}
		if err := json.Unmarshal(item, &out[i]); err != nil {
			return nil, fmt.Errorf("exercises[%d]: %v", i, err)
		}
	}
	return out, nil
}

// flexInt accepts a JSON number or a numeric string. Anything else decodes
// as zero, which downstream treats as absent.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	*f = 0
	s := strings.TrimSpace(string(data))
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	if n, err := strconv.Atoi(s); err == nil {
		*f = flexInt(n)
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) &&
		v <= math.MaxInt32 && v >= math.MinInt32 {
		*f = flexInt(int(v))
	}
	return nil
}

// flexString accepts a JSON string or number. Numbers keep their literal
// form, so 12 becomes "12". Other JSON types decode as "".
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	*f = ""
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	switch c := trimmed[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return err
		}
		*f = flexString(n.String())
	}
	return nil
}
