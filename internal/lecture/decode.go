package lecture

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidLecture is returned when a lecture file fails validation.
var ErrInvalidLecture = errors.New("invalid lecture file")

// FileSchema is the JSON schema every lecture file must satisfy.
var FileSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question_number": map[string]any{"type": "integer", "minimum": 1},
			"question_en":     map[string]any{"type": "string", "minLength": 1},
			"question_ar":     map[string]any{"type": "string"},
			"choices": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
				"required":             []any{"A_en", "B_en", "C_en", "D_en"},
			},
			"correct_choice":         map[string]any{"enum": []any{"A", "B", "C", "D"}},
			"explanation_correct_en": map[string]any{"type": "string"},
			"explanation_correct_ar": map[string]any{"type": "string"},
			"explanation_wrong_en":   wrongSchema,
			"explanation_wrong_ar":   wrongSchema,
		},
		"required": []any{"question_number", "question_en", "choices", "correct_choice"},
	},
}

var wrongSchema = map[string]any{
	"type":                 "object",
	"propertyNames":        map[string]any{"enum": []any{"A", "B", "C", "D"}},
	"additionalProperties": map[string]any{"type": "string"},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// rawQuestion mirrors the on-disk question record.
type rawQuestion struct {
	Number               int               `json:"question_number"`
	QuestionEN           string            `json:"question_en"`
	QuestionAR           string            `json:"question_ar"`
	Choices              map[string]string `json:"choices"`
	CorrectChoice        string            `json:"correct_choice"`
	ExplanationCorrectEN string            `json:"explanation_correct_en"`
	ExplanationCorrectAR string            `json:"explanation_correct_ar"`
	ExplanationWrongEN   map[string]string `json:"explanation_wrong_en"`
	ExplanationWrongAR   map[string]string `json:"explanation_wrong_ar"`
}

// Validate checks data against FileSchema.
func Validate(data []byte) error {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("%w: invalid JSON: %w", ErrInvalidLecture, err)
	}

	schema, err := fileSchema()
	if err != nil {
		return fmt.Errorf("compile lecture schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLecture, err)
	}
	return nil
}

// Decode validates data and converts it into a Lecture with the given id.
func Decode(id int, data []byte) (Lecture, error) {
	if err := Validate(data); err != nil {
		return Lecture{}, err
	}

	var raw []rawQuestion
	if err := json.Unmarshal(data, &raw); err != nil {
		return Lecture{}, fmt.Errorf("%w: %w", ErrInvalidLecture, err)
	}

	lec := Lecture{ID: id, Questions: make([]Question, 0, len(raw))}
	seen := make(map[int]bool, len(raw))
	for _, r := range raw {
		if seen[r.Number] {
			return Lecture{}, fmt.Errorf("%w: duplicate question_number %d", ErrInvalidLecture, r.Number)
		}
		seen[r.Number] = true
		lec.Questions = append(lec.Questions, r.toQuestion())
	}
	return lec, nil
}

func (r rawQuestion) toQuestion() Question {
	q := Question{
		Number:  r.Number,
		Prompt:  Text{EN: r.QuestionEN, AR: r.QuestionAR},
		Choices: make(map[Choice]Text, len(Choices)),
		Correct: Choice(r.CorrectChoice),
		Explanation: Explanation{
			Correct: Text{EN: r.ExplanationCorrectEN, AR: r.ExplanationCorrectAR},
			Wrong:   make(map[Choice]Text),
		},
	}
	for _, c := range Choices {
		q.Choices[c] = Text{
			EN: r.Choices[string(c)+"_en"],
			AR: r.Choices[string(c)+"_ar"],
		}
	}
	for label, text := range r.ExplanationWrongEN {
		c := Choice(label)
		t := q.Explanation.Wrong[c]
		t.EN = text
		q.Explanation.Wrong[c] = t
	}
	for label, text := range r.ExplanationWrongAR {
		c := Choice(label)
		t := q.Explanation.Wrong[c]
		t.AR = text
		q.Explanation.Wrong[c] = t
	}
	return q
}

// fileSchema compiles FileSchema once.
func fileSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a parsed JSON value, so round-trip the Go map.
		b, err := json.Marshal(FileSchema)
		if err != nil {
			compileErr = err
			return
		}
		var def any
		if err := json.Unmarshal(b, &def); err != nil {
			compileErr = err
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://lecture.json"
		if err := c.AddResource(url, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(url)
	})
	return compiled, compileErr
}
