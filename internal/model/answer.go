package model

import "fmt"

// AnswerKind discriminates the tagged answer variant
type AnswerKind string

const (
	AnswerKindLikert AnswerKind = "likert"
	AnswerKindYesNo  AnswerKind = "yesno"
)

// Answer is a typed response to a single question. The kind is fixed when the
// raw input is parsed against the question's type, so nothing downstream ever
// compares loosely-typed values.
type Answer struct {
	Kind   AnswerKind `json:"kind" bson:"kind"`
	Likert int        `json:"likert,omitempty" bson:"likert,omitempty"` // 1..7
	YesNo  bool       `json:"yesNo,omitempty" bson:"yesNo,omitempty"`
}

// LikertAnswer builds a likert answer
func LikertAnswer(value int) Answer {
	return Answer{Kind: AnswerKindLikert, Likert: value}
}

// YesNoAnswer builds a yes/no answer
func YesNoAnswer(yes bool) Answer {
	return Answer{Kind: AnswerKindYesNo, YesNo: yes}
}

// ParseAnswer converts a raw decoded JSON value into a typed Answer for the
// given question type. Likert accepts a number 1..7; yesno accepts the "Yes"
// or "No" option labels.
func ParseAnswer(raw interface{}, questionType QuestionType) (Answer, error) {
	switch questionType {
	case QuestionTypeLikert:
		num, ok := raw.(float64) // encoding/json decodes numbers as float64
		if !ok {
			return Answer{}, fmt.Errorf("likert answer must be a number, got %T", raw)
		}
		value := int(num)
		if float64(value) != num || value < 1 || value > 7 {
			return Answer{}, fmt.Errorf("likert answer must be an integer in 1..7, got %v", raw)
		}
		return LikertAnswer(value), nil
	case QuestionTypeYesNo:
		label, ok := raw.(string)
		if !ok {
			return Answer{}, fmt.Errorf("yes/no answer must be a string, got %T", raw)
		}
		switch label {
		case "Yes":
			return YesNoAnswer(true), nil
		case "No":
			return YesNoAnswer(false), nil
		default:
			return Answer{}, fmt.Errorf("yes/no answer must be %q or %q, got %q", "Yes", "No", label)
		}
	default:
		return Answer{}, fmt.Errorf("unknown question type %q", questionType)
	}
}
