package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		name         string
		raw          interface{}
		questionType QuestionType
		expected     Answer
		wantErr      bool
	}{
		{
			name:         "likert number",
			raw:          float64(5),
			questionType: QuestionTypeLikert,
			expected:     LikertAnswer(5),
		},
		{
			name:         "likert below range",
			raw:          float64(0),
			questionType: QuestionTypeLikert,
			wantErr:      true,
		},
		{
			name:         "likert above range",
			raw:          float64(8),
			questionType: QuestionTypeLikert,
			wantErr:      true,
		},
		{
			name:         "likert fraction",
			raw:          5.5,
			questionType: QuestionTypeLikert,
			wantErr:      true,
		},
		{
			name:         "likert string",
			raw:          "5",
			questionType: QuestionTypeLikert,
			wantErr:      true,
		},
		{
			name:         "yes label",
			raw:          "Yes",
			questionType: QuestionTypeYesNo,
			expected:     YesNoAnswer(true),
		},
		{
			name:         "no label",
			raw:          "No",
			questionType: QuestionTypeYesNo,
			expected:     YesNoAnswer(false),
		},
		{
			name:         "yes/no other label",
			raw:          "yes",
			questionType: QuestionTypeYesNo,
			wantErr:      true,
		},
		{
			name:         "yes/no number",
			raw:          float64(1),
			questionType: QuestionTypeYesNo,
			wantErr:      true,
		},
		{
			name:         "unknown question type",
			raw:          float64(5),
			questionType: QuestionType("essay"),
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, err := ParseAnswer(tt.raw, tt.questionType)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, answer)
		})
	}
}
