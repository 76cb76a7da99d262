package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvassess/internal/model"
)

func TestNormalize(t *testing.T) {
	s := NewScoringService()

	tests := []struct {
		name         string
		answer       *model.Answer
		questionType model.QuestionType
		expected     float64
	}{
		{
			name:         "nil answer is neutral",
			answer:       nil,
			questionType: model.QuestionTypeLikert,
			expected:     4.0,
		},
		{
			name:         "likert value passes through",
			answer:       ptr(model.LikertAnswer(6)),
			questionType: model.QuestionTypeLikert,
			expected:     6.0,
		},
		{
			name:         "likert minimum",
			answer:       ptr(model.LikertAnswer(1)),
			questionType: model.QuestionTypeLikert,
			expected:     1.0,
		},
		{
			name:         "likert out of range is neutral",
			answer:       ptr(model.LikertAnswer(9)),
			questionType: model.QuestionTypeLikert,
			expected:     4.0,
		},
		{
			name:         "yes maps to scale maximum",
			answer:       ptr(model.YesNoAnswer(true)),
			questionType: model.QuestionTypeYesNo,
			expected:     7.0,
		},
		{
			name:         "no maps to scale minimum",
			answer:       ptr(model.YesNoAnswer(false)),
			questionType: model.QuestionTypeYesNo,
			expected:     1.0,
		},
		{
			name:         "kind mismatch is neutral",
			answer:       ptr(model.YesNoAnswer(true)),
			questionType: model.QuestionTypeLikert,
			expected:     4.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.Normalize(tt.answer, tt.questionType))
		})
	}
}

func TestFactorScore(t *testing.T) {
	s := NewScoringService()
	questions := []model.Question{
		{ID: "q_0", Type: model.QuestionTypeLikert},
		{ID: "q_1", Type: model.QuestionTypeYesNo},
		{ID: "q_2", Type: model.QuestionTypeLikert},
	}

	t.Run("no answers yields neutral", func(t *testing.T) {
		assert.Equal(t, 4.0, s.FactorScore(questions, map[string]model.Answer{}))
	})

	t.Run("unanswered questions are excluded from the mean", func(t *testing.T) {
		responses := map[string]model.Answer{
			"q_0": model.LikertAnswer(6),
			"q_1": model.YesNoAnswer(false),
		}
		// (6 + 1) / 2, q_2 not answered
		assert.InDelta(t, 3.5, s.FactorScore(questions, responses), 1e-9)
	})
}

func TestChannelScoreUnweighted(t *testing.T) {
	s := NewScoringService()
	group := &ChannelGroup{
		Name: "Joint research",
		Factors: map[string][]model.Question{
			model.FactorEnvironmental: {
				{ID: "q_0", Type: model.QuestionTypeLikert},
				{ID: "q_1", Type: model.QuestionTypeLikert},
				{ID: "q_2", Type: model.QuestionTypeLikert},
			},
			model.FactorOrganizational: {
				{ID: "q_3", Type: model.QuestionTypeLikert},
			},
		},
	}

	responses := map[string]model.Answer{
		"q_0": model.LikertAnswer(7),
		"q_1": model.LikertAnswer(7),
		"q_2": model.LikertAnswer(7),
		"q_3": model.LikertAnswer(1),
	}

	factors, average := s.ChannelScore(group, responses)
	assert.Equal(t, 7.0, factors[model.FactorEnvironmental])
	assert.Equal(t, 1.0, factors[model.FactorOrganizational])
	// Mean of factor scores, not of the 4 answers (which would be 5.5)
	assert.InDelta(t, 4.0, average, 1e-9)
}

func TestCalculateAllScores(t *testing.T) {
	s := NewScoringService()
	questions := newQuestionServiceFromList(fallbackQuestions())

	responses := map[string]model.Answer{
		"q_0": model.LikertAnswer(6),
		"q_1": model.YesNoAnswer(true),
		"q_2": model.LikertAnswer(5),
		"q_3": model.YesNoAnswer(false),
		"q_4": model.LikertAnswer(3),
		"q_5": model.YesNoAnswer(true),
	}

	report := s.CalculateAllScores(questions, responses)
	require.Len(t, report.Channels, 1)

	// env (6+7)/2, org (5+1)/2, ind (3+7)/2
	channel := report.Channels[fallbackChannel]
	assert.InDelta(t, 6.5, channel.Factors[model.FactorEnvironmental], 1e-9)
	assert.InDelta(t, 3.0, channel.Factors[model.FactorOrganizational], 1e-9)
	assert.InDelta(t, 5.0, channel.Factors[model.FactorIndividual], 1e-9)
	assert.InDelta(t, 14.5/3, channel.Score, 1e-9)
	assert.InDelta(t, 14.5/3, report.TotalScore, 1e-9)

	assert.InDelta(t, 6.5, report.FactorsSummary[model.FactorEnvironmental], 1e-9)
	assert.Equal(t, 6, report.ResponseCount)
	assert.Equal(t, 6, report.TotalQuestions)
	assert.InDelta(t, 1.0, report.CompletionRate, 1e-9)
}

func TestCalculateAllScoresPartial(t *testing.T) {
	s := NewScoringService()
	questions := newQuestionServiceFromList(fallbackQuestions())

	responses := map[string]model.Answer{
		"q_0": model.LikertAnswer(6),
	}

	report := s.CalculateAllScores(questions, responses)
	channel := report.Channels[fallbackChannel]

	// Only env has an answer; org and ind fall back to neutral
	assert.InDelta(t, 6.0, channel.Factors[model.FactorEnvironmental], 1e-9)
	assert.InDelta(t, 4.0, channel.Factors[model.FactorOrganizational], 1e-9)
	assert.InDelta(t, 4.0, channel.Factors[model.FactorIndividual], 1e-9)
	assert.InDelta(t, 14.0/3, report.TotalScore, 1e-9)
	assert.InDelta(t, 1.0/6, report.CompletionRate, 1e-9)
}

func TestCalculateAllScoresEmpty(t *testing.T) {
	s := NewScoringService()
	questions := newQuestionServiceFromList(nil)

	report := s.CalculateAllScores(questions, map[string]model.Answer{})
	assert.Equal(t, 4.0, report.TotalScore)
	assert.Equal(t, 0, report.ResponseCount)
	assert.Equal(t, 0, report.TotalQuestions)
	assert.Equal(t, 0.0, report.CompletionRate)
	// Fixed factors always present in the summary
	for _, factor := range model.Factors {
		assert.Equal(t, 4.0, report.FactorsSummary[factor])
	}
}

func TestCalculateAllScoresIsDeterministic(t *testing.T) {
	s := NewScoringService()
	questions := newQuestionServiceFromList(fallbackQuestions())
	responses := map[string]model.Answer{
		"q_0": model.LikertAnswer(2),
		"q_3": model.YesNoAnswer(true),
	}

	first := s.CalculateAllScores(questions, responses)
	second := s.CalculateAllScores(questions, responses)
	assert.Equal(t, first, second)
}

func ptr(a model.Answer) *model.Answer {
	return &a
}
