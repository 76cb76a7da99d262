package service

import "kvassess/internal/model"

// ScoringService computes maturity scores from a session's responses.
// Every method is a pure function of its inputs; nothing is cached between
// calls, so identical (questions, responses) pairs always produce identical
// reports.
type ScoringService struct{}

// NewScoringService creates a new scoring service
func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// Normalize maps an answer to the 1-7 scale for the given question type.
// A nil answer or a kind mismatch yields the neutral midpoint. Yes/no
// answers collapse onto the scale extremes: 7.0 for yes, 1.0 for no.
func (s *ScoringService) Normalize(answer *model.Answer, questionType model.QuestionType) float64 {
	if answer == nil {
		return model.NeutralScore
	}

	switch questionType {
	case model.QuestionTypeLikert:
		if answer.Kind == model.AnswerKindLikert && answer.Likert >= 1 && answer.Likert <= 7 {
			return float64(answer.Likert)
		}
	case model.QuestionTypeYesNo:
		if answer.Kind == model.AnswerKindYesNo {
			if answer.YesNo {
				return 7.0
			}
			return 1.0
		}
	}

	return model.NeutralScore
}

// FactorScore is the mean of normalized values over the answered questions in
// one (channel, factor) group. Unanswered questions are excluded from the
// mean; a group with no answers at all scores the neutral 4.0 rather than
// being undefined. Masking non-response as neutral is a deliberate bias kept
// for compatibility with the reference methodology.
func (s *ScoringService) FactorScore(questions []model.Question, responses map[string]model.Answer) float64 {
	var sum float64
	var count int

	for _, q := range questions {
		answer, ok := responses[q.ID]
		if !ok {
			continue
		}
		sum += s.Normalize(&answer, q.Type)
		count++
	}

	if count == 0 {
		return model.NeutralScore
	}
	return sum / float64(count)
}

// ChannelScore computes all factor scores for one channel plus the channel
// average. The average is the unweighted mean across factor scores, not
// weighted by per-factor response counts.
func (s *ScoringService) ChannelScore(group *ChannelGroup, responses map[string]model.Answer) (map[string]float64, float64) {
	factors := make(map[string]float64, len(group.Factors))
	var sum float64

	for factor, questions := range group.Factors {
		score := s.FactorScore(questions, responses)
		factors[factor] = score
		sum += score
	}

	if len(factors) == 0 {
		return factors, model.NeutralScore
	}
	return factors, sum / float64(len(factors))
}

// CalculateAllScores builds the full score report for a response set:
// per-factor and per-channel scores, the per-factor summary across channels,
// the overall score (unweighted mean of channel scores) and completion stats.
func (s *ScoringService) CalculateAllScores(questions *QuestionService, responses map[string]model.Answer) *model.ScoreReport {
	report := &model.ScoreReport{
		Channels:       make(map[string]model.ChannelScore),
		FactorsSummary: make(map[string]float64),
	}

	factorTotals := make(map[string][]float64)

	var channelSum float64
	channels := questions.Channels()

	for _, channel := range channels {
		group := questions.Channel(channel)
		factors, average := s.ChannelScore(group, responses)

		report.Channels[channel] = model.ChannelScore{
			Name:    group.Name,
			Score:   average,
			Factors: factors,
		}
		channelSum += average

		for factor, score := range factors {
			factorTotals[factor] = append(factorTotals[factor], score)
		}
	}

	if len(channels) > 0 {
		report.TotalScore = channelSum / float64(len(channels))
	} else {
		report.TotalScore = model.NeutralScore
	}

	for factor, scores := range factorTotals {
		var sum float64
		for _, v := range scores {
			sum += v
		}
		report.FactorsSummary[factor] = sum / float64(len(scores))
	}
	for _, factor := range model.Factors {
		if _, ok := report.FactorsSummary[factor]; !ok {
			report.FactorsSummary[factor] = model.NeutralScore
		}
	}

	report.TotalQuestions = questions.TotalQuestions()
	report.ResponseCount = len(responses)
	if report.TotalQuestions > 0 {
		report.CompletionRate = float64(report.ResponseCount) / float64(report.TotalQuestions)
	}

	return report
}
