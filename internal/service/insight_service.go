package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"kvassess/internal/config"
	"kvassess/internal/model"
)

// bolognaBenchmark is the fixed external reference score (Bologna case study)
const bolognaBenchmark = 5.76

// InsightService derives qualitative insights from a score report and
// produces narrative summaries. Narratives use the external text-generation
// API when a credential is configured; any external failure falls back to the
// deterministic template, silently to the caller. The capability check
// happens per call, so a transient failure never disables the API for
// subsequent requests.
type InsightService struct {
	config *config.AIConfig
	client *http.Client
}

// NewInsightService creates an insight service with the default AI config
func NewInsightService() *InsightService {
	return NewInsightServiceWithConfig(config.DefaultAIConfig())
}

// NewInsightServiceWithConfig creates an insight service with an explicit AI
// config. Used by tests to point at a fake endpoint.
func NewInsightServiceWithConfig(cfg *config.AIConfig) *InsightService {
	return &InsightService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// MaturityLevel buckets the total score into the four tiers
func MaturityLevel(totalScore float64) model.MaturityLevel {
	switch {
	case totalScore < 4.0:
		return model.MaturityInitial
	case totalScore < 5.0:
		return model.MaturityBasic
	case totalScore < 6.0:
		return model.MaturityIntermediate
	default:
		return model.MaturityAdvanced
	}
}

// DeriveInsights computes the qualitative labels for a score report:
// maturity tier, strengths (> 6.0) and weaknesses (< 5.0), best/worst
// channel, benchmark comparison, and the advisory sentiment pass over
// comments.
func (s *InsightService) DeriveInsights(report *model.ScoreReport, comments map[string]string) *model.Insights {
	insights := &model.Insights{
		MaturityLevel: MaturityLevel(report.TotalScore),
		Strengths:     []model.ChannelHighlight{},
		Weaknesses:    []model.ChannelHighlight{},
	}

	best, worst := "", ""
	bestScore, worstScore := -1.0, 8.0

	for _, channel := range sortedChannelLabels(report) {
		data := report.Channels[channel]

		if data.Score > 6.0 {
			insights.Strengths = append(insights.Strengths, model.ChannelHighlight{
				Channel:     data.Name,
				Score:       data.Score,
				Description: fmt.Sprintf("Excellent performance in %s", data.Name),
			})
		}
		if data.Score < 5.0 {
			insights.Weaknesses = append(insights.Weaknesses, model.ChannelHighlight{
				Channel:     data.Name,
				Score:       data.Score,
				Description: fmt.Sprintf("Improvement area in %s", data.Name),
			})
		}

		if data.Score > bestScore {
			bestScore, best = data.Score, data.Name
		}
		if data.Score < worstScore {
			worstScore, worst = data.Score, data.Name
		}
	}

	insights.BestChannel = best
	insights.WorstChannel = worst

	diff := report.TotalScore - bolognaBenchmark
	performance := "equal"
	if diff > 0 {
		performance = "above"
	} else if diff < 0 {
		performance = "below"
	}
	insights.Benchmark = model.BenchmarkComparison{
		BenchmarkScore: bolognaBenchmark,
		Difference:     diff,
		Performance:    performance,
	}

	texts := commentTexts(comments)
	insights.Sentiment = AnalyzeSentiment(texts)
	insights.KeyThemes = ExtractKeyThemes(texts)

	return insights
}

// ChannelNarrative produces the narrative insight for one channel. The raw
// channel label addresses the report; an unknown label yields an empty
// string.
func (s *InsightService) ChannelNarrative(ctx context.Context, channel string, report *model.ScoreReport, comments map[string]string) string {
	data, ok := report.Channels[channel]
	if !ok {
		return ""
	}

	texts := commentTexts(comments)
	sentiment := AnalyzeSentiment(texts)

	if s.config.IsEnabled() {
		prompt := s.buildChannelPrompt(data, sentiment, texts)
		narrative, err := s.callGemini(ctx, s.config.Models.ChannelNarrative, prompt)
		if err == nil {
			return narrative
		}
		log.Printf("narrative generation failed for channel %q, using template: %v", channel, err)
	}

	return templateChannelNarrative(data, sentiment)
}

// ExecutiveSummary produces the whole-assessment summary narrative
func (s *InsightService) ExecutiveSummary(ctx context.Context, report *model.ScoreReport, comments map[string]string) string {
	insights := s.DeriveInsights(report, comments)

	if s.config.IsEnabled() {
		prompt := s.buildSummaryPrompt(report, insights)
		narrative, err := s.callGemini(ctx, s.config.Models.ExecutiveSummary, prompt)
		if err == nil {
			return narrative
		}
		log.Printf("executive summary generation failed, using template: %v", err)
	}

	return templateExecutiveSummary(report, insights)
}

// templateChannelNarrative fills the deterministic per-channel template.
// Purely a function of the numeric inputs.
func templateChannelNarrative(data model.ChannelScore, sentiment model.SentimentSummary) string {
	var performance string
	switch {
	case data.Score >= 6.0:
		performance = "shows excellent performance"
	case data.Score >= 5.0:
		performance = "shows good performance"
	case data.Score >= 4.0:
		performance = "shows average performance"
	default:
		performance = "shows significant room for improvement"
	}

	strongest, weakest := extremeFactors(data.Factors)

	attitude := map[string]string{
		model.SentimentPositive: "a positive attitude",
		model.SentimentNegative: "some concerns",
		model.SentimentNeutral:  "a balanced attitude",
	}[sentiment.Overall]

	return fmt.Sprintf(
		"Current situation: the %s channel %s with a score of %.2f/7. "+
			"The comments reveal %s towards this area of knowledge valorisation. "+
			"Strengths: the %s factor stands out (%.2f/7), indicating a solid base in this aspect. "+
			"Improvement areas: the %s factor presents development opportunities (%.2f/7) and would benefit from targeted interventions. "+
			"Recommendation: focus on strengthening the %s dimension while maintaining the current level on the %s side.",
		data.Name, performance, data.Score,
		attitude,
		strings.ToLower(FactorName(strongest)), data.Factors[strongest],
		strings.ToLower(FactorName(weakest)), data.Factors[weakest],
		strings.ToLower(FactorName(weakest)), strings.ToLower(FactorName(strongest)),
	)
}

// templateExecutiveSummary fills the deterministic whole-assessment template
func templateExecutiveSummary(report *model.ScoreReport, insights *model.Insights) string {
	comparison := map[string]string{
		"above": "above",
		"below": "below",
		"equal": "on par with",
	}[insights.Benchmark.Performance]

	return fmt.Sprintf(
		"Overall assessment: the organisation shows a %s maturity level in knowledge valorisation, with a total score of %.2f/7. "+
			"Main strengths: %s stands out as the area of excellence, with an overall %s attitude towards collaboration and a performance %s the Bologna benchmark (%.2f). "+
			"Improvement areas: %s requires priority attention, together with integrated strategies for continuous improvement. "+
			"Strategic recommendation: develop an action plan focused on %s while capitalising on the results achieved in %s.",
		insights.MaturityLevel, report.TotalScore,
		insights.BestChannel, insights.Sentiment.Overall, comparison, bolognaBenchmark,
		insights.WorstChannel,
		insights.WorstChannel, insights.BestChannel,
	)
}

// callGemini makes a request to the Gemini API and returns the generated
// text, trimmed.
func (s *InsightService) callGemini(ctx context.Context, modelName, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.config.ModelEndpoint(modelName), s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		text := strings.TrimSpace(geminiResp.Candidates[0].Content.Parts[0].Text)
		if text != "" {
			return text, nil
		}
	}

	return "", fmt.Errorf("empty response from Gemini")
}

// Prompt builders
func (s *InsightService) buildChannelPrompt(data model.ChannelScore, sentiment model.SentimentSummary, comments []string) string {
	commentBlock := "No open comments."
	if len(comments) > 0 {
		commentBlock = strings.Join(comments, "; ")
	}

	return fmt.Sprintf(`You are an expert in knowledge valorisation and industry-academia collaboration.

Channel: %s
Overall score: %.2f/7

Factor scores:
- Environmental: %.2f/7
- Organizational: %.2f/7
- Individual: %.2f/7

Overall sentiment: %s (polarity %.2f)
Open comments: %s

Write a professional narrative insight covering: current situation, specific strengths, identified barriers, concrete improvement opportunities, and actionable recommendations.
Length: at most %d words. Plain text, no markdown.`,
		data.Name, data.Score,
		data.Factors[model.FactorEnvironmental],
		data.Factors[model.FactorOrganizational],
		data.Factors[model.FactorIndividual],
		sentiment.Overall, sentiment.Polarity, commentBlock,
		s.config.WordBudget)
}

func (s *InsightService) buildSummaryPrompt(report *model.ScoreReport, insights *model.Insights) string {
	return fmt.Sprintf(`Write an executive summary for a knowledge valorisation self-assessment with these results:

- Total score: %.2f/7
- Maturity level: %s
- Strongest channel: %s
- Weakest channel: %s
- Overall sentiment: %s
- Performance vs Bologna benchmark (%.2f): %s

Cover: overall maturity evaluation, top strengths, top improvement areas, and concrete strategic recommendations.
Style: executive-level, strategic, actionable. Length: at most %d words. Plain text, no markdown.`,
		report.TotalScore, insights.MaturityLevel,
		insights.BestChannel, insights.WorstChannel,
		insights.Sentiment.Overall, bolognaBenchmark, insights.Benchmark.Performance,
		s.config.WordBudget)
}

// extremeFactors returns the strongest and weakest factor codes present in a
// channel. Ties resolve in fixed factor order so the output is deterministic.
func extremeFactors(factors map[string]float64) (strongest, weakest string) {
	strongest, weakest = model.FactorEnvironmental, model.FactorEnvironmental
	bestScore, worstScore := -1.0, 8.0
	for _, factor := range model.Factors {
		score, ok := factors[factor]
		if !ok {
			continue
		}
		if score > bestScore {
			bestScore, strongest = score, factor
		}
		if score < worstScore {
			worstScore, weakest = score, factor
		}
	}
	return strongest, weakest
}

func sortedChannelLabels(report *model.ScoreReport) []string {
	labels := make([]string, 0, len(report.Channels))
	for channel := range report.Channels {
		labels = append(labels, channel)
	}
	sort.Strings(labels)
	return labels
}

func commentTexts(comments map[string]string) []string {
	ids := make([]string, 0, len(comments))
	for id := range comments {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	texts := make([]string, 0, len(ids))
	for _, id := range ids {
		if text := strings.TrimSpace(comments[id]); text != "" {
			texts = append(texts, text)
		}
	}
	return texts
}
