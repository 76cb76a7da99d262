package model

// MaturityLevel is the qualitative tier derived from the total score
type MaturityLevel string

const (
	MaturityInitial      MaturityLevel = "initial"      // < 4.0
	MaturityBasic        MaturityLevel = "basic"        // < 5.0
	MaturityIntermediate MaturityLevel = "intermediate" // < 6.0
	MaturityAdvanced     MaturityLevel = "advanced"     // >= 6.0
)

// Sentiment labels for comment polarity classification
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// SentimentSummary aggregates the lexical polarity pass over free-text
// comments. Advisory only; it never feeds back into numeric scores.
type SentimentSummary struct {
	Overall       string  `json:"overallSentiment"`
	Polarity      float64 `json:"polarity"` // -1..1 average
	PositiveCount int     `json:"positiveCount"`
	NegativeCount int     `json:"negativeCount"`
	NeutralCount  int     `json:"neutralCount"`
	TotalComments int     `json:"totalComments"`
}

// ChannelHighlight marks a channel as a strength or weakness
type ChannelHighlight struct {
	Channel     string  `json:"channel"` // display name
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// BenchmarkComparison compares the total score against the fixed Bologna
// reference. The benchmark is an external constant, never computed here.
type BenchmarkComparison struct {
	BenchmarkScore float64 `json:"benchmarkScore"`
	Difference     float64 `json:"difference"`
	Performance    string  `json:"performance"` // "above", "below", "equal"
}

// Insights are the qualitative labels derived from a ScoreReport
type Insights struct {
	MaturityLevel MaturityLevel       `json:"maturityLevel"`
	Strengths     []ChannelHighlight  `json:"strengths"`
	Weaknesses    []ChannelHighlight  `json:"weaknesses"`
	BestChannel   string              `json:"bestChannel"`
	WorstChannel  string              `json:"worstChannel"`
	Benchmark     BenchmarkComparison `json:"benchmark"`
	Sentiment     SentimentSummary    `json:"sentiment"`
	KeyThemes     []string            `json:"keyThemes"`
}
