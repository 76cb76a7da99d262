package service

import (
	"strings"
	"unicode"

	"kvassess/internal/model"
)

// sentimentThreshold splits polarity into positive/negative/neutral bands
const sentimentThreshold = 0.1

// polarityLexicon scores individual words on a -1..1 scale. Deliberately
// small: comments in this domain are short and formal, and the pass is
// advisory only.
var polarityLexicon = map[string]float64{
	"excellent":     1.0,
	"outstanding":   1.0,
	"great":         0.8,
	"strong":        0.6,
	"good":          0.7,
	"effective":     0.6,
	"productive":    0.5,
	"successful":    0.75,
	"valuable":      0.6,
	"positive":      0.6,
	"helpful":       0.6,
	"innovative":    0.5,
	"supportive":    0.5,
	"promising":     0.4,
	"improved":      0.4,
	"well":          0.3,
	"better":        0.3,
	"poor":          -0.6,
	"weak":          -0.5,
	"bad":           -0.7,
	"insufficient":  -0.5,
	"lacking":       -0.5,
	"difficult":     -0.4,
	"slow":          -0.3,
	"bureaucratic":  -0.5,
	"fragmented":    -0.4,
	"unclear":       -0.4,
	"missing":       -0.4,
	"limited":       -0.3,
	"inadequate":    -0.6,
	"frustrating":   -0.7,
	"problematic":   -0.6,
	"disappointing": -0.7,
	"worse":         -0.5,
	"barrier":       -0.4,
	"obstacle":      -0.4,
}

// negators flip the polarity of the following sentiment word
var negators = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"without": true,
	"hardly":  true,
}

// intensifiers scale the polarity of the following sentiment word
var intensifiers = map[string]float64{
	"very":      1.3,
	"extremely": 1.5,
	"really":    1.2,
	"quite":     1.1,
	"somewhat":  0.7,
	"slightly":  0.5,
}

// CommentPolarity scores one comment on -1..1 using lexical polarity with
// single-token negation and intensification. Text with no lexicon hits
// scores 0.
func CommentPolarity(text string) float64 {
	words := tokenize(text)

	var sum float64
	var hits int
	negate := false
	boost := 1.0

	for _, word := range words {
		if negators[word] {
			negate = true
			continue
		}
		if factor, ok := intensifiers[word]; ok {
			boost = factor
			continue
		}

		score, ok := polarityLexicon[word]
		if ok {
			score *= boost
			if negate {
				score = -score
			}
			sum += clampPolarity(score)
			hits++
		}
		negate = false
		boost = 1.0
	}

	if hits == 0 {
		return 0
	}
	return sum / float64(hits)
}

// AnalyzeSentiment classifies a set of free-text comments and aggregates the
// per-comment polarities. The summary never feeds back into numeric scores.
func AnalyzeSentiment(comments []string) model.SentimentSummary {
	summary := model.SentimentSummary{Overall: model.SentimentNeutral}

	var sum float64
	for _, text := range comments {
		if strings.TrimSpace(text) == "" {
			continue
		}
		summary.TotalComments++

		polarity := CommentPolarity(text)
		sum += polarity

		switch {
		case polarity > sentimentThreshold:
			summary.PositiveCount++
		case polarity < -sentimentThreshold:
			summary.NegativeCount++
		default:
			summary.NeutralCount++
		}
	}

	if summary.TotalComments == 0 {
		return summary
	}

	summary.Polarity = sum / float64(summary.TotalComments)
	switch {
	case summary.Polarity > sentimentThreshold:
		summary.Overall = model.SentimentPositive
	case summary.Polarity < -sentimentThreshold:
		summary.Overall = model.SentimentNegative
	}

	return summary
}

// domainKeywords are the knowledge-valorisation themes scanned for in
// comments. Multi-word entries match as substrings of the combined text.
var domainKeywords = []string{
	"collaboration", "partnership", "innovation", "research", "technology",
	"transfer", "industry", "academia", "university", "spin-off", "startup",
	"intellectual property", "licensing", "commercialization",
	"entrepreneurship", "incubator", "accelerator", "funding", "investment",
	"skills", "training", "mobility", "exchange", "network", "ecosystem",
	"policy", "regulation", "governance", "framework", "strategy",
}

// maxKeyThemes caps the theme list returned to callers
const maxKeyThemes = 10

// ExtractKeyThemes scans comments for domain keywords and returns the themes
// found, title-cased, capped at maxKeyThemes.
func ExtractKeyThemes(comments []string) []string {
	if len(comments) == 0 {
		return nil
	}

	combined := strings.ToLower(strings.Join(comments, " "))

	var themes []string
	for _, keyword := range domainKeywords {
		if strings.Contains(combined, keyword) {
			themes = append(themes, titleCase(keyword))
			if len(themes) == maxKeyThemes {
				break
			}
		}
	}
	return themes
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '-'
	})
}

func clampPolarity(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
