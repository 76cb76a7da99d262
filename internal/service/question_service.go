package service

import (
	"strings"

	"kvassess/internal/model"
)

// factorNames maps factor codes to display names. Codes outside the table
// display as-is.
var factorNames = map[string]string{
	model.FactorEnvironmental:  "Environmental",
	model.FactorOrganizational: "Organizational",
	model.FactorIndividual:     "Individual",
}

// ChannelGroup holds one channel's questions grouped by factor
type ChannelGroup struct {
	Name    string                      // display name, ordinal prefix stripped
	Factors map[string][]model.Question // factor code -> questions
}

// QuestionService loads the question source once at startup and organizes the
// flat list into the channel -> factor -> questions hierarchy. Questions are
// immutable after construction.
type QuestionService struct {
	questions    []model.Question // flat, source order
	channels     map[string]*ChannelGroup
	channelOrder []string // raw channel labels in first-appearance order
	byID         map[string]model.Question
}

// NewQuestionService loads questions from the given source path. A missing or
// unparsable source degrades to the embedded fallback list; construction
// never fails.
func NewQuestionService(path string) *QuestionService {
	s := &QuestionService{
		channels: make(map[string]*ChannelGroup),
		byID:     make(map[string]model.Question),
	}
	s.organize(loadQuestions(path))
	return s
}

// newQuestionServiceFromList builds the service from an in-memory list.
// Used by the seeder and by tests.
func newQuestionServiceFromList(questions []model.Question) *QuestionService {
	s := &QuestionService{
		channels: make(map[string]*ChannelGroup),
		byID:     make(map[string]model.Question),
	}
	s.organize(questions)
	return s
}

// organize groups questions by channel and factor. A question lacking either
// label is left out of the hierarchy but stays in the flat list.
func (s *QuestionService) organize(questions []model.Question) {
	s.questions = questions

	for _, q := range questions {
		if q.Channel == "" || q.Factor == "" {
			continue
		}

		group, ok := s.channels[q.Channel]
		if !ok {
			group = &ChannelGroup{
				Name:    cleanChannelName(q.Channel),
				Factors: make(map[string][]model.Question),
			}
			s.channels[q.Channel] = group
			s.channelOrder = append(s.channelOrder, q.Channel)
		}

		group.Factors[q.Factor] = append(group.Factors[q.Factor], q)
		s.byID[q.ID] = q
	}
}

// Channels returns the raw channel labels in first-appearance order
func (s *QuestionService) Channels() []string {
	out := make([]string, len(s.channelOrder))
	copy(out, s.channelOrder)
	return out
}

// Channel returns the group for a raw channel label, or nil if the channel
// has no organized questions
func (s *QuestionService) Channel(channel string) *ChannelGroup {
	return s.channels[channel]
}

// Summary returns the question count per channel and factor
func (s *QuestionService) Summary() map[string]map[string]int {
	summary := make(map[string]map[string]int, len(s.channels))
	for channel, group := range s.channels {
		counts := make(map[string]int, len(group.Factors))
		for factor, questions := range group.Factors {
			counts[factor] = len(questions)
		}
		summary[channel] = counts
	}
	return summary
}

// AllQuestions returns the organized questions flattened in channel, then
// factor, then source order
func (s *QuestionService) AllQuestions() []model.Question {
	var all []model.Question
	for _, channel := range s.channelOrder {
		group := s.channels[channel]
		for _, factor := range model.Factors {
			all = append(all, group.Factors[factor]...)
		}
		// Factors outside the fixed set still belong to the channel
		for factor, questions := range group.Factors {
			if !isKnownFactor(factor) {
				all = append(all, questions...)
			}
		}
	}
	return all
}

// QuestionByID looks up an organized question by its identifier
func (s *QuestionService) QuestionByID(id string) (model.Question, bool) {
	q, ok := s.byID[id]
	return q, ok
}

// TotalQuestions is the number of organized questions
func (s *QuestionService) TotalQuestions() int {
	return len(s.byID)
}

// FactorName converts a factor code to its display name
func FactorName(factor string) string {
	if name, ok := factorNames[factor]; ok {
		return name
	}
	return factor
}

func isKnownFactor(factor string) bool {
	_, ok := factorNames[factor]
	return ok
}

// cleanChannelName strips the leading "n.<number> " ordinal prefix used in
// the source workbook, e.g. "n.1 Academia-Industry joint research" ->
// "Academia-Industry joint research".
func cleanChannelName(channel string) string {
	channel = strings.TrimSpace(channel)
	if strings.HasPrefix(channel, "n.") {
		parts := strings.SplitN(channel, " ", 2)
		if len(parts) > 1 {
			return strings.TrimSpace(parts[1])
		}
	}
	return channel
}
