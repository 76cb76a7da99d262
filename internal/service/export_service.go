package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"kvassess/internal/model"
)

// SessionExport is the full JSON dump of one session
type SessionExport struct {
	SessionID string                  `json:"sessionId"`
	User      model.UserInfo          `json:"user"`
	Status    model.SessionStatus     `json:"status"`
	Scores    *model.ScoreReport      `json:"scores"`
	Responses map[string]model.Answer `json:"responses"`
	Comments  map[string]string       `json:"comments"`
	Timestamp time.Time               `json:"timestamp"`
}

// ExportService renders session results as downloadable artifacts
type ExportService struct {
	questionSvc *QuestionService
	scoringSvc  *ScoringService
}

// NewExportService creates a new export service
func NewExportService(questionSvc *QuestionService, scoringSvc *ScoringService) *ExportService {
	return &ExportService{
		questionSvc: questionSvc,
		scoringSvc:  scoringSvc,
	}
}

// ExportJSON produces the full session dump: user info, freshly computed
// scores, responses, comments and timestamp.
func (s *ExportService) ExportJSON(session *model.Session) ([]byte, error) {
	export := SessionExport{
		SessionID: session.ID,
		User:      session.User,
		Status:    session.Status,
		Scores:    s.scoringSvc.CalculateAllScores(s.questionSvc, session.Responses),
		Responses: session.Responses,
		Comments:  session.Comments,
		Timestamp: session.LastUpdated,
	}
	return json.MarshalIndent(export, "", "  ")
}

// ExportCSV produces one row per answered question: id, response value,
// comment and timestamp. Rows follow the catalog's question order.
func (s *ExportService) ExportCSV(session *model.Session) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"question_id", "response", "comment", "timestamp"}); err != nil {
		return nil, err
	}

	timestamp := session.LastUpdated.Format(time.RFC3339)
	for _, id := range answeredQuestionIDs(s.questionSvc, session) {
		answer := session.Responses[id]
		record := []string{
			id,
			renderAnswer(answer),
			session.Comments[id],
			timestamp,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// answeredQuestionIDs returns the answered question IDs in catalog order.
// Answers to questions no longer in the catalog sort after them by ID so the
// export never drops data.
func answeredQuestionIDs(questions *QuestionService, session *model.Session) []string {
	var ids []string
	seen := make(map[string]bool, len(session.Responses))

	for _, q := range questions.AllQuestions() {
		if _, ok := session.Responses[q.ID]; ok {
			ids = append(ids, q.ID)
			seen[q.ID] = true
		}
	}

	var orphans []string
	for id := range session.Responses {
		if !seen[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)

	return append(ids, orphans...)
}

func renderAnswer(answer model.Answer) string {
	switch answer.Kind {
	case model.AnswerKindLikert:
		return strconv.Itoa(answer.Likert)
	case model.AnswerKindYesNo:
		if answer.YesNo {
			return "Yes"
		}
		return "No"
	}
	return ""
}
