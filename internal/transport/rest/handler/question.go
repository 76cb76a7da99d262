package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"kvassess/internal/model"
	"kvassess/internal/service"
)

// QuestionHandler serves the question catalog
type QuestionHandler struct {
	questionSvc *service.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionSvc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionSvc: questionSvc}
}

// channelView is the wire shape of one channel group
type channelView struct {
	Channel string                `json:"channel"` // raw label
	Name    string                `json:"name"`    // display name
	Factors map[string]factorView `json:"factors"`
}

type factorView struct {
	Name      string           `json:"name"`
	Questions []model.Question `json:"questions"`
}

// ListChannels handles GET /v1/questions/channels
func (h *QuestionHandler) ListChannels(w http.ResponseWriter, r *http.Request) {
	channels := h.questionSvc.Channels()

	views := make([]map[string]string, 0, len(channels))
	for _, channel := range channels {
		views = append(views, map[string]string{
			"channel": channel,
			"name":    h.questionSvc.Channel(channel).Name,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"channels": views})
}

// GetChannel handles GET /v1/questions/channels/{channel}
func (h *QuestionHandler) GetChannel(w http.ResponseWriter, r *http.Request) {
	channel := mux.Vars(r)["channel"]

	group := h.questionSvc.Channel(channel)
	if group == nil {
		writeError(w, http.StatusNotFound, "channel not found")
		return
	}

	factors := make(map[string]factorView, len(group.Factors))
	for factor, questions := range group.Factors {
		factors[factor] = factorView{
			Name:      service.FactorName(factor),
			Questions: questions,
		}
	}

	writeJSON(w, http.StatusOK, channelView{
		Channel: channel,
		Name:    group.Name,
		Factors: factors,
	})
}

// Summary handles GET /v1/questions/summary
func (h *QuestionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summary":        h.questionSvc.Summary(),
		"totalQuestions": h.questionSvc.TotalQuestions(),
	})
}

// Get handles GET /v1/questions/{id}
func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	question, ok := h.questionSvc.QuestionByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "question not found")
		return
	}

	writeJSON(w, http.StatusOK, question)
}
