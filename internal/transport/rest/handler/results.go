package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"kvassess/internal/model"
	"kvassess/internal/service"
	"kvassess/internal/transport/rest/middleware"
)

// ResultsHandler serves scores, insights and generated narratives for a session
type ResultsHandler struct {
	sessionSvc  *service.SessionService
	questionSvc *service.QuestionService
	scoringSvc  *service.ScoringService
	insightSvc  *service.InsightService
}

// NewResultsHandler creates a new results handler
func NewResultsHandler(sessionSvc *service.SessionService, questionSvc *service.QuestionService, scoringSvc *service.ScoringService, insightSvc *service.InsightService) *ResultsHandler {
	return &ResultsHandler{
		sessionSvc:  sessionSvc,
		questionSvc: questionSvc,
		scoringSvc:  scoringSvc,
		insightSvc:  insightSvc,
	}
}

// Scores handles GET /v1/sessions/{id}/scores
func (h *ResultsHandler) Scores(w http.ResponseWriter, r *http.Request) {
	session, report, ok := h.sessionReport(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessionId": session.ID,
		"scores":    report,
	})
}

// Insights handles GET /v1/sessions/{id}/insights
func (h *ResultsHandler) Insights(w http.ResponseWriter, r *http.Request) {
	session, report, ok := h.sessionReport(w, r)
	if !ok {
		return
	}

	insights := h.insightSvc.DeriveInsights(report, session.Comments)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessionId": session.ID,
		"insights":  insights,
	})
}

// Narrative handles GET /v1/sessions/{id}/narrative?channel=...
func (h *ResultsHandler) Narrative(w http.ResponseWriter, r *http.Request) {
	channel := r.URL.Query().Get("channel")
	if channel == "" {
		writeError(w, http.StatusBadRequest, "channel query param is required")
		return
	}

	session, report, ok := h.sessionReport(w, r)
	if !ok {
		return
	}
	if _, found := report.Channels[channel]; !found {
		writeError(w, http.StatusNotFound, "channel not found")
		return
	}

	narrative := h.insightSvc.ChannelNarrative(r.Context(), channel, report, session.Comments)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessionId": session.ID,
		"channel":   channel,
		"narrative": narrative,
	})
}

// Summary handles GET /v1/sessions/{id}/summary
func (h *ResultsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	session, report, ok := h.sessionReport(w, r)
	if !ok {
		return
	}

	summary := h.insightSvc.ExecutiveSummary(r.Context(), report, session.Comments)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessionId": session.ID,
		"summary":   summary,
	})
}

// sessionReport loads the addressed session and computes a fresh score report.
// Facilitator tokens may read any session; participant tokens only their own.
func (h *ResultsHandler) sessionReport(w http.ResponseWriter, r *http.Request) (*model.Session, *model.ScoreReport, bool) {
	sessionID := mux.Vars(r)["id"]
	if middleware.GetFacilitatorID(r.Context()) == "" && middleware.GetSessionID(r.Context()) != sessionID {
		writeError(w, http.StatusForbidden, "token not valid for this session")
		return nil, nil, false
	}

	session, err := h.sessionSvc.Get(r.Context(), sessionID)
	if err != nil {
		writeSessionError(w, err)
		return nil, nil, false
	}

	report := h.scoringSvc.CalculateAllScores(h.questionSvc, session.Responses)
	return session, report, true
}
