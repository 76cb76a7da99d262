package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"kvassess/internal/model"
	"kvassess/internal/service"
	"kvassess/internal/transport/rest/middleware"
)

// SessionHandler handles the assessment session lifecycle
type SessionHandler struct {
	sessionSvc *service.SessionService
	authSvc    *service.AuthService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService, authSvc *service.AuthService) *SessionHandler {
	return &SessionHandler{
		sessionSvc: sessionSvc,
		authSvc:    authSvc,
	}
}

// StartSessionRequest is the request body for starting a session
type StartSessionRequest struct {
	User model.UserInfo `json:"user"`
}

// AnswerRequest carries one raw answer value: a number for likert questions,
// "Yes"/"No" for yes/no questions
type AnswerRequest struct {
	Value interface{} `json:"value"`
}

// CommentRequest carries one free-text comment
type CommentRequest struct {
	Text string `json:"text"`
}

// Start handles POST /v1/sessions
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.User.Name == "" {
		writeError(w, http.StatusBadRequest, "user name is required")
		return
	}

	session, err := h.sessionSvc.Start(r.Context(), req.User)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := h.authSvc.GenerateParticipantToken(session.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session": session,
		"token":   token,
	})
}

// Get handles GET /v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := h.authorizedSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// SaveAnswer handles PUT /v1/sessions/{id}/answers/{questionId}
func (h *SessionHandler) SaveAnswer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if !h.authorizeParticipant(w, r, vars["id"]) {
		return
	}

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionSvc.SaveAnswer(r.Context(), vars["id"], vars["questionId"], req.Value)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// SaveComment handles PUT /v1/sessions/{id}/comments/{questionId}
func (h *SessionHandler) SaveComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if !h.authorizeParticipant(w, r, vars["id"]) {
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionSvc.SaveComment(r.Context(), vars["id"], vars["questionId"], req.Text)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Complete handles POST /v1/sessions/{id}/complete
func (h *SessionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if !h.authorizeParticipant(w, r, vars["id"]) {
		return
	}

	session, err := h.sessionSvc.Complete(r.Context(), vars["id"])
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// List handles GET /v1/sessions (facilitator only)
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}

// Delete handles DELETE /v1/sessions/{id} (facilitator only)
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.sessionSvc.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// authorizeParticipant checks that the participant token is scoped to the
// session addressed by the path
func (h *SessionHandler) authorizeParticipant(w http.ResponseWriter, r *http.Request, sessionID string) bool {
	if middleware.GetSessionID(r.Context()) != sessionID {
		writeError(w, http.StatusForbidden, "token not valid for this session")
		return false
	}
	return true
}

func (h *SessionHandler) authorizedSession(w http.ResponseWriter, r *http.Request) (*model.Session, bool) {
	sessionID := mux.Vars(r)["id"]
	if !h.authorizeParticipant(w, r, sessionID) {
		return nil, false
	}

	session, err := h.sessionSvc.Get(r.Context(), sessionID)
	if err != nil {
		writeSessionError(w, err)
		return nil, false
	}
	return session, true
}

// writeSessionError maps session service errors to HTTP statuses
func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnknownQuestion):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSessionCompleted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidAnswer):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
