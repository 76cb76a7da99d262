package handler

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"kvassess/internal/model"
	"kvassess/internal/service"
	"kvassess/internal/transport/rest/middleware"
)

// ExportHandler serves session downloads in JSON and CSV form
type ExportHandler struct {
	sessionSvc *service.SessionService
	exportSvc  *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(sessionSvc *service.SessionService, exportSvc *service.ExportService) *ExportHandler {
	return &ExportHandler{
		sessionSvc: sessionSvc,
		exportSvc:  exportSvc,
	}
}

// JSON handles GET /v1/sessions/{id}/export/json
func (h *ExportHandler) JSON(w http.ResponseWriter, r *http.Request) {
	session, ok := h.authorizedSession(w, r)
	if !ok {
		return
	}

	data, err := h.exportSvc.ExportJSON(session)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="assessment_%s.json"`, session.ID))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// CSV handles GET /v1/sessions/{id}/export/csv
func (h *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	session, ok := h.authorizedSession(w, r)
	if !ok {
		return
	}

	data, err := h.exportSvc.ExportCSV(session)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="assessment_%s.csv"`, session.ID))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *ExportHandler) authorizedSession(w http.ResponseWriter, r *http.Request) (*model.Session, bool) {
	sessionID := mux.Vars(r)["id"]
	if middleware.GetFacilitatorID(r.Context()) == "" && middleware.GetSessionID(r.Context()) != sessionID {
		writeError(w, http.StatusForbidden, "token not valid for this session")
		return nil, false
	}

	session, err := h.sessionSvc.Get(r.Context(), sessionID)
	if err != nil {
		writeSessionError(w, err)
		return nil, false
	}
	return session, true
}
