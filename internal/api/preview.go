package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/JitendraDubey2004/TalentFlow/internal/assessment"
	"github.com/JitendraDubey2004/TalentFlow/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// previewRequest is one client frame on the preview socket. When Sections
// is present the unsaved schema from the builder is rendered; otherwise the
// saved schema for the job is used. Preview mode shows every question with
// its placeholder; runtime mode evaluates conditions and validation against
// the supplied answers.
type previewRequest struct {
	Sections []models.Section `json:"sections,omitempty"`
	Answers  models.AnswerSet `json:"answers"`
	Preview  bool             `json:"preview"`
}

type previewResponse struct {
	Type      string                       `json:"type"`
	Sections  []assessment.RenderedSection `json:"sections,omitempty"`
	CanSubmit bool                         `json:"canSubmit"`
	Message   string                       `json:"message,omitempty"`
}

// handlePreviewWS streams live render plans over a websocket: every answer
// or schema change frame from the client is answered with the full
// visibility/validation state, computed by the same engine the submit path
// uses.
func (s *Server) handlePreviewWS(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDParam(r)
	if !ok {
		http.Error(w, "job id must be a positive integer", http.StatusBadRequest)
		return
	}

	saved, err := s.repo.GetAssessment(r.Context(), jobID)
	if err != nil {
		slog.Error("failed to load assessment for preview", "error", err, "job_id", jobID)
		http.Error(w, "failed to load assessment", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	slog.Info("preview websocket connected", "job_id", jobID)

	for {
		var req previewRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("preview websocket read error", "error", err)
			}
			break
		}

		schema := saved
		if req.Sections != nil {
			schema = &models.Assessment{JobID: jobID, Sections: req.Sections}
		}
		if req.Answers == nil {
			req.Answers = models.AnswerSet{}
		}

		errs := map[int]string{}
		if !req.Preview {
			errs = assessment.ValidateAll(schema, req.Answers)
		}

		resp := previewResponse{
			Type:      "render",
			Sections:  assessment.Render(schema, req.Answers, errs, req.Preview),
			CanSubmit: len(errs) == 0,
		}

		if err := conn.WriteJSON(resp); err != nil {
			slog.Debug("failed to send preview frame", "error", err)
			break
		}
	}

	slog.Info("preview websocket disconnected", "job_id", jobID)
}
