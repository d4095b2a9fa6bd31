package reports

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

// Assign godoc
// @Summary     Assign report to admin
// @Description Пустое тело — назначить на себя.
// @Tags        reports
// @Accept      json
// @Produce     json
// @Param       id      path string true  "report id (uuid)"
// @Param       request body  object false "{assignee_id}"
// @Success     200 {object} domain.APIEnvelope{data=domain.Report}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/v1/reports/{id}/assign [post]
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	const op = "reports.assign"
	reqID := mw.RequestIDFromCtx(r.Context())

	admin, ok := domain.AdminFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	id, err := v1.PathUUID(r, "id")
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad report id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	assignee := admin.ID
	var req struct {
		AssigneeID string `json:"assignee_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.AssigneeID != "" {
		aid, err := uuid.Parse(req.AssigneeID)
		if err != nil {
			logx.Error(h.Log, reqID, op, "bad assignee id", err)
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
		assignee = aid
	}

	rep, err := h.Reports.AssignReport(r.Context(), id, assignee)
	if err != nil {
		logx.Error(h.Log, reqID, op, "assign failed", err, "report_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.Inval.ReportAssigned(r.Context(), id)

	logx.Info(h.Log, reqID, op, "ok", "report_id", id, "assignee", assignee)
	v1.WriteOK(w, r, "report assigned", rep)
}
