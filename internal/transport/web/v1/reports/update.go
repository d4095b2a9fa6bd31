package reports

import (
	"encoding/json"
	"net/http"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

// Update godoc
// @Summary     Edit own report
// @Description Только владелец и только до резолва. nil-поля не трогаем.
// @Tags        reports
// @Accept      json
// @Produce     json
// @Param       id      path string true "report id (uuid)"
// @Param       request body  object true "title/description/category"
// @Success     200 {object} domain.APIEnvelope{data=domain.Report}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Failure     409 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/v1/reports/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "reports.update"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := domain.UserFromCtx(r.Context())
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

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if req.Title == nil && req.Description == nil && req.Category == nil {
		logx.Error(h.Log, reqID, op, "empty patch", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if req.Title != nil && !domain.ValidReportTitle(*req.Title) {
		logx.Error(h.Log, reqID, op, "bad title", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	patch := domain.ReportPatch{Title: req.Title, Description: req.Description, Category: req.Category}
	rep, err := h.Reports.UpdateReport(r.Context(), id, me.ID, patch)
	if err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "report_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.Inval.ReportUpdated(r.Context(), id)

	logx.Info(h.Log, reqID, op, "ok", "report_id", id)
	v1.WriteOK(w, r, "report updated", rep)
}
