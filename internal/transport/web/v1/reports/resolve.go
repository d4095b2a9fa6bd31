package reports

import (
	"net/http"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

// Resolve godoc
// @Summary     Resolve report
// @Description Админ закрывает обращение; повторный резолв — 409.
// @Tags        reports
// @Produce     json
// @Param       id path string true "report id (uuid)"
// @Success     200 {object} domain.APIEnvelope{data=domain.Report}
// @Failure     401 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Failure     409 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/v1/reports/{id}/resolve [post]
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	const op = "reports.resolve"
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

	rep, err := h.Reports.ResolveReport(r.Context(), id, admin.ID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "resolve failed", err, "report_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	// суммарно самая широкая чистка: статус виден везде
	h.Inval.ReportResolved(r.Context(), id, rep.UserID)
	h.Notify.NotifyResolved(r.Context(), rep.UserID, rep.ID, rep.Title)

	logx.Info(h.Log, reqID, op, "ok", "report_id", id, "admin_id", admin.ID)
	v1.WriteOK(w, r, "report resolved", rep)
}
