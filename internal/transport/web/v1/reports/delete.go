package reports

import (
	"net/http"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

// Delete godoc
// @Summary     Delete own report
// @Description Удаляет обращение вместе с соц-постом (FK cascade);
// @Description вложения чистятся best effort.
// @Tags        reports
// @Produce     json
// @Param       id path string true "report id (uuid)"
// @Success     200 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/v1/reports/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "reports.delete"
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

	rep, err := h.Reports.DeleteReport(r.Context(), id, me.ID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "report_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.Inval.ReportDeleted(r.Context(), id, me.ID)

	for _, u := range []string{rep.PhotoURL, rep.AudioURL} {
		if u == "" {
			continue
		}
		if err := h.Storage.Delete(r.Context(), u); err != nil {
			logx.Error(h.Log, reqID, op, "media delete failed", err, "url", u)
		}
	}

	logx.Info(h.Log, reqID, op, "ok", "report_id", id)
	v1.WriteOK(w, r, "report deleted", nil)
}
