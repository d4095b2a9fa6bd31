package reports

import (
	"net/http"

	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

// GetOne godoc
// @Summary     Report detail
// @Tags        reports
// @Produce     json
// @Param       id path string true "report id (uuid)"
// @Success     200 {object} domain.APIEnvelope{data=domain.Report}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /api/v1/reports/{id} [get]
func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	const op = "reports.getone"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.PathUUID(r, "id")
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad report id", err, "raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, err)
		return
	}

	key := h.Keys.ReportDetail(id)
	if h.serveCached(w, r, key) {
		logx.Info(h.Log, reqID, op, "cache hit", "report_id", id)
		return
	}

	rep, err := h.Reports.ReportByID(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db get failed", err, "report_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "report_id", id)
	h.writeAndCache(w, r, key, h.TTL.Detail, "report", rep)
}
