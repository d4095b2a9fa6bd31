package reports

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

// AdminList godoc
// @Summary     Reports for triage
// @Description Staff видит только свой департамент; assigned=me — свои
// @Description назначения. Сортировка: critical первыми.
// @Tags        reports
// @Produce     json
// @Param       department query string false "department (для staff игнорируется)"
// @Param       priority   query string false "low|medium|high|critical"
// @Param       resolved   query bool   false "фильтр по статусу"
// @Param       assigned   query string false "me | uuid админа"
// @Param       limit      query int    false "limit"
// @Param       offset     query int    false "offset"
// @Success     200 {object} domain.APIEnvelope{data=[]domain.Report}
// @Failure     401 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/v1/admin/reports [get]
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	const op = "reports.admin_list"
	reqID := mw.RequestIDFromCtx(r.Context())

	admin, ok := domain.AdminFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	q := r.URL.Query()
	f := domain.AdminReportFilter{
		Department: q.Get("department"),
		Priority:   domain.Priority(q.Get("priority")),
		Resolved:   v1.BoolQuery(r, "resolved"),
	}
	// staff заперт в своём департаменте
	if admin.Role == domain.RoleStaff {
		f.Department = admin.Department
	}
	switch a := q.Get("assigned"); a {
	case "":
	case "me":
		id := admin.ID
		f.AssignedTo = &id
	default:
		aid, err := uuid.Parse(a)
		if err != nil {
			logx.Error(h.Log, reqID, op, "bad assigned filter", err)
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
		f.AssignedTo = &aid
	}
	p := v1.PageFromQuery(r)

	key := h.Keys.AdminReports(f, p)
	if h.serveCached(w, r, key) {
		logx.Info(h.Log, reqID, op, "cache hit")
		return
	}

	list, err := h.Reports.AdminReportsList(r.Context(), f, p)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db list failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(list))
	h.writeAndCache(w, r, key, h.TTL.List, "reports", list)
}
