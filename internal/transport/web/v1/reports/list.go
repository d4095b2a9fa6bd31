package reports

import (
	"net/http"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

// List godoc
// @Summary     List reports
// @Description Вкладки: all|open|resolved|mine (mine — только с токеном).
// @Tags        reports
// @Produce     json
// @Param       tab      query string false "all|open|resolved|mine"
// @Param       category query string false "category (all — любое)"
// @Param       priority query string false "low|medium|high|critical"
// @Param       resolved query bool   false "фильтр по статусу"
// @Param       limit    query int    false "limit (max 100)"
// @Param       offset   query int    false "offset"
// @Success     200 {object} domain.APIEnvelope{data=[]domain.Report}
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/v1/reports [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "reports.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	q := r.URL.Query()
	f := domain.ReportFilter{
		Tab:      domain.ReportTab(orDefault(q.Get("tab"), string(domain.TabAll))),
		Category: q.Get("category"),
		Priority: domain.Priority(q.Get("priority")),
		Resolved: v1.BoolQuery(r, "resolved"),
	}
	p := v1.PageFromQuery(r)

	var viewer *domain.UserID
	if me, ok := domain.UserFromCtx(r.Context()); ok {
		viewer = &me.ID
	}
	if f.Tab == domain.TabMine {
		if viewer == nil {
			logx.Error(h.Log, reqID, op, "mine without token", domain.ErrUnauth)
			v1.WriteDomainError(w, r, domain.ErrUnauth)
			return
		}
		f.OwnerID = viewer
	}

	key := h.Keys.ReportsList(f, p)
	if h.serveCached(w, r, key) {
		logx.Info(h.Log, reqID, op, "cache hit", "tab", f.Tab)
		return
	}

	list, err := h.Reports.ReportsList(r.Context(), f, p)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db list failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "tab", f.Tab, "count", len(list))
	h.writeAndCache(w, r, key, h.TTL.List, "reports", list)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
