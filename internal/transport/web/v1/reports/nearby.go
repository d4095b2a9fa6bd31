package reports

import (
	"net/http"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

const defaultNearbyRadiusM = 1000

// Nearby godoc
// @Summary     Unresolved reports near a point
// @Tags        reports
// @Produce     json
// @Param       lat    query number true  "latitude"
// @Param       lon    query number true  "longitude"
// @Param       radius query number false "радиус, метры (default 1000)"
// @Param       limit  query int    false "limit"
// @Param       offset query int    false "offset"
// @Success     200 {object} domain.APIEnvelope{data=[]domain.Report}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/v1/reports/nearby [get]
func (h *Handler) Nearby(w http.ResponseWriter, r *http.Request) {
	const op = "reports.nearby"
	reqID := mw.RequestIDFromCtx(r.Context())

	lat, okLat := v1.FloatQuery(r, "lat")
	lon, okLon := v1.FloatQuery(r, "lon")
	if !okLat || !okLon || !domain.ValidCoordinates(lat, lon) {
		logx.Error(h.Log, reqID, op, "bad coordinates", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	f := domain.NearbyFilter{Latitude: lat, Longitude: lon, RadiusM: defaultNearbyRadiusM}
	if rad, ok := v1.FloatQuery(r, "radius"); ok && rad > 0 {
		f.RadiusM = rad
	}
	p := v1.PageFromQuery(r)

	key := h.Keys.Nearby(f, p)
	if h.serveCached(w, r, key) {
		logx.Info(h.Log, reqID, op, "cache hit")
		return
	}

	list, err := h.Reports.ReportsNearby(r.Context(), f, p)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db nearby failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(list))
	h.writeAndCache(w, r, key, h.TTL.List, "nearby reports", list)
}
