package reports

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

// Create godoc
// @Summary     Create report
// @Description multipart: текстовые поля + опциональные photo/audio.
// @Description Приоритет "auto" считается по плотности соседних обращений.
// @Tags        reports
// @Accept      multipart/form-data
// @Produce     json
// @Param       title       formData string true  "title"
// @Param       description formData string false "description"
// @Param       category    formData string true  "category"
// @Param       department  formData string false "department"
// @Param       latitude    formData number true  "latitude"
// @Param       longitude   formData number true  "longitude"
// @Param       priority    formData string false "low|medium|high|critical|auto"
// @Param       photo       formData file   false "photo"
// @Param       audio       formData file   false "voice note"
// @Success     201 {object} domain.APIEnvelope{data=domain.Report}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/v1/reports [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "reports.create"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start")

	me, ok := domain.UserFromCtx(r.Context())
	if !ok {
		logx.Error(h.Log, reqID, op, "unauthorized", domain.ErrUnauth)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		logx.Error(h.Log, reqID, op, "parse form", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	lat, errLat := strconv.ParseFloat(r.FormValue("latitude"), 64)
	lon, errLon := strconv.ParseFloat(r.FormValue("longitude"), 64)
	draft := domain.ReportDraft{
		UserID:      me.ID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Department:  r.FormValue("department"),
		Latitude:    lat,
		Longitude:   lon,
		Priority:    domain.PriorityAuto,
	}
	if p := r.FormValue("priority"); p != "" {
		draft.Priority = domain.Priority(p)
	}

	switch {
	case errLat != nil || errLon != nil || !domain.ValidCoordinates(lat, lon):
		logx.Error(h.Log, reqID, op, "bad coordinates", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	case !domain.ValidReportTitle(draft.Title):
		logx.Error(h.Log, reqID, op, "bad title", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	case draft.Category == "":
		logx.Error(h.Log, reqID, op, "empty category", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	case !domain.ValidPriority(draft.Priority):
		logx.Error(h.Log, reqID, op, "bad priority", domain.ErrBadParams, "priority", draft.Priority)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// Медиа — best effort: обращение ценнее вложения, при отказе
	// хранилища создаём без ссылки.
	draft.PhotoURL = h.uploadForm(r, reqID, op, "photo")
	draft.AudioURL = h.uploadForm(r, reqID, op, "audio")

	rep, err := h.Reports.CreateReport(r.Context(), draft)
	if err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	// чистка кэша строго после коммита
	h.Inval.ReportCreated(r.Context(), me.ID)

	logx.Info(h.Log, reqID, op, "ok", "report_id", rep.ID, "priority", rep.Priority)
	v1.WriteCreated(w, r, "report created", rep)
}

func (h *Handler) uploadForm(r *http.Request, reqID, op, field string) string {
	f, fh, err := r.FormFile(field)
	if err != nil {
		return "" // поля нет
	}
	defer f.Close()
	url, err := h.Storage.Upload(r.Context(), f, fh.Filename, formMIME(fh))
	if err != nil {
		logx.Error(h.Log, reqID, op, "media upload failed", err, "field", field)
		return ""
	}
	return url
}

func formMIME(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
