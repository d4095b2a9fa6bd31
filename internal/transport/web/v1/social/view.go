package social

import (
	"net/http"

	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

// View godoc
// @Summary     Track post view
// @Description Инкремент счётчика просмотров; токен не обязателен.
// @Tags        social
// @Produce     json
// @Param       id path string true "post id (uuid)"
// @Success     200 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /api/v1/social/posts/{id}/view [post]
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	const op = "social.view"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.PathUUID(r, "id")
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad post id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.Social.TrackView(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "track failed", err, "post_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.Inval.ViewTracked(r.Context())

	logx.Info(h.Log, reqID, op, "ok", "post_id", id)
	v1.WriteOK(w, r, "view tracked", nil)
}
