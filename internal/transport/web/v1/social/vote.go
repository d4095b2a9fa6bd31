package social

import (
	"encoding/json"
	"net/http"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

// Vote godoc
// @Summary     Vote on a post
// @Description value: 1|-1. Повтор того же значения снимает голос.
// @Tags        social
// @Accept      json
// @Produce     json
// @Param       id      path string true "post id (uuid)"
// @Param       request body  object true "{value}"
// @Success     200 {object} domain.APIEnvelope{data=domain.SocialPost}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/v1/social/posts/{id}/vote [post]
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	const op = "social.vote"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := domain.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	id, err := v1.PathUUID(r, "id")
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad post id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	var req struct {
		Value int `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if req.Value != 1 && req.Value != -1 {
		logx.Error(h.Log, reqID, op, "bad vote value", domain.ErrBadParams, "value", req.Value)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	post, err := h.Social.CastVote(r.Context(), id, me.ID, req.Value)
	if err != nil {
		logx.Error(h.Log, reqID, op, "vote failed", err, "post_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.Inval.PostVoted(r.Context())

	logx.Info(h.Log, reqID, op, "ok", "post_id", id, "score", post.TotalScore)
	v1.WriteOK(w, r, "vote accepted", post)
}
