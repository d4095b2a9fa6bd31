package social

import (
	"encoding/json"
	"net/http"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

// Comments godoc
// @Summary     List post comments
// @Tags        social
// @Produce     json
// @Param       id     path  string true  "post id (uuid)"
// @Param       limit  query int    false "limit"
// @Param       offset query int    false "offset"
// @Success     200 {object} domain.APIEnvelope{data=[]domain.SocialComment}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /api/v1/social/posts/{id}/comments [get]
func (h *Handler) Comments(w http.ResponseWriter, r *http.Request) {
	const op = "social.comments"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.PathUUID(r, "id")
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad post id", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	p := v1.PageFromQuery(r)

	key := h.Keys.SocialComments(id, p)
	if h.serveCached(w, r, key) {
		logx.Info(h.Log, reqID, op, "cache hit", "post_id", id)
		return
	}

	list, err := h.Social.CommentsList(r.Context(), id, p)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db list failed", err, "post_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "post_id", id, "count", len(list))
	h.writeAndCache(w, r, key, h.TTL.Social, "comments", list)
}

// AddComment godoc
// @Summary     Comment on a post
// @Tags        social
// @Accept      json
// @Produce     json
// @Param       id      path string true "post id (uuid)"
// @Param       request body object true "{text}"
// @Success     201 {object} domain.APIEnvelope{data=domain.SocialComment}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/v1/social/posts/{id}/comments [post]
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	const op = "social.add_comment"
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
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if !domain.ValidCommentText(req.Text) {
		logx.Error(h.Log, reqID, op, "bad comment text", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	c, err := h.Social.AddComment(r.Context(), id, me.ID, req.Text)
	if err != nil {
		logx.Error(h.Log, reqID, op, "add failed", err, "post_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.Inval.CommentAdded(r.Context(), id)

	logx.Info(h.Log, reqID, op, "ok", "post_id", id, "comment_id", c.ID)
	v1.WriteCreated(w, r, "comment added", c)
}
