package social

import (
	"net/http"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

// List godoc
// @Summary     Social feed
// @Description С токеном в выдаче viewer_vote (-1/0/+1); личность входит
// @Description в ключ кэша, гости делят одну запись.
// @Tags        social
// @Produce     json
// @Param       sort     query string false "new|top"
// @Param       category query string false "category"
// @Param       limit    query int    false "limit"
// @Param       offset   query int    false "offset"
// @Success     200 {object} domain.APIEnvelope{data=[]domain.SocialPost}
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/v1/social/posts [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "social.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	q := r.URL.Query()
	f := domain.PostFilter{
		Sort:     domain.PostSort(q.Get("sort")),
		Category: q.Get("category"),
	}
	if f.Sort != domain.PostSortTop {
		f.Sort = domain.PostSortNew
	}
	p := v1.PageFromQuery(r)

	var viewer *domain.UserID
	if me, ok := domain.UserFromCtx(r.Context()); ok {
		viewer = &me.ID
	}

	key := h.Keys.SocialPosts(f, p, viewer)
	if h.serveCached(w, r, key) {
		logx.Info(h.Log, reqID, op, "cache hit")
		return
	}

	posts, err := h.Social.PostsList(r.Context(), f, p, viewer)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db list failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(posts))
	h.writeAndCache(w, r, key, h.TTL.Social, "posts", posts)
}
