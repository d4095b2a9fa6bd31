package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/infra/cache/memory"
)

func seed(t *testing.T, c domain.Cache, keys ...string) {
	t.Helper()
	for _, k := range keys {
		c.Set(context.Background(), k, []byte("cached"), 60)
	}
}

func alive(c domain.Cache, key string) bool {
	_, ok := c.Get(context.Background(), key)
	return ok
}

func TestReportResolvedPurgesEverythingRelevant(t *testing.T) {
	mc := memory.New()
	r := NewRouter(mc, nil, 0)

	owner := uuid.New()
	other := uuid.New()
	id := uuid.New()

	k := Keys{}
	detail := k.ReportDetail(id)
	list := k.ReportsList(domain.ReportFilter{Tab: domain.TabAll}, domain.Page{Limit: 20})
	mine := k.ReportsList(domain.ReportFilter{Tab: domain.TabMine, OwnerID: &owner}, domain.Page{Limit: 20})
	foreign := k.ReportsList(domain.ReportFilter{Tab: domain.TabMine, OwnerID: &other}, domain.Page{Limit: 20})
	feed := k.SocialPosts(domain.PostFilter{Sort: domain.PostSortNew}, domain.Page{Limit: 20}, nil)
	stats := k.CommunityStats()
	admins := k.AdminsList(domain.AdminFilter{}, domain.Page{Limit: 20})

	seed(t, mc, detail, list, mine, foreign, feed, stats, admins)

	r.ReportResolved(context.Background(), id, owner)

	assert.False(t, alive(mc, detail))
	assert.False(t, alive(mc, list))
	assert.False(t, alive(mc, mine))
	assert.False(t, alive(mc, feed))
	assert.False(t, alive(mc, stats))

	// чужие «мои обращения» и админские профили не задеты
	assert.True(t, alive(mc, foreign))
	assert.True(t, alive(mc, admins))
}

func TestReportCreatedKeepsDetailEntries(t *testing.T) {
	mc := memory.New()
	r := NewRouter(mc, nil, 0)

	owner := uuid.New()
	id := uuid.New()

	k := Keys{}
	detail := k.ReportDetail(id)
	list := k.ReportsList(domain.ReportFilter{Tab: domain.TabAll}, domain.Page{Limit: 20})
	nearby := k.Nearby(domain.NearbyFilter{Latitude: 1, Longitude: 1, RadiusM: 500}, domain.Page{Limit: 20})

	seed(t, mc, detail, list, nearby)

	r.ReportCreated(context.Background(), owner)

	// деталки существующих обращений новое создание не трогает
	assert.True(t, alive(mc, detail))
	assert.False(t, alive(mc, list))
	assert.False(t, alive(mc, nearby))
}

func TestCommentAddedScopedToPost(t *testing.T) {
	mc := memory.New()
	r := NewRouter(mc, nil, 0)

	postA := uuid.New()
	postB := uuid.New()

	k := Keys{}
	commentsA := k.SocialComments(postA, domain.Page{Limit: 20})
	commentsB := k.SocialComments(postB, domain.Page{Limit: 20})
	feed := k.SocialPosts(domain.PostFilter{Sort: domain.PostSortTop}, domain.Page{Limit: 20}, nil)

	seed(t, mc, commentsA, commentsB, feed)

	r.CommentAdded(context.Background(), postA)

	assert.False(t, alive(mc, commentsA))
	assert.False(t, alive(mc, feed), "счётчик комментов виден в ленте")
	assert.True(t, alive(mc, commentsB))
}

func TestAdminChangedOpensBypassWindow(t *testing.T) {
	mc := memory.New()
	r := NewRouter(mc, nil, 30*time.Second)

	id := uuid.New()
	k := Keys{}
	list := k.AdminsList(domain.AdminFilter{}, domain.Page{Limit: 20})
	profile := k.AdminProfile(id)
	otherProfile := k.AdminProfile(uuid.New())

	seed(t, mc, list, profile, otherProfile)

	require.False(t, r.Bypass.Bypass(context.Background()))

	r.AdminChanged(context.Background(), id)

	assert.False(t, alive(mc, list))
	assert.False(t, alive(mc, profile))
	assert.True(t, alive(mc, otherProfile))
	assert.True(t, r.Bypass.Bypass(context.Background()), "окно обхода открыто")
}

func TestVoteAndViewPurgeOnlyFeed(t *testing.T) {
	mc := memory.New()
	r := NewRouter(mc, nil, 0)

	k := Keys{}
	feed := k.SocialPosts(domain.PostFilter{Sort: domain.PostSortNew}, domain.Page{Limit: 20}, nil)
	stats := k.CommunityStats()
	list := k.ReportsList(domain.ReportFilter{Tab: domain.TabAll}, domain.Page{Limit: 20})

	seed(t, mc, feed, stats, list)
	r.PostVoted(context.Background())
	assert.False(t, alive(mc, feed))
	assert.True(t, alive(mc, stats))
	assert.True(t, alive(mc, list))

	seed(t, mc, feed)
	r.ViewTracked(context.Background())
	assert.False(t, alive(mc, feed))
}
