package cache

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
)

func TestReportsListKeyDeterministic(t *testing.T) {
	k := Keys{}
	f := domain.ReportFilter{Tab: domain.TabOpen, Category: "road_damage", Priority: domain.PriorityHigh}
	p := domain.Page{Limit: 20, Offset: 0}

	a := k.ReportsList(f, p)
	b := k.ReportsList(f, p)
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, NSReports+":"))
}

func TestReportsListKeyNormalizesAll(t *testing.T) {
	k := Keys{}
	p := domain.Page{Limit: 20}

	empty := k.ReportsList(domain.ReportFilter{Tab: domain.TabAll}, p)
	explicit := k.ReportsList(domain.ReportFilter{Tab: domain.TabAll, Category: "all"}, p)
	assert.Equal(t, empty, explicit, "пустой фильтр и явный all делят запись")
}

func TestReportsListKeyDependsOnFilter(t *testing.T) {
	k := Keys{}
	p := domain.Page{Limit: 20}

	base := k.ReportsList(domain.ReportFilter{Tab: domain.TabAll}, p)
	other := k.ReportsList(domain.ReportFilter{Tab: domain.TabOpen}, p)
	paged := k.ReportsList(domain.ReportFilter{Tab: domain.TabAll}, domain.Page{Limit: 20, Offset: 20})

	assert.NotEqual(t, base, other)
	assert.NotEqual(t, base, paged)
}

// Публичные вкладки не персонализированы: кто бы ни читал, ключ один.
// Случайно проставленный владелец при не-mine вкладке тоже игнорируется.
func TestReportsListPublicTabsIgnoreViewer(t *testing.T) {
	k := Keys{}
	p := domain.Page{Limit: 20}
	owner := uuid.New()

	plain := k.ReportsList(domain.ReportFilter{Tab: domain.TabAll}, p)
	withOwner := k.ReportsList(domain.ReportFilter{Tab: domain.TabAll, OwnerID: &owner}, p)
	assert.Equal(t, plain, withOwner, "публичная выдача делит одну запись")
}

func TestMineTabUsesOwnerNamespace(t *testing.T) {
	k := Keys{}
	owner := uuid.New()
	f := domain.ReportFilter{Tab: domain.TabMine, OwnerID: &owner}

	key := k.ReportsList(f, domain.Page{Limit: 20})
	require.True(t, strings.HasPrefix(key, NSUserReports+":"+owner.String()+":"))
}

func TestNearbyKeyRoundsCoordinates(t *testing.T) {
	k := Keys{}
	p := domain.Page{Limit: 20}

	a := k.Nearby(domain.NearbyFilter{Latitude: 19.07601, Longitude: 72.87771, RadiusM: 1000}, p)
	b := k.Nearby(domain.NearbyFilter{Latitude: 19.07599, Longitude: 72.87769, RadiusM: 1000}, p)
	assert.Equal(t, a, b, "точки в пределах шага округления делят запись")

	far := k.Nearby(domain.NearbyFilter{Latitude: 19.2, Longitude: 72.9, RadiusM: 1000}, p)
	assert.NotEqual(t, a, far)
}

func TestAdminAssignedNamespace(t *testing.T) {
	k := Keys{}
	admin := uuid.New()
	f := domain.AdminReportFilter{AssignedTo: &admin}

	key := k.AdminReports(f, domain.Page{Limit: 20})
	require.True(t, strings.HasPrefix(key, NSAdminReports+":assigned:"+admin.String()+":"))
}

// Шаблон деталки не должен цеплять ключи списков: "report:*" и
// "reports:..." разводятся разделителем.
func TestDetailPatternDoesNotMatchLists(t *testing.T) {
	k := Keys{}
	id := uuid.New()

	detail := k.ReportDetail(id)
	list := k.ReportsList(domain.ReportFilter{Tab: domain.TabAll}, domain.Page{Limit: 20})

	assert.True(t, strings.HasPrefix(detail, NSReportDetail+":"))
	assert.False(t, strings.HasPrefix(list, NSReportDetail+":"))
}
