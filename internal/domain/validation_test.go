package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidLogin(t *testing.T) {
	assert.True(t, ValidLogin("admin_one"))
	assert.True(t, ValidLogin("User1234"))
	assert.False(t, ValidLogin("abc"))            // короче 4
	assert.False(t, ValidLogin("has space"))      // пробел
	assert.False(t, ValidLogin("кириллица_тут")) // не ASCII
	assert.False(t, ValidLogin(strings.Repeat("a", 33)))
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(19.076, 72.877))
	assert.True(t, ValidCoordinates(-90, 180))
	assert.False(t, ValidCoordinates(90.1, 0))
	assert.False(t, ValidCoordinates(0, -180.1))
}

func TestValidReportTitle(t *testing.T) {
	assert.True(t, ValidReportTitle("Broken streetlight"))
	assert.False(t, ValidReportTitle("ab"))
	assert.False(t, ValidReportTitle(strings.Repeat("x", 201)))
}

func TestValidCommentText(t *testing.T) {
	assert.True(t, ValidCommentText("same issue near my house"))
	assert.False(t, ValidCommentText(""))
	assert.False(t, ValidCommentText(strings.Repeat("x", 2001)))
}

func TestPriorityRankOrder(t *testing.T) {
	assert.Less(t, PriorityRank(PriorityLow), PriorityRank(PriorityMedium))
	assert.Less(t, PriorityRank(PriorityMedium), PriorityRank(PriorityHigh))
	assert.Less(t, PriorityRank(PriorityHigh), PriorityRank(PriorityCritical))
	assert.Equal(t, -1, PriorityRank(PriorityAuto))
}

func TestPageNorm(t *testing.T) {
	p := Page{Limit: 0, Offset: -5}.Norm()
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = Page{Limit: 500, Offset: 40}.Norm()
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 40, p.Offset)
}
