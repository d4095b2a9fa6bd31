package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
)

// Порядок тиров в CASE выводится из доменного ранга, а не дублируется
// руками: critical первым, неизвестное значение в хвост.
func TestPriorityOrderFollowsDomainRank(t *testing.T) {
	expr := priorityOrder()

	require.True(t, strings.HasPrefix(expr, "CASE priority"))
	assert.Contains(t, expr, "WHEN 'critical' THEN -3")
	assert.Contains(t, expr, "WHEN 'high' THEN -2")
	assert.Contains(t, expr, "WHEN 'medium' THEN -1")
	assert.Contains(t, expr, "WHEN 'low' THEN 0")
	assert.True(t, strings.HasSuffix(expr, "ELSE 1 END"))

	// ранги в CASE идут по убыванию приоритета
	crit := strings.Index(expr, "'critical'")
	low := strings.Index(expr, "'low'")
	assert.Less(t, crit, low)

	// сам доменный порядок: critical строго старше остальных
	for _, p := range []domain.Priority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh} {
		assert.Greater(t, domain.PriorityRank(domain.PriorityCritical), domain.PriorityRank(p))
	}
}
