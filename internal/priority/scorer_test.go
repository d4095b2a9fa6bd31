package priority

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
)

type countFunc func(ctx context.Context, lat, lon, radiusM float64, since time.Time) (int, error)

func (f countFunc) CountUnresolvedNearby(ctx context.Context, lat, lon, radiusM float64, since time.Time) (int, error) {
	return f(ctx, lat, lon, radiusM, since)
}

func fixedCount(n int) countFunc {
	return func(context.Context, float64, float64, float64, time.Time) (int, error) { return n, nil }
}

func TestTierForBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  domain.Priority
	}{
		{0, domain.PriorityLow},
		{2, domain.PriorityLow},
		{3, domain.PriorityMedium},
		{7, domain.PriorityMedium},
		{8, domain.PriorityHigh},
		{14, domain.PriorityHigh},
		{15, domain.PriorityCritical},
		{100, domain.PriorityCritical},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, TierFor(c.score), "score=%d", c.score)
	}
}

func TestSeverityWeight(t *testing.T) {
	assert.Equal(t, 3, SeverityWeight("fire_hazard"))
	assert.Equal(t, 2, SeverityWeight("road_damage"))
	assert.Equal(t, 1, SeverityWeight("garbage"))
	assert.Equal(t, 1, SeverityWeight("something_new"))
}

func TestComputeCombinesCountAndWeight(t *testing.T) {
	s := NewScorer(nil, 0, 0)

	// 5 соседей × вес 3 = 15 → critical
	got := s.Compute(context.Background(), fixedCount(5), 19.07, 72.87, "gas_leak")
	assert.Equal(t, domain.PriorityCritical, got)

	// 5 × 1 = 5 → medium
	got = s.Compute(context.Background(), fixedCount(5), 19.07, 72.87, "garbage")
	assert.Equal(t, domain.PriorityMedium, got)

	// одиночное обращение лёгкой категории → low
	got = s.Compute(context.Background(), fixedCount(1), 19.07, 72.87, "streetlight")
	assert.Equal(t, domain.PriorityLow, got)
}

func TestComputeFallsBackOnCounterError(t *testing.T) {
	s := NewScorer(nil, 0, 0)
	broken := countFunc(func(context.Context, float64, float64, float64, time.Time) (int, error) {
		return 0, errors.New("db down")
	})

	got := s.Compute(context.Background(), broken, 19.07, 72.87, "fire_hazard")
	assert.Equal(t, domain.PriorityMedium, got, "ошибка счёта не валит создание")
}

func TestComputeFallsBackOnBadCoordinates(t *testing.T) {
	s := NewScorer(nil, 0, 0)

	got := s.Compute(context.Background(), fixedCount(100), 91, 200, "fire_hazard")
	assert.Equal(t, domain.PriorityMedium, got)
}

func TestComputeUsesConfiguredWindow(t *testing.T) {
	s := NewScorer(nil, 7, 250)

	var gotRadius float64
	var gotSince time.Time
	probe := countFunc(func(_ context.Context, _, _, radiusM float64, since time.Time) (int, error) {
		gotRadius, gotSince = radiusM, since
		return 0, nil
	})

	s.Compute(context.Background(), probe, 19.07, 72.87, "garbage")
	assert.Equal(t, 250.0, gotRadius)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -7), gotSince, time.Minute)
}
