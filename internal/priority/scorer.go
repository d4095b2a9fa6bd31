// Package priority — авто-приоритизация новых обращений: плотность
// нерешённых обращений рядом × вес категории → тир.
package priority

import (
	"context"
	"log"
	"time"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
)

// Дефолты окна поиска (переопределяются конфигом)
const (
	DefaultWindowDays   = 30
	DefaultRadiusMeters = 500.0

	// EarthRadiusM — радиус сферы для haversine-дистанции в SQL.
	EarthRadiusM = 6371000.0
)

// Пороговые значения score → тир
const (
	criticalFrom = 15
	highFrom     = 8
	mediumFrom   = 3
)

// Веса категорий — фиксированная таблица, не вычисляется.
var severityWeights = map[string]int{
	// опасность для жизни — вес 3
	"fire_hazard":       3,
	"gas_leak":          3,
	"electrical_hazard": 3,
	"accident":          3,
	"building_collapse": 3,
	// инфраструктура — вес 2
	"water_leak":     2,
	"sewage":         2,
	"road_damage":    2,
	"traffic_signal": 2,
	"tree_fall":      2,
	// всё остальное (garbage, streetlight, pothole, ...) — вес 1
}

// SeverityWeight — вес категории (1 для неизвестных).
func SeverityWeight(category string) int {
	if w, ok := severityWeights[category]; ok {
		return w
	}
	return 1
}

// TierFor — чистое отображение score → тир.
func TierFor(score int) domain.Priority {
	switch {
	case score >= criticalFrom:
		return domain.PriorityCritical
	case score >= highFrom:
		return domain.PriorityHigh
	case score >= mediumFrom:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// NearbyCounter — счётчик нерешённых обращений в окне/радиусе.
// Реализация — адаптер над транзакцией, в которой создаётся обращение:
// счёт идёт по снапшоту той же транзакции.
type NearbyCounter interface {
	CountUnresolvedNearby(ctx context.Context, lat, lon, radiusM float64, since time.Time) (int, error)
}

type Scorer struct {
	Log          *log.Logger
	WindowDays   int
	RadiusMeters float64
}

func NewScorer(l *log.Logger, windowDays int, radiusM float64) *Scorer {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	if radiusM <= 0 {
		radiusM = DefaultRadiusMeters
	}
	return &Scorer{Log: l, WindowDays: windowDays, RadiusMeters: radiusM}
}

// Compute считает тир нового обращения. Создание обращения — инвариант,
// который скорер валить не вправе: любая ошибка счёта (битые координаты,
// транзиентный сбой БД) → warn в лог и дефолтный medium.
func (s *Scorer) Compute(ctx context.Context, counter NearbyCounter, lat, lon float64, category string) domain.Priority {
	if !domain.ValidCoordinates(lat, lon) {
		s.warn("bad coordinates lat=%f lon=%f, fallback to medium", lat, lon)
		return domain.PriorityMedium
	}

	since := time.Now().UTC().AddDate(0, 0, -s.WindowDays)
	n, err := counter.CountUnresolvedNearby(ctx, lat, lon, s.RadiusMeters, since)
	if err != nil {
		s.warn("nearby count failed: %v, fallback to medium", err)
		return domain.PriorityMedium
	}

	score := n * SeverityWeight(category)
	tier := TierFor(score)
	if s.Log != nil {
		s.Log.Printf("score: nearby=%d weight=%d score=%d tier=%s", n, SeverityWeight(category), score, tier)
	}
	return tier
}

func (s *Scorer) warn(format string, args ...any) {
	if s.Log != nil {
		s.Log.Printf("lvl=warn "+format, args...)
	}
}
