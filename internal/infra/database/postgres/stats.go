package postgres

import (
	"context"
	"fmt"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
)

// CommunityStats — агрегаты для городской сводки (кэшируется ~15 мин).
func (r *PGRepo) CommunityStats(ctx context.Context) (domain.CommunityStats, error) {
	var st domain.CommunityStats
	reports := r.tbl("reports")

	q := fmt.Sprintf(`
		SELECT count(*),
		       count(*) FILTER (WHERE is_resolved),
		       COALESCE(avg(EXTRACT(EPOCH FROM (resolved_at - created_at)) / 3600.0)
		                FILTER (WHERE is_resolved), 0)
		FROM %s`, reports)
	r.logSQL("CommunityStats", q, nil)

	if err := r.pool.QueryRow(ctx, q).Scan(&st.TotalReports, &st.ResolvedReports, &st.AvgResolutionHours); err != nil {
		return domain.CommunityStats{}, mapPgErr(err)
	}
	if st.TotalReports > 0 {
		st.ResolvedPercent = float64(st.ResolvedReports) * 100 / float64(st.TotalReports)
	}

	st.ByCategory = map[string]int{}
	st.ByPriority = map[string]int{}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT category, count(*) FROM %s GROUP BY category`, reports))
	if err != nil {
		return domain.CommunityStats{}, mapPgErr(err)
	}
	defer rows.Close()
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return domain.CommunityStats{}, mapPgErr(err)
		}
		st.ByCategory[cat] = n
	}
	if err := rows.Err(); err != nil {
		return domain.CommunityStats{}, mapPgErr(err)
	}

	prows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT priority, count(*) FROM %s GROUP BY priority`, reports))
	if err != nil {
		return domain.CommunityStats{}, mapPgErr(err)
	}
	defer prows.Close()
	for prows.Next() {
		var pr string
		var n int
		if err := prows.Scan(&pr, &n); err != nil {
			return domain.CommunityStats{}, mapPgErr(err)
		}
		st.ByPriority[pr] = n
	}
	if err := prows.Err(); err != nil {
		return domain.CommunityStats{}, mapPgErr(err)
	}

	return st, nil
}
