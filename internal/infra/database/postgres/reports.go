package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/priority"
)

const reportCols = `id, user_id, title, description, category, department,
	latitude, longitude, photo_url, audio_url, priority, is_resolved,
	resolved_at, resolved_by, assigned_to, created_at, updated_at`

func scanReport(row pgx.Row) (domain.Report, error) {
	var rep domain.Report
	err := row.Scan(
		&rep.ID, &rep.UserID, &rep.Title, &rep.Description, &rep.Category, &rep.Department,
		&rep.Latitude, &rep.Longitude, &rep.PhotoURL, &rep.AudioURL, &rep.Priority, &rep.IsResolved,
		&rep.ResolvedAt, &rep.ResolvedBy, &rep.AssignedTo, &rep.CreatedAt, &rep.UpdatedAt,
	)
	return rep, err
}

// txNearbyCounter — адаптер для скорера: счёт идёт по снапшоту той же
// транзакции, в которой вставляется обращение.
type txNearbyCounter struct {
	tx pgx.Tx
	r  *PGRepo
}

func (c txNearbyCounter) CountUnresolvedNearby(ctx context.Context, lat, lon, radiusM float64, since time.Time) (int, error) {
	// haversine на сфере радиусом 6 371 000 м; считаем в SQL,
	// чтобы не таскать кандидатов в приложение
	q := fmt.Sprintf(`
		SELECT count(*) FROM %s
		WHERE is_resolved = FALSE
		  AND created_at >= $1
		  AND %f * 2 * asin(sqrt(
		        power(sin(radians(latitude - $2) / 2), 2) +
		        cos(radians($2)) * cos(radians(latitude)) *
		        power(sin(radians(longitude - $3) / 2), 2)
		  )) <= $4`,
		c.r.tbl("reports"), priority.EarthRadiusM)

	var n int
	if err := c.tx.QueryRow(ctx, q, since, lat, lon, radiusM).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CreateReport: одна транзакция — авто-приоритет (если запрошен),
// вставка обращения, спавн соц-поста. Nearby-счёт видит снапшот
// транзакции, так что он консистентен со вставляемой строкой.
func (r *PGRepo) CreateReport(ctx context.Context, draft domain.ReportDraft) (domain.Report, error) {
	var out domain.Report
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		tier := draft.Priority
		if tier == domain.PriorityAuto {
			tier = r.scorer.Compute(ctx, txNearbyCounter{tx: tx, r: r},
				draft.Latitude, draft.Longitude, draft.Category)
		}

		q := r.qb().Insert(r.tbl("reports")).
			Columns("user_id", "title", "description", "category", "department",
				"latitude", "longitude", "photo_url", "audio_url", "priority").
			Values(draft.UserID, draft.Title, draft.Description, draft.Category, draft.Department,
				draft.Latitude, draft.Longitude, draft.PhotoURL, draft.AudioURL, tier).
			Suffix("RETURNING " + reportCols)

		sqlStr, args, _ := q.ToSql()
		r.logSQL("CreateReport", sqlStr, args)

		rep, err := scanReport(tx.QueryRow(ctx, sqlStr, args...))
		if err != nil {
			return fmt.Errorf("insert report: %w", mapPgErr(err))
		}

		// соц-пост 1:1; unique(report_id) ловит дубликат как conflict
		qp := r.qb().Insert(r.tbl("social_posts")).
			Columns("report_id").Values(rep.ID)
		sqlStr, args, _ = qp.ToSql()
		r.logSQL("CreateReport.post", sqlStr, args)
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("spawn social post: %w", mapPgErr(err))
		}

		out = rep
		return nil
	})
	if err != nil {
		return domain.Report{}, err
	}
	r.logger.Printf("CreateReport ok id=%s priority=%s", out.ID, out.Priority)
	return out, nil
}

func (r *PGRepo) ReportByID(ctx context.Context, id domain.ReportID) (domain.Report, error) {
	q := r.qb().Select(reportCols).From(r.tbl("reports")).Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("ReportByID", sqlStr, args)

	rep, err := scanReport(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Report{}, mapPgErr(err)
	}
	return rep, nil
}

// applyReportFilter — типизированный фильтр → условия билдера. Каждое
// поле независимо опционально.
func applyReportFilter(sb sq.SelectBuilder, f domain.ReportFilter) sq.SelectBuilder {
	switch f.Tab {
	case domain.TabOpen:
		sb = sb.Where(sq.Eq{"is_resolved": false})
	case domain.TabResolved:
		sb = sb.Where(sq.Eq{"is_resolved": true})
	case domain.TabMine:
		if f.OwnerID != nil {
			sb = sb.Where(sq.Eq{"user_id": *f.OwnerID})
		}
	}
	if f.Category != "" && f.Category != "all" {
		sb = sb.Where(sq.Eq{"category": f.Category})
	}
	if f.Priority != "" && f.Priority != "all" {
		sb = sb.Where(sq.Eq{"priority": f.Priority})
	}
	if f.Resolved != nil {
		sb = sb.Where(sq.Eq{"is_resolved": *f.Resolved})
	}
	return sb
}

func (r *PGRepo) ReportsList(ctx context.Context, f domain.ReportFilter, p domain.Page) ([]domain.Report, error) {
	p = p.Norm()
	sb := r.qb().Select(reportCols).From(r.tbl("reports"))
	sb = applyReportFilter(sb, f).
		OrderBy("created_at DESC").
		Limit(uint64(p.Limit)).Offset(uint64(p.Offset))

	sqlStr, args, _ := sb.ToSql()
	r.logSQL("ReportsList", sqlStr, args)
	return r.queryReports(ctx, "ReportsList", sqlStr, args)
}

func (r *PGRepo) ReportsNearby(ctx context.Context, f domain.NearbyFilter, p domain.Page) ([]domain.Report, error) {
	p = p.Norm()
	dist := fmt.Sprintf(`%f * 2 * asin(sqrt(
		power(sin(radians(latitude - ?) / 2), 2) +
		cos(radians(?)) * cos(radians(latitude)) *
		power(sin(radians(longitude - ?) / 2), 2)))`, priority.EarthRadiusM)

	sb := r.qb().Select(reportCols).From(r.tbl("reports")).
		Where(sq.Expr(dist+" <= ?", f.Latitude, f.Latitude, f.Longitude, f.RadiusM)).
		Where(sq.Eq{"is_resolved": false}).
		OrderBy("created_at DESC").
		Limit(uint64(p.Limit)).Offset(uint64(p.Offset))

	sqlStr, args, _ := sb.ToSql()
	r.logSQL("ReportsNearby", sqlStr, args)
	return r.queryReports(ctx, "ReportsNearby", sqlStr, args)
}

func (r *PGRepo) AdminReportsList(ctx context.Context, f domain.AdminReportFilter, p domain.Page) ([]domain.Report, error) {
	p = p.Norm()
	sb := r.qb().Select(reportCols).From(r.tbl("reports"))
	if f.Department != "" && f.Department != "all" {
		sb = sb.Where(sq.Eq{"department": f.Department})
	}
	if f.Priority != "" && f.Priority != "all" {
		sb = sb.Where(sq.Eq{"priority": f.Priority})
	}
	if f.Resolved != nil {
		sb = sb.Where(sq.Eq{"is_resolved": *f.Resolved})
	}
	if f.AssignedTo != nil {
		sb = sb.Where(sq.Eq{"assigned_to": *f.AssignedTo})
	}
	// триаж: критичное сверху, свежее раньше
	sb = sb.OrderBy(priorityOrder(), "created_at DESC").
		Limit(uint64(p.Limit)).Offset(uint64(p.Offset))

	sqlStr, args, _ := sb.ToSql()
	r.logSQL("AdminReportsList", sqlStr, args)
	return r.queryReports(ctx, "AdminReportsList", sqlStr, args)
}

// priorityOrder — CASE для триажной сортировки, порядок тиров берётся из
// domain.PriorityRank: чем выше ранг, тем раньше строка.
func priorityOrder() string {
	tiers := []domain.Priority{
		domain.PriorityCritical, domain.PriorityHigh,
		domain.PriorityMedium, domain.PriorityLow,
	}
	var b strings.Builder
	b.WriteString("CASE priority")
	for _, t := range tiers {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", t, -domain.PriorityRank(t))
	}
	// неизвестный тир — в самый хвост
	b.WriteString(" ELSE 1 END")
	return b.String()
}

func (r *PGRepo) queryReports(ctx context.Context, op, sqlStr string, args []any) ([]domain.Report, error) {
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("%s query error: %v", op, err)
		return nil, mapPgErr(err)
	}
	defer rows.Close()

	var res []domain.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			r.logger.Printf("%s scan error: %v", op, err)
			return nil, mapPgErr(err)
		}
		res = append(res, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgErr(err)
	}
	r.logger.Printf("%s ok count=%d", op, len(res))
	return res, nil
}

// UpdateReport — правка владельцем до резолва. Чужое обращение → forbidden,
// зарезолвленное → conflict.
func (r *PGRepo) UpdateReport(ctx context.Context, id domain.ReportID, owner domain.UserID, patch domain.ReportPatch) (domain.Report, error) {
	var out domain.Report
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		cur, err := r.lockReport(ctx, tx, id)
		if err != nil {
			return err
		}
		if cur.UserID != owner {
			return domain.ErrForbidden
		}
		if cur.IsResolved {
			return domain.ErrConflict
		}

		set := map[string]any{"updated_at": sq.Expr("now()")}
		if patch.Title != nil {
			set["title"] = *patch.Title
		}
		if patch.Description != nil {
			set["description"] = *patch.Description
		}
		if patch.Category != nil {
			set["category"] = *patch.Category
		}

		q := r.qb().Update(r.tbl("reports")).SetMap(set).
			Where(sq.Eq{"id": id}).
			Suffix("RETURNING " + reportCols)
		sqlStr, args, _ := q.ToSql()
		r.logSQL("UpdateReport", sqlStr, args)

		out, err = scanReport(tx.QueryRow(ctx, sqlStr, args...))
		return mapPgErr(err)
	})
	if err != nil {
		return domain.Report{}, err
	}
	return out, nil
}

// ResolveReport: повторный резолв — conflict (мутация не случилась,
// инвалидация не нужна).
func (r *PGRepo) ResolveReport(ctx context.Context, id domain.ReportID, admin domain.AdminID) (domain.Report, error) {
	var out domain.Report
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		cur, err := r.lockReport(ctx, tx, id)
		if err != nil {
			return err
		}
		if cur.IsResolved {
			return domain.ErrConflict
		}

		q := r.qb().Update(r.tbl("reports")).
			SetMap(map[string]any{
				"is_resolved": true,
				"resolved_at": sq.Expr("now()"),
				"resolved_by": admin,
				"updated_at":  sq.Expr("now()"),
			}).
			Where(sq.Eq{"id": id}).
			Suffix("RETURNING " + reportCols)
		sqlStr, args, _ := q.ToSql()
		r.logSQL("ResolveReport", sqlStr, args)

		out, err = scanReport(tx.QueryRow(ctx, sqlStr, args...))
		return mapPgErr(err)
	})
	if err != nil {
		return domain.Report{}, err
	}
	r.logger.Printf("ResolveReport ok id=%s by=%s", id, admin)
	return out, nil
}

func (r *PGRepo) AssignReport(ctx context.Context, id domain.ReportID, assignee domain.AdminID) (domain.Report, error) {
	q := r.qb().Update(r.tbl("reports")).
		SetMap(map[string]any{
			"assigned_to": assignee,
			"updated_at":  sq.Expr("now()"),
		}).
		Where(sq.Eq{"id": id, "is_resolved": false}).
		Suffix("RETURNING " + reportCols)
	sqlStr, args, _ := q.ToSql()
	r.logSQL("AssignReport", sqlStr, args)

	rep, err := scanReport(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Report{}, mapPgErr(err)
	}
	return rep, nil
}

func (r *PGRepo) DeleteReport(ctx context.Context, id domain.ReportID, owner domain.UserID) (domain.Report, error) {
	var out domain.Report
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		cur, err := r.lockReport(ctx, tx, id)
		if err != nil {
			return err
		}
		if cur.UserID != owner {
			return domain.ErrForbidden
		}
		// соц-пост и его голоса/комменты уходят каскадом (FK)
		sqlStr, args, _ := r.qb().Delete(r.tbl("reports")).Where(sq.Eq{"id": id}).ToSql()
		r.logSQL("DeleteReport", sqlStr, args)
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			return mapPgErr(err)
		}
		out = cur
		return nil
	})
	if err != nil {
		return domain.Report{}, err
	}
	return out, nil
}

// lockReport — SELECT ... FOR UPDATE внутри транзакции мутации.
func (r *PGRepo) lockReport(ctx context.Context, tx querier, id domain.ReportID) (domain.Report, error) {
	q := r.qb().Select(reportCols).From(r.tbl("reports")).
		Where(sq.Eq{"id": id}).Suffix("FOR UPDATE")
	sqlStr, args, _ := q.ToSql()
	rep, err := scanReport(tx.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Report{}, mapPgErr(err)
	}
	return rep, nil
}
