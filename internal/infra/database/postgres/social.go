package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
)

const postCols = `p.id, p.report_id, p.upvotes, p.downvotes, p.total_score, p.views, p.created_at`

// PostsList отдаёт ленту с вложенным обращением; для авторизованного
// viewer подмешивается его голос (персонализация входит в ключ кэша).
func (r *PGRepo) PostsList(ctx context.Context, f domain.PostFilter, p domain.Page, viewer *domain.UserID) ([]domain.SocialPost, error) {
	p = p.Norm()
	posts := r.tbl("social_posts") + " p"
	reports := r.tbl("reports") + " rep"

	cols := []string{postCols,
		"rep.id", "rep.user_id", "rep.title", "rep.description", "rep.category", "rep.department",
		"rep.latitude", "rep.longitude", "rep.photo_url", "rep.audio_url", "rep.priority",
		"rep.is_resolved", "rep.resolved_at", "rep.resolved_by", "rep.assigned_to",
		"rep.created_at", "rep.updated_at",
	}
	sb := r.qb().Select(cols...).From(posts).
		Join(reports + " ON rep.id = p.report_id")

	if viewer != nil {
		votes := r.tbl("social_votes") + " v"
		sb = sb.Column(
			"COALESCE((SELECT v.value FROM "+votes+" WHERE v.post_id = p.id AND v.user_id = ?), 0)",
			*viewer)
	}
	if f.Category != "" && f.Category != "all" {
		sb = sb.Where(sq.Eq{"rep.category": f.Category})
	}
	switch f.Sort {
	case domain.PostSortTop:
		sb = sb.OrderBy("p.total_score DESC", "p.created_at DESC")
	default:
		sb = sb.OrderBy("p.created_at DESC")
	}
	sb = sb.Limit(uint64(p.Limit)).Offset(uint64(p.Offset))

	sqlStr, args, _ := sb.ToSql()
	r.logSQL("PostsList", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("PostsList query error: %v", err)
		return nil, mapPgErr(err)
	}
	defer rows.Close()

	var res []domain.SocialPost
	for rows.Next() {
		var post domain.SocialPost
		var rep domain.Report
		dest := []any{
			&post.ID, &post.ReportID, &post.Upvotes, &post.Downvotes, &post.TotalScore, &post.Views, &post.CreatedAt,
			&rep.ID, &rep.UserID, &rep.Title, &rep.Description, &rep.Category, &rep.Department,
			&rep.Latitude, &rep.Longitude, &rep.PhotoURL, &rep.AudioURL, &rep.Priority,
			&rep.IsResolved, &rep.ResolvedAt, &rep.ResolvedBy, &rep.AssignedTo,
			&rep.CreatedAt, &rep.UpdatedAt,
		}
		if viewer != nil {
			dest = append(dest, &post.ViewerVote)
		}
		if err := rows.Scan(dest...); err != nil {
			r.logger.Printf("PostsList scan error: %v", err)
			return nil, mapPgErr(err)
		}
		post.Report = &rep
		res = append(res, post)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgErr(err)
	}
	r.logger.Printf("PostsList ok count=%d", len(res))
	return res, nil
}

func (r *PGRepo) PostByID(ctx context.Context, id domain.PostID) (domain.SocialPost, error) {
	q := r.qb().Select("id", "report_id", "upvotes", "downvotes", "total_score", "views", "created_at").
		From(r.tbl("social_posts")).Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("PostByID", sqlStr, args)

	var p domain.SocialPost
	err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(
		&p.ID, &p.ReportID, &p.Upvotes, &p.Downvotes, &p.TotalScore, &p.Views, &p.CreatedAt)
	if err != nil {
		return domain.SocialPost{}, mapPgErr(err)
	}
	return p, nil
}

// CastVote: upsert/toggle строки голоса и пересчёт счётчиков из строк
// в той же транзакции. Никаких инкрементальных дельт — конкурентные
// toggles не могут «раздвоить» счётчик, итог всегда выводим из фактов.
func (r *PGRepo) CastVote(ctx context.Context, postID domain.PostID, voter domain.UserID, value int) (domain.SocialPost, error) {
	if value != 1 && value != -1 {
		return domain.SocialPost{}, domain.ErrBadParams
	}

	var out domain.SocialPost
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		// текущий голос (если есть)
		var cur int
		q := r.qb().Select("value").From(r.tbl("social_votes")).
			Where(sq.Eq{"post_id": postID, "user_id": voter}).
			Suffix("FOR UPDATE")
		sqlStr, args, _ := q.ToSql()
		switch err := tx.QueryRow(ctx, sqlStr, args...).Scan(&cur); err {
		case nil:
		case pgx.ErrNoRows:
			cur = 0
		default:
			return mapPgErr(err)
		}

		switch {
		case cur == value:
			// повтор того же голоса — снимаем
			sqlStr, args, _ = r.qb().Delete(r.tbl("social_votes")).
				Where(sq.Eq{"post_id": postID, "user_id": voter}).ToSql()
		case cur == 0:
			sqlStr, args, _ = r.qb().Insert(r.tbl("social_votes")).
				Columns("post_id", "user_id", "value").
				Values(postID, voter, value).ToSql()
		default:
			sqlStr, args, _ = r.qb().Update(r.tbl("social_votes")).
				Set("value", value).
				Where(sq.Eq{"post_id": postID, "user_id": voter}).ToSql()
		}
		r.logSQL("CastVote", sqlStr, args)
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			return mapPgErr(err)
		}

		// пересчёт из строк голосов
		votes := r.tbl("social_votes")
		recalc := fmt.Sprintf(`
			UPDATE %s SET
				upvotes     = (SELECT count(*) FROM %s WHERE post_id = $1 AND value = 1),
				downvotes   = (SELECT count(*) FROM %s WHERE post_id = $1 AND value = -1),
				total_score = (SELECT COALESCE(sum(value), 0) FROM %s WHERE post_id = $1)
			WHERE id = $1
			RETURNING id, report_id, upvotes, downvotes, total_score, views, created_at`,
			r.tbl("social_posts"), votes, votes, votes)
		r.logSQL("CastVote.recalc", recalc, []any{postID})

		err := tx.QueryRow(ctx, recalc, postID).Scan(
			&out.ID, &out.ReportID, &out.Upvotes, &out.Downvotes, &out.TotalScore, &out.Views, &out.CreatedAt)
		return mapPgErr(err)
	})
	if err != nil {
		return domain.SocialPost{}, err
	}
	r.logger.Printf("CastVote ok post=%s score=%d", postID, out.TotalScore)
	return out, nil
}

func (r *PGRepo) AddComment(ctx context.Context, postID domain.PostID, author domain.UserID, text string) (domain.SocialComment, error) {
	q := r.qb().Insert(r.tbl("social_comments")).
		Columns("post_id", "user_id", "body").
		Values(postID, author, text).
		Suffix("RETURNING id, post_id, user_id, body, created_at")
	sqlStr, args, _ := q.ToSql()
	r.logSQL("AddComment", sqlStr, args)

	var c domain.SocialComment
	err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(
		&c.ID, &c.PostID, &c.UserID, &c.Text, &c.CreatedAt)
	if err != nil {
		return domain.SocialComment{}, mapPgErr(err)
	}
	return c, nil
}

func (r *PGRepo) CommentsList(ctx context.Context, postID domain.PostID, p domain.Page) ([]domain.SocialComment, error) {
	p = p.Norm()
	q := r.qb().Select("id", "post_id", "user_id", "body", "created_at").
		From(r.tbl("social_comments")).
		Where(sq.Eq{"post_id": postID}).
		OrderBy("created_at ASC").
		Limit(uint64(p.Limit)).Offset(uint64(p.Offset))
	sqlStr, args, _ := q.ToSql()
	r.logSQL("CommentsList", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapPgErr(err)
	}
	defer rows.Close()

	var res []domain.SocialComment
	for rows.Next() {
		var c domain.SocialComment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &c.CreatedAt); err != nil {
			return nil, mapPgErr(err)
		}
		res = append(res, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgErr(err)
	}
	return res, nil
}

func (r *PGRepo) TrackView(ctx context.Context, postID domain.PostID) error {
	q := r.qb().Update(r.tbl("social_posts")).
		Set("views", sq.Expr("views + 1")).
		Where(sq.Eq{"id": postID})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("TrackView", sqlStr, args)

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapPgErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
