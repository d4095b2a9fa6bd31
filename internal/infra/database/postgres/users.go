package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
)

func (r *PGRepo) UserByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	q := r.qb().Select("id", "phone", "name", "created_at").
		From(r.tbl("users")).Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("UserByID", sqlStr, args)

	var u domain.User
	err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&u.ID, &u.Phone, &u.Name, &u.CreatedAt)
	if err != nil {
		return domain.User{}, mapPgErr(err)
	}
	return u, nil
}
