package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
)

const adminCols = "id, login, pass_hash, name, role, department, is_active, created_at, updated_at"

func (r *PGRepo) CreateAdmin(ctx context.Context, a domain.Admin) (domain.Admin, error) {
	q := r.qb().Insert(r.tbl("admins")).
		Columns("login", "pass_hash", "name", "role", "department").
		Values(a.Login, a.PassHash, a.Name, a.Role, a.Department).
		Suffix("RETURNING " + adminCols)
	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateAdmin", sqlStr, args)

	out, err := r.scanAdmin(ctx, sqlStr, args)
	if err != nil {
		return domain.Admin{}, err
	}
	r.logger.Printf("CreateAdmin ok id=%s login=%s role=%s", out.ID, out.Login, out.Role)
	return out, nil
}

func (r *PGRepo) AdminByID(ctx context.Context, id domain.AdminID) (domain.Admin, error) {
	q := r.qb().Select(adminCols).From(r.tbl("admins")).Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("AdminByID", sqlStr, args)
	return r.scanAdmin(ctx, sqlStr, args)
}

func (r *PGRepo) AdminByLogin(ctx context.Context, login string) (domain.Admin, error) {
	q := r.qb().Select(adminCols).From(r.tbl("admins")).
		Where(sq.Eq{"login": login, "is_active": true})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("AdminByLogin", sqlStr, args)
	return r.scanAdmin(ctx, sqlStr, args)
}

func (r *PGRepo) AdminsList(ctx context.Context, f domain.AdminFilter, p domain.Page) ([]domain.Admin, error) {
	p = p.Norm()
	sb := r.qb().Select(adminCols).From(r.tbl("admins"))
	if f.Role != "" && f.Role != "all" {
		sb = sb.Where(sq.Eq{"role": f.Role})
	}
	if f.Department != "" && f.Department != "all" {
		sb = sb.Where(sq.Eq{"department": f.Department})
	}
	if !f.IncludeDeleted {
		sb = sb.Where(sq.Eq{"is_active": true})
	}
	sb = sb.OrderBy("login ASC").Limit(uint64(p.Limit)).Offset(uint64(p.Offset))

	sqlStr, args, _ := sb.ToSql()
	r.logSQL("AdminsList", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapPgErr(err)
	}
	defer rows.Close()

	var res []domain.Admin
	for rows.Next() {
		var a domain.Admin
		if err := rows.Scan(&a.ID, &a.Login, &a.PassHash, &a.Name, &a.Role,
			&a.Department, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, mapPgErr(err)
		}
		res = append(res, a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgErr(err)
	}
	r.logger.Printf("AdminsList ok count=%d", len(res))
	return res, nil
}

func (r *PGRepo) UpdateAdmin(ctx context.Context, id domain.AdminID, name, department *string, role *domain.AdminRole) (domain.Admin, error) {
	set := map[string]any{"updated_at": sq.Expr("now()")}
	if name != nil {
		set["name"] = *name
	}
	if department != nil {
		set["department"] = *department
	}
	if role != nil {
		set["role"] = *role
	}

	q := r.qb().Update(r.tbl("admins")).SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + adminCols)
	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateAdmin", sqlStr, args)
	return r.scanAdmin(ctx, sqlStr, args)
}

func (r *PGRepo) DeactivateAdmin(ctx context.Context, id domain.AdminID) error {
	return r.setAdminActive(ctx, "DeactivateAdmin", id, false)
}

func (r *PGRepo) RestoreAdmin(ctx context.Context, id domain.AdminID) error {
	return r.setAdminActive(ctx, "RestoreAdmin", id, true)
}

func (r *PGRepo) setAdminActive(ctx context.Context, op string, id domain.AdminID, active bool) error {
	q := r.qb().Update(r.tbl("admins")).
		SetMap(map[string]any{"is_active": active, "updated_at": sq.Expr("now()")}).
		Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	r.logSQL(op, sqlStr, args)

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapPgErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGRepo) scanAdmin(ctx context.Context, sqlStr string, args []any) (domain.Admin, error) {
	var a domain.Admin
	err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(
		&a.ID, &a.Login, &a.PassHash, &a.Name, &a.Role,
		&a.Department, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Admin{}, mapPgErr(err)
	}
	return a, nil
}
