package domain

import (
	"context"
)

// Пагинация (limit/offset — как отдаёт мобильный клиент)
type Page struct {
	Limit  int
	Offset int
}

// Norm ограничивает лимит и отрицательные смещения.
func (p Page) Norm() Page {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Вкладки публичного списка
type ReportTab string

const (
	TabAll      ReportTab = "all"
	TabOpen     ReportTab = "open"
	TabResolved ReportTab = "resolved"
	TabMine     ReportTab = "mine"
)

// Типизированный фильтр списков обращений. Каждое поле независимо
// опционально; пустая строка == «без фильтра». Компилируется в
// параметризованный SQL билдером (squirrel), без ручной конкатенации.
type ReportFilter struct {
	Tab      ReportTab
	Category string
	Priority Priority // пусто — любой
	Resolved *bool    // nil — любой
	OwnerID  *UserID  // только свои (tab=mine)
}

// Фильтр админского списка (scope по роли/департаменту)
type AdminReportFilter struct {
	Department string
	Priority   Priority
	Resolved   *bool
	AssignedTo *AdminID
}

// Гео-запрос «рядом со мной»
type NearbyFilter struct {
	Latitude  float64
	Longitude float64
	RadiusM   float64 // метры
}

type PostSort string

const (
	PostSortNew PostSort = "new"
	PostSortTop PostSort = "top" // по total_score
)

type PostFilter struct {
	Sort     PostSort
	Category string
}

type AdminFilter struct {
	Role           AdminRole
	Department     string
	IncludeDeleted bool
}

type UsersRepo interface {
	Close()
	Ping(context.Context) error
	UserByID(ctx context.Context, id UserID) (User, error)
}

type ReportsRepo interface {
	// Создание: транзакция (вставка + авто-приоритет + спавн соц-поста).
	// Авто-скоринг считает nearby внутри той же транзакции.
	CreateReport(ctx context.Context, draft ReportDraft) (Report, error)
	ReportByID(ctx context.Context, id ReportID) (Report, error)
	ReportsList(ctx context.Context, f ReportFilter, p Page) ([]Report, error)
	ReportsNearby(ctx context.Context, f NearbyFilter, p Page) ([]Report, error)
	AdminReportsList(ctx context.Context, f AdminReportFilter, p Page) ([]Report, error)

	// Правка владельцем до резолва; чужое/зарезолвленное — ошибка.
	UpdateReport(ctx context.Context, id ReportID, owner UserID, patch ReportPatch) (Report, error)
	// Резолв админом; повторный резолв — ErrConflict.
	ResolveReport(ctx context.Context, id ReportID, admin AdminID) (Report, error)
	AssignReport(ctx context.Context, id ReportID, assignee AdminID) (Report, error)
	DeleteReport(ctx context.Context, id ReportID, owner UserID) (Report, error)

	CommunityStats(ctx context.Context) (CommunityStats, error)
}

type SocialRepo interface {
	PostsList(ctx context.Context, f PostFilter, p Page, viewer *UserID) ([]SocialPost, error)
	PostByID(ctx context.Context, id PostID) (SocialPost, error)
	// Голос: +1/-1, повтор того же значения снимает голос (toggle).
	// Счётчики пересчитываются из строк голосов в той же транзакции.
	CastVote(ctx context.Context, postID PostID, voter UserID, value int) (SocialPost, error)
	AddComment(ctx context.Context, postID PostID, author UserID, text string) (SocialComment, error)
	CommentsList(ctx context.Context, postID PostID, p Page) ([]SocialComment, error)
	TrackView(ctx context.Context, postID PostID) error
}

type AdminsRepo interface {
	CreateAdmin(ctx context.Context, a Admin) (Admin, error)
	AdminByID(ctx context.Context, id AdminID) (Admin, error)
	AdminByLogin(ctx context.Context, login string) (Admin, error)
	AdminsList(ctx context.Context, f AdminFilter, p Page) ([]Admin, error)
	UpdateAdmin(ctx context.Context, id AdminID, name, department *string, role *AdminRole) (Admin, error)
	// Soft delete / restore (is_active)
	DeactivateAdmin(ctx context.Context, id AdminID) error
	RestoreAdmin(ctx context.Context, id AdminID) error
}

// Уведомление автору о резолве. Fire-and-forget: ошибки только в лог.
type Notifier interface {
	NotifyResolved(ctx context.Context, userID UserID, reportID ReportID, title string)
}

// Сроки жизни кэша по путям чтения (секунды) — задаются конфигом,
// глобального дефолта нет.
type CacheTTL struct {
	List   int
	Detail int
	Stats  int
	Social int
	Admins int
}
