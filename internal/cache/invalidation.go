package cache

import (
	"context"
	"log"
	"time"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
)

// Router сопоставляет мутации наборам шаблонов для чистки. Хендлер зовёт
// соответствующий метод строго ПОСЛЕ коммита транзакции: чистка до
// коммита позволила бы конкурентному чтению переналить в кэш ещё
// не изменённые данные. Ошибки чистки (кэш недоступен) не влияют на
// уже закоммиченную мутацию — кэш сам отдаст промахи.
//
// Шаблоны — супермножество возможных устаревших ключей: перелить кэш
// лишний раз безопасно, недочистить — баг со stale-чтениями.
type Router struct {
	Cache  domain.Cache
	Log    *log.Logger
	Bypass ReadPolicy // окно обхода для админских списков
}

func NewRouter(c domain.Cache, l *log.Logger, bypassWindow time.Duration) *Router {
	return &Router{
		Cache:  c,
		Log:    l,
		Bypass: ReadPolicy{Cache: c, Window: bypassWindow},
	}
}

func (r *Router) purge(ctx context.Context, patterns ...string) {
	for _, p := range patterns {
		r.Cache.DelPattern(ctx, p)
	}
	if r.Log != nil {
		r.Log.Printf("invalidate: %v", patterns)
	}
}

// ReportCreated: новое обращение видно в списках владельца, гео-выборках,
// агрегатах и (через авто-созданный пост) в соц-ленте. Глобальные списки
// чистим тоже — обращение появляется и там.
func (r *Router) ReportCreated(ctx context.Context, owner domain.UserID) {
	r.purge(ctx,
		NSReports+":*",
		NSUserReports+":"+owner.String()+":*",
		NSNearby+":*",
		NSStats+":*",
		NSSocialPosts+":*",
	)
}

// ReportUpdated: правка владельцем до резолва — меняется контент в
// админских списках триажа.
func (r *Router) ReportUpdated(ctx context.Context, id domain.ReportID) {
	r.purge(ctx,
		NSReportDetail+":"+id.String(),
		NSAdminReports+":*",
	)
}

// ReportResolved: самая широкая чистка — деталка + все списки (глобальные,
// гео, владельца, админские, соц-лента) + агрегаты.
func (r *Router) ReportResolved(ctx context.Context, id domain.ReportID, owner domain.UserID) {
	r.purge(ctx,
		NSReportDetail+":"+id.String(),
		NSReports+":*",
		NSNearby+":*",
		NSUserReports+":"+owner.String()+":*",
		NSAdminReports+":*",
		NSSocialPosts+":*",
		NSStats+":*",
	)
}

func (r *Router) ReportDeleted(ctx context.Context, id domain.ReportID, owner domain.UserID) {
	r.purge(ctx,
		NSReportDetail+":"+id.String(),
		NSReports+":*",
		NSNearby+":*",
		NSUserReports+":"+owner.String()+":*",
		NSAdminReports+":*",
		NSSocialPosts+":*",
		NSStats+":*",
	)
}

// ReportAssigned: деталка + админские списки (включая assigned-список
// назначенного — его неймспейс под "admin_reports:*").
func (r *Router) ReportAssigned(ctx context.Context, id domain.ReportID) {
	r.purge(ctx,
		NSReportDetail+":"+id.String(),
		NSAdminReports+":*",
	)
}

// PostVoted: счётчики голосов видны во всех списках ленты.
func (r *Router) PostVoted(ctx context.Context) {
	r.purge(ctx, NSSocialPosts+":*")
}

// CommentAdded: лента (счётчик комментов) + комменты конкретного поста.
func (r *Router) CommentAdded(ctx context.Context, postID domain.PostID) {
	r.purge(ctx,
		NSSocialPosts+":*",
		NSSocialComments+":"+postID.String()+":*",
	)
}

// ViewTracked: изменились счётчики просмотров.
func (r *Router) ViewTracked(ctx context.Context) {
	r.purge(ctx, NSSocialPosts+":*")
}

// AdminChanged: create/update/delete/restore админа. Помимо чистки
// открываем bypass-окно: роли решают авторизацию, stale здесь недопустим.
func (r *Router) AdminChanged(ctx context.Context, id domain.AdminID) {
	r.purge(ctx,
		NSAdmins+":list:*",
		NSAdmins+":profile:"+id.String(),
	)
	r.Bypass.Mark(ctx)
}
