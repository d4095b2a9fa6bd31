// Package cache — ядро кэш-слоя: детерминированные ключи, шаблонная
// инвалидация по мутациям и bypass-политика для чувствительных чтений.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
)

// Неймспейсы ключей. Строки попарно различны, разделитель ":" входит в
// каждый шаблон — ключи одного неймспейса не матчатся шаблонами другого
// (в т.ч. "report:*" не задевает "reports:...").
const (
	NSReports        = "reports"         // публичные списки
	NSReportDetail   = "report"          // деталка по id
	NSNearby         = "nearby"          // гео-списки
	NSUserReports    = "user_reports"    // «мои обращения»
	NSAdminReports   = "admin_reports"   // админские списки (роль/департамент)
	NSSocialPosts    = "social_posts"    // соц-лента
	NSSocialComments = "social_comments" // комменты поста
	NSStats          = "stats"           // агрегаты
	NSAdmins         = "admins"          // списки/профили админов
)

// GuestIdentity — нормализованная «личность» для неперсонализированных
// чтений: аноним и неавторизованный делят одну запись.
const GuestIdentity = "guest"

// Keys строит ключи списков: namespace + ":" + sha256(отсортированные
// "k=v" компоненты). Компоненты сортируются, порядок не зависит от
// порядка map. Пустой фильтр и явный "all" нормализуются одинаково.
type Keys struct{}

func (Keys) build(ns string, parts []string) string {
	sort.Strings(parts)
	sum := sha256.Sum256([]byte(strings.Join(parts, "&")))
	return ns + ":" + hex.EncodeToString(sum[:])
}

// norm: отсутствие фильтра и явное "all"/"" — один и тот же компонент.
func norm(v string) string {
	if v == "" || v == "all" {
		return "all"
	}
	return v
}

func identity(viewer *domain.UserID) string {
	if viewer == nil {
		return GuestIdentity
	}
	return viewer.String()
}

func pageParts(p domain.Page) []string {
	return []string{
		fmt.Sprintf("limit=%d", p.Limit),
		fmt.Sprintf("offset=%d", p.Offset),
	}
}

func boolPart(name string, v *bool) string {
	if v == nil {
		return name + "=all"
	}
	return fmt.Sprintf("%s=%t", name, *v)
}

// ReportsList — публичный список. Выдача не зависит от читателя, поэтому
// личность в ключ не входит: аноним и авторизованный делят одну запись.
// Вкладка mine персонализирована и уходит в неймспейс владельца.
func (k Keys) ReportsList(f domain.ReportFilter, p domain.Page) string {
	parts := append(pageParts(p),
		"tab="+norm(string(f.Tab)),
		"category="+norm(f.Category),
		"priority="+norm(string(f.Priority)),
		boolPart("resolved", f.Resolved),
	)
	ns := NSReports
	if f.Tab == domain.TabMine && f.OwnerID != nil {
		// свои обращения — отдельный неймспейс, чтобы инвалидировать
		// адресно по владельцу
		ns = NSUserReports + ":" + f.OwnerID.String()
	}
	return k.build(ns, parts)
}

func (k Keys) ReportDetail(id domain.ReportID) string {
	return NSReportDetail + ":" + id.String()
}

func (k Keys) Nearby(f domain.NearbyFilter, p domain.Page) string {
	parts := append(pageParts(p),
		// округляем до ~110 м, чтобы близкие запросы делили запись
		fmt.Sprintf("lat=%.3f", f.Latitude),
		fmt.Sprintf("lon=%.3f", f.Longitude),
		fmt.Sprintf("radius=%.0f", f.RadiusM),
	)
	return k.build(NSNearby, parts)
}

func (k Keys) AdminReports(f domain.AdminReportFilter, p domain.Page) string {
	parts := append(pageParts(p),
		"department="+norm(f.Department),
		"priority="+norm(string(f.Priority)),
		boolPart("resolved", f.Resolved),
	)
	ns := NSAdminReports
	if f.AssignedTo != nil {
		ns = NSAdminReports + ":assigned:" + f.AssignedTo.String()
	}
	return k.build(ns, parts)
}

// SocialPosts персонализирован (viewer_vote в выдаче) — личность в ключе.
func (k Keys) SocialPosts(f domain.PostFilter, p domain.Page, viewer *domain.UserID) string {
	parts := append(pageParts(p),
		"sort="+norm(string(f.Sort)),
		"category="+norm(f.Category),
		"viewer="+identity(viewer),
	)
	return k.build(NSSocialPosts, parts)
}

func (k Keys) SocialComments(postID domain.PostID, p domain.Page) string {
	parts := pageParts(p)
	return k.build(NSSocialComments+":"+postID.String(), parts)
}

func (k Keys) CommunityStats() string {
	return NSStats + ":community"
}

func (k Keys) AdminsList(f domain.AdminFilter, p domain.Page) string {
	parts := append(pageParts(p),
		"role="+norm(string(f.Role)),
		"department="+norm(f.Department),
		fmt.Sprintf("deleted=%t", f.IncludeDeleted),
	)
	return k.build(NSAdmins+":list", parts)
}

func (k Keys) AdminProfile(id domain.AdminID) string {
	return NSAdmins + ":profile:" + id.String()
}
