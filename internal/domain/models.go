package domain

import (
	"time"

	"github.com/google/uuid"
)

// Базовые идентификаторы
type UserID = uuid.UUID
type ReportID = uuid.UUID
type PostID = uuid.UUID
type CommentID = uuid.UUID
type AdminID = uuid.UUID

// Приоритет обращения. Строгий порядок: low < medium < high < critical.
// PriorityAuto — сентинел «посчитай сам» (скорер), в БД не хранится.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
	PriorityAuto     Priority = "auto"
)

// ValidPriority — явный приоритет из запроса (auto тоже допустим).
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical, PriorityAuto:
		return true
	}
	return false
}

// PriorityRank — для сортировки/сравнения (auto не участвует).
func PriorityRank(p Priority) int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	case PriorityCritical:
		return 3
	}
	return -1
}

// Роли админов
type AdminRole string

const (
	RoleSuperAdmin AdminRole = "superadmin"
	RoleModerator  AdminRole = "moderator"
	RoleStaff      AdminRole = "staff"
)

func ValidAdminRole(r AdminRole) bool {
	switch r {
	case RoleSuperAdmin, RoleModerator, RoleStaff:
		return true
	}
	return false
}

// Гражданин. Авторизация по одноразовым кодам живёт в отдельном сервисе,
// здесь только то, что нужно для токенов и владения обращениями.
type User struct {
	ID        UserID    `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Админ (триаж/резолв обращений)
type Admin struct {
	ID         AdminID   `json:"id"`
	Login      string    `json:"login"`
	PassHash   []byte    `json:"-"` // argon2id, наружу не отдаём
	Name       string    `json:"name"`
	Role       AdminRole `json:"role"`
	Department string    `json:"department"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Обращение гражданина
type Report struct {
	ID          ReportID `json:"id"`
	UserID      UserID   `json:"user_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Department  string   `json:"department"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	PhotoURL    string   `json:"photo_url,omitempty"`
	AudioURL    string   `json:"audio_url,omitempty"`

	Priority   Priority   `json:"priority"`
	IsResolved bool       `json:"is_resolved"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy *AdminID   `json:"resolved_by,omitempty"`
	AssignedTo *AdminID   `json:"assigned_to,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Черновик обращения (вход create)
type ReportDraft struct {
	UserID      UserID
	Title       string
	Description string
	Category    string
	Department  string
	Latitude    float64
	Longitude   float64
	PhotoURL    string
	AudioURL    string
	Priority    Priority // явный тир или PriorityAuto
}

// Правки владельца (до резолва). nil — поле не меняем.
type ReportPatch struct {
	Title       *string
	Description *string
	Category    *string
}

// Пост соц-ленты; создаётся автоматически вместе с обращением (1:1)
type SocialPost struct {
	ID         PostID    `json:"id"`
	ReportID   ReportID  `json:"report_id"`
	Upvotes    int       `json:"upvotes"`
	Downvotes  int       `json:"downvotes"`
	TotalScore int       `json:"total_score"`
	Views      int       `json:"views"`
	CreatedAt  time.Time `json:"created_at"`

	// Вложенное обращение для выдачи ленты
	Report *Report `json:"report,omitempty"`
	// Голос запрашивающего (-1/0/+1), только для авторизованных
	ViewerVote int `json:"viewer_vote"`
}

type SocialComment struct {
	ID        CommentID `json:"id"`
	PostID    PostID    `json:"post_id"`
	UserID    UserID    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Сводная статистика по городу (агрегаты, кэш ~15 мин)
type CommunityStats struct {
	TotalReports       int            `json:"total_reports"`
	ResolvedReports    int            `json:"resolved_reports"`
	ResolvedPercent    float64        `json:"resolved_percent"`
	ByCategory         map[string]int `json:"by_category"`
	ByPriority         map[string]int `json:"by_priority"`
	AvgResolutionHours float64        `json:"avg_resolution_hours"`
}
