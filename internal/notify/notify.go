// Package notify — уведомление автора о резолве обращения.
// Fire-and-forget: реальная доставка (SMS/почта) живёт во внешнем
// сервисе, здесь — контрактная обёртка с поглощением ошибок.
package notify

import (
	"context"
	"log"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
)

// LogNotifier пишет событие в лог. Продовая реализация дергает внешний
// диспетчер уведомлений; интерфейс тот же.
type LogNotifier struct {
	Log *log.Logger
}

func NewLog(l *log.Logger) *LogNotifier { return &LogNotifier{Log: l} }

// NotifyResolved не блокирует вызывающего и не возвращает ошибок:
// падение уведомления не касается уже закоммиченного резолва.
func (n *LogNotifier) NotifyResolved(_ context.Context, userID domain.UserID, reportID domain.ReportID, title string) {
	go n.Log.Printf("resolved: user=%s report=%s title=%q", userID, reportID, title)
}
