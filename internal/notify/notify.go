package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Вид события уведомления.
type Kind string

const (
	KindWelcome          Kind = "welcome"
	KindAdminNewUser     Kind = "admin_new_user"
	KindBookingConfirmed Kind = "booking_confirmed"
	KindBookingUpdated   Kind = "booking_updated"
	KindBookingCanceled  Kind = "booking_canceled"
	KindBookingRestored  Kind = "booking_restored"
)

// Message — одно исходящее уведомление.
type Message struct {
	Kind Kind

	RecipientEmail string
	RecipientName  string
	// 0 — телеграм не привязан.
	TelegramID int64

	// Контекст события: "service", "trainer", "slot", "login", "email", "phone".
	Payload map[string]string
}

// Notifier — конкретный канал доставки (почта, телеграм).
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Dispatcher — очередь уведомлений, развязывающая бизнес-логику
// и доставку. Publish никогда не блокирует вызывающего; доставка
// best-effort: ошибки логируются и не ретраятся.
type Dispatcher struct {
	queue     chan Message
	notifiers []Notifier
	timeout   time.Duration

	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewDispatcher запускает воркер доставки.
func NewDispatcher(buffer int, notifiers ...Notifier) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}

	d := &Dispatcher{
		queue:     make(chan Message, buffer),
		notifiers: notifiers,
		timeout:   10 * time.Second,
	}

	d.wg.Add(1)
	go d.loop()

	return d
}

// Publish ставит уведомление в очередь. При переполненной очереди
// сообщение отбрасывается с предупреждением — транзакцию-источник
// уведомление не роняет ни при каких условиях.
func (d *Dispatcher) Publish(msg Message) {
	select {
	case d.queue <- msg:
	default:
		slog.Warn("notify_queue_full", "kind", msg.Kind, "recipient", msg.RecipientEmail)
	}
}

// Close останавливает приём и дожидается доставки уже принятого.
func (d *Dispatcher) Close() {
	d.stopOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

func (d *Dispatcher) loop() {
	defer d.wg.Done()

	for msg := range d.queue {
		for _, n := range d.notifiers {
			ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			if err := n.Notify(ctx, msg); err != nil {
				slog.Error("notify_failed",
					"kind", msg.Kind,
					"recipient", msg.RecipientEmail,
					"error", err,
				)
			}
			cancel()
		}
	}
}
