package payments

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// DevProvider — провайдер-заглушка для локальной разработки:
// сессия считается оплаченной сразу после создания, редирект идёт
// прямиком на successURL. Боевой провайдер подключается вместо него
// той же сигнатурой.
type DevProvider struct {
	mu       sync.Mutex
	sessions map[string]int64 // ref -> сумма в центах
}

func NewDevProvider() *DevProvider {
	return &DevProvider{sessions: make(map[string]int64)}
}

func (p *DevProvider) CreateSession(_ context.Context, amountCents int64, successURL, _ string) (string, string, error) {
	ref := "dev_" + uuid.NewString()

	p.mu.Lock()
	p.sessions[ref] = amountCents
	p.mu.Unlock()

	return ref, successURL, nil
}

func (p *DevProvider) LookupSession(_ context.Context, providerRef string) (int64, bool, error) {
	p.mu.Lock()
	amount, ok := p.sessions[providerRef]
	p.mu.Unlock()

	return amount, ok, nil
}
