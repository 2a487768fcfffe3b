package session

import (
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/pharmacy-storefront/internal/cart"
	"github.com/DRSN-tech/pharmacy-storefront/internal/confirm"
)

// MaxRecentSearches — сколько последних запросов хранит сессия.
const MaxRecentSearches = 5

// Session — состояние одного клиента: корзина, ожидающие подтверждения и история поиска.
// Все операции над сессией выполняются под её мьютексом через Do.
type Session struct {
	ID string

	mu            sync.Mutex
	cart          *cart.Cart
	confirmations *confirm.Registry
	recent        []string
	lastSeen      time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:            id,
		cart:          cart.New(),
		confirmations: confirm.NewRegistry(),
		lastSeen:      now,
	}
}

// State — содержимое сессии, доступное внутри Do.
type State struct {
	Cart          *cart.Cart
	Confirmations *confirm.Registry
	session       *Session
}

// RecordSearch сохраняет запрос в истории: пробелы по краям обрезаются,
// пустые и уже сохранённые запросы игнорируются, новые идут первыми.
func (s *State) RecordSearch(query string) {
	q := strings.TrimSpace(query)
	if q == "" {
		return
	}

	for _, r := range s.session.recent {
		if r == q {
			return
		}
	}

	keep := min(len(s.session.recent), MaxRecentSearches-1)
	s.session.recent = append([]string{q}, s.session.recent[:keep]...)
}

// RecentSearches возвращает копию истории поиска.
func (s *State) RecentSearches() []string {
	return append([]string{}, s.session.recent...)
}

// Do выполняет fn под мьютексом сессии, так что операции одной сессии не пересекаются.
func (s *Session) Do(fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(&State{
		Cart:          s.cart,
		Confirmations: s.confirmations,
		session:       s,
	})
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastSeen
}
