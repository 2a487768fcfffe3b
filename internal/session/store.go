// Package session хранит сессии клиентов в памяти процесса.
// Сессии не переживают перезапуск и удаляются после простоя.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/pharmacy-storefront/pkg/e"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/logger"
	"github.com/google/uuid"
)

// Store — реестр сессий.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	idleTTL  time.Duration
	logger   logger.Logger
	now      func() time.Time
}

func NewStore(idleTTL time.Duration, logger logger.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		idleTTL:  idleTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// Create открывает новую сессию с пустой корзиной.
func (s *Store) Create() *Session {
	sess := newSession(uuid.NewString(), s.now())

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

// Get возвращает сессию и продлевает её жизнь.
func (s *Store) Get(id string) (*Session, error) {
	const op = "Store.Get"

	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, e.Wrap(op, e.ErrSessionNotFound)
	}

	sess.touch(s.now())
	return sess, nil
}

// Delete закрывает сессию; неизвестный id — no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len — количество активных сессий.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// EvictIdle удаляет сессии, простаивающие дольше idleTTL. Возвращает число удалённых.
func (s *Store) EvictIdle() int {
	if s.idleTTL <= 0 {
		return 0
	}

	deadline := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if sess.idleSince().Before(deadline) {
			delete(s.sessions, id)
			evicted++
		}
	}

	return evicted
}

// Run периодически вычищает простаивающие сессии до отмены контекста.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || s.idleTTL <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infof("Session janitor stopped")
			return
		case <-ticker.C:
			if n := s.EvictIdle(); n > 0 {
				s.logger.Debugf("Evicted %d idle sessions", n)
			}
		}
	}
}
