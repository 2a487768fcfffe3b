// Package confirm реализует двухфазное подтверждение действий:
// Request регистрирует отложенный эффект и выдаёт токен, Confirm выполняет его ровно один раз,
// Cancel отбрасывает без побочных эффектов. Ожидания ввода пользователя внутри нет.
package confirm

import (
	"sort"
	"time"

	"github.com/DRSN-tech/pharmacy-storefront/pkg/e"
	"github.com/google/uuid"
)

// Kind — тип подтверждаемого действия.
type Kind string

const (
	KindPrescription Kind = "prescription" // добавление рецептурного товара
	KindRemoveItem   Kind = "remove_item"  // удаление позиции из корзины
	KindCheckout     Kind = "checkout"     // оформление заказа
)

// Token идентифицирует ожидающее подтверждение.
type Token string

// Effect выполняется при подтверждении.
type Effect func() (any, error)

// Pending — описание ожидающего подтверждения.
type Pending struct {
	Token     Token
	Kind      Kind
	Payload   any
	CreatedAt time.Time
}

type entry struct {
	Pending
	seq    uint64
	effect Effect
}

// Registry хранит ожидающие подтверждения одной сессии. Не потокобезопасен.
type Registry struct {
	pending map[Token]entry
	seq     uint64
	now     func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		pending: make(map[Token]entry),
		now:     time.Now,
	}
}

// Request регистрирует действие и возвращает токен.
func (r *Registry) Request(kind Kind, payload any, effect Effect) Token {
	token := Token(uuid.NewString())
	r.seq++
	r.pending[token] = entry{
		Pending: Pending{
			Token:     token,
			Kind:      kind,
			Payload:   payload,
			CreatedAt: r.now(),
		},
		seq:    r.seq,
		effect: effect,
	}

	return token
}

// Confirm выполняет эффект и забывает токен. Повторное подтверждение возвращает ErrConfirmationNotFound.
func (r *Registry) Confirm(token Token) (Kind, any, error) {
	const op = "Registry.Confirm"

	en, ok := r.pending[token]
	if !ok {
		return "", nil, e.Wrap(op, e.ErrConfirmationNotFound)
	}
	delete(r.pending, token)

	if en.effect == nil {
		return en.Kind, nil, nil
	}

	res, err := en.effect()
	if err != nil {
		return en.Kind, nil, e.Wrap(op, err)
	}

	return en.Kind, res, nil
}

// Cancel отменяет ожидающее действие. Неизвестный токен игнорируется.
func (r *Registry) Cancel(token Token) {
	delete(r.pending, token)
}

// Get возвращает описание ожидающего подтверждения.
func (r *Registry) Get(token Token) (Pending, bool) {
	en, ok := r.pending[token]
	return en.Pending, ok
}

// Pending возвращает ожидающие подтверждения, от старых к новым.
// При равном CreatedAt порядок определяется очерёдностью Request.
func (r *Registry) Pending() []Pending {
	entries := make([]entry, 0, len(r.pending))
	for _, en := range r.pending {
		entries = append(entries, en)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].seq < entries[j].seq
	})

	res := make([]Pending, 0, len(entries))
	for _, en := range entries {
		res = append(res, en.Pending)
	}

	return res
}

// CancelKind отменяет все ожидающие действия указанного типа.
func (r *Registry) CancelKind(kind Kind) {
	for token, en := range r.pending {
		if en.Kind == kind {
			delete(r.pending, token)
		}
	}
}
