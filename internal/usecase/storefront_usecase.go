package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/pharmacy-storefront/internal/catalog"
	"github.com/DRSN-tech/pharmacy-storefront/internal/confirm"
	"github.com/DRSN-tech/pharmacy-storefront/internal/domain"
	"github.com/DRSN-tech/pharmacy-storefront/internal/session"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/e"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/logger"
	"github.com/google/uuid"
)

const (
	msgPrescription = "Este medicamento requer prescrição médica. Você possui receita médica?"
	msgRemoveItem   = "Deseja remover \"%s\" do carrinho?"
	msgCheckout     = "Total: R$ %s\n\nDeseja finalizar a compra?"

	publishTimeout = 30 * time.Second
)

// StorefrontUseCase связывает каталог, корзины сессий и подтверждения.
// Ограничение количества остатком выполняется здесь, при каждой мутации корзины.
type StorefrontUseCase struct {
	catalog   CatalogIndex
	sessions  SessionStore
	publisher EventPublisher
	logger    logger.Logger
	now       func() time.Time

	publishWg sync.WaitGroup
}

func NewStorefrontUC(
	catalog CatalogIndex,
	sessions SessionStore,
	publisher EventPublisher,
	logger logger.Logger,
) *StorefrontUseCase {
	return &StorefrontUseCase{
		catalog:   catalog,
		sessions:  sessions,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// ListCategories возвращает категории, первой идёт "Todos".
func (s *StorefrontUseCase) ListCategories(_ context.Context) []string {
	return s.catalog.Categories()
}

// ListProducts возвращает товары категории в порядке каталога.
func (s *StorefrontUseCase) ListProducts(_ context.Context, category string) []domain.Product {
	if category == "" {
		category = domain.AllCategories
	}

	return s.catalog.FilterByCategory(category)
}

// GetProduct возвращает товар по идентификатору.
func (s *StorefrontUseCase) GetProduct(_ context.Context, id int64) (domain.Product, error) {
	const op = "StorefrontUseCase.GetProduct"

	p, ok := s.catalog.ProductByID(id)
	if !ok {
		return domain.Product{}, e.Wrap(op, e.ErrProductNotFound)
	}

	return p, nil
}

// OpenProduct возвращает карточку товара; товар без остатка открыть нельзя.
func (s *StorefrontUseCase) OpenProduct(ctx context.Context, id int64) (domain.Product, error) {
	const op = "StorefrontUseCase.OpenProduct"

	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if !p.InStock() {
		return domain.Product{}, e.Wrap(op, e.ErrProductUnavailable)
	}

	return p, nil
}

// Search ищет товары и группирует их по категориям. Пустой запрос ничего не находит.
func (s *StorefrontUseCase) Search(_ context.Context, query string) *SearchRes {
	products := s.catalog.Search(query)

	return &SearchRes{
		Query:    query,
		Products: products,
		Sections: catalog.GroupByCategory(products),
	}
}

// CreateSession открывает новую сессию и возвращает её идентификатор.
func (s *StorefrontUseCase) CreateSession(_ context.Context) string {
	return s.sessions.Create().ID
}

// CloseSession закрывает сессию.
func (s *StorefrontUseCase) CloseSession(_ context.Context, sessionID string) {
	s.sessions.Delete(sessionID)
}

// SubmitSearch сохраняет запрос в истории сессии и возвращает историю.
func (s *StorefrontUseCase) SubmitSearch(_ context.Context, sessionID string, query string) ([]string, error) {
	const op = "StorefrontUseCase.SubmitSearch"

	var recent []string
	err := s.withSession(sessionID, func(st *session.State) error {
		st.RecordSearch(query)
		recent = st.RecentSearches()
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return recent, nil
}

// RecentSearches возвращает историю поиска сессии.
func (s *StorefrontUseCase) RecentSearches(_ context.Context, sessionID string) ([]string, error) {
	const op = "StorefrontUseCase.RecentSearches"

	var recent []string
	err := s.withSession(sessionID, func(st *session.State) error {
		recent = st.RecentSearches()
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return recent, nil
}

// GetCart возвращает снимок корзины.
func (s *StorefrontUseCase) GetCart(_ context.Context, sessionID string) (*CartView, error) {
	const op = "StorefrontUseCase.GetCart"

	var view *CartView
	err := s.withSession(sessionID, func(st *session.State) error {
		view = cartView(st)
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return view, nil
}

// AddToCart добавляет товар в корзину. Количество приводится к [1, Stock],
// суммарное количество позиции не превышает остаток.
// Рецептурный товар требует подтверждения: вместо изменения корзины возвращается токен.
func (s *StorefrontUseCase) AddToCart(ctx context.Context, req *AddToCartReq) (*AddToCartRes, error) {
	const op = "StorefrontUseCase.AddToCart"

	product, err := s.OpenProduct(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	qty := product.ClampQuantity(req.Quantity)

	var res *AddToCartRes
	err = s.withSession(req.SessionID, func(st *session.State) error {
		if product.PrescriptionRequired {
			info := &ConfirmationInfo{
				Kind:      confirm.KindPrescription,
				Message:   msgPrescription,
				ProductID: product.ID,
				Quantity:  qty,
			}
			info.Token = st.Confirmations.Request(confirm.KindPrescription, info, func() (any, error) {
				return addClamped(st, product, qty)
			})

			res = &AddToCartRes{Confirmation: info, Cart: cartView(st)}
			return nil
		}

		added, err := addClamped(st, product, qty)
		if err != nil {
			return err
		}

		res = &AddToCartRes{
			Added:        added > 0,
			Quantity:     added,
			LimitReached: added < qty,
			Cart:         cartView(st),
		}
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

// SetQuantity задаёт количество позиции, ограничивая его остатком. Значения меньше 1 отклоняются.
func (s *StorefrontUseCase) SetQuantity(_ context.Context, sessionID string, productID int64, quantity int) (*CartView, error) {
	const op = "StorefrontUseCase.SetQuantity"

	if quantity < 1 {
		return nil, e.Wrap(op, e.ErrInvalidQuantity)
	}

	view, err := s.mutateLine(sessionID, productID, func(line domain.CartLine) int {
		return line.Product.ClampQuantity(quantity)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return view, nil
}

// IncrementItem увеличивает количество на 1, но не выше остатка.
func (s *StorefrontUseCase) IncrementItem(_ context.Context, sessionID string, productID int64) (*CartView, error) {
	const op = "StorefrontUseCase.IncrementItem"

	view, err := s.mutateLine(sessionID, productID, func(line domain.CartLine) int {
		return min(line.Product.Stock, line.Quantity+1)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return view, nil
}

// DecrementItem уменьшает количество на 1, но не ниже 1.
func (s *StorefrontUseCase) DecrementItem(_ context.Context, sessionID string, productID int64) (*CartView, error) {
	const op = "StorefrontUseCase.DecrementItem"

	view, err := s.mutateLine(sessionID, productID, func(line domain.CartLine) int {
		return max(1, line.Quantity-1)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return view, nil
}

// RequestRemoveItem запрашивает подтверждение удаления позиции.
// Если позиции нет, подтверждать нечего и возвращается nil.
func (s *StorefrontUseCase) RequestRemoveItem(_ context.Context, sessionID string, productID int64) (*ConfirmationInfo, error) {
	const op = "StorefrontUseCase.RequestRemoveItem"

	var info *ConfirmationInfo
	err := s.withSession(sessionID, func(st *session.State) error {
		line, ok := st.Cart.Line(productID)
		if !ok {
			return nil
		}

		born, _ := st.Cart.LineRevision(productID)
		info = &ConfirmationInfo{
			Kind:      confirm.KindRemoveItem,
			Message:   fmt.Sprintf(msgRemoveItem, line.Product.Name),
			ProductID: productID,
			Quantity:  line.Quantity,
		}
		info.Token = st.Confirmations.Request(confirm.KindRemoveItem, info, func() (any, error) {
			// позицию удалили и добавили заново: подтверждали не её
			if cur, ok := st.Cart.LineRevision(productID); ok && cur != born {
				return nil, e.ErrCartChanged
			}
			st.Cart.RemoveItem(productID)
			return nil, nil
		})

		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return info, nil
}

// RequestCheckout запрашивает подтверждение оформления заказа.
// Пустая корзина отклоняется с ErrEmptyCart без изменения состояния.
// Токен действителен только для показанной корзины: любое изменение
// до подтверждения приводит к ErrCartChanged.
func (s *StorefrontUseCase) RequestCheckout(_ context.Context, sessionID string) (*ConfirmationInfo, error) {
	const op = "StorefrontUseCase.RequestCheckout"

	var info *ConfirmationInfo
	err := s.withSession(sessionID, func(st *session.State) error {
		if st.Cart.IsEmpty() {
			return e.ErrEmptyCart
		}

		total := st.Cart.TotalPrice()
		revision := st.Cart.Revision()
		info = &ConfirmationInfo{
			Kind:       confirm.KindCheckout,
			Message:    fmt.Sprintf(msgCheckout, total.String()),
			TotalPrice: total,
			TotalItems: st.Cart.TotalItemCount(),
		}
		info.Token = st.Confirmations.Request(confirm.KindCheckout, info, func() (any, error) {
			return s.checkout(sessionID, st, revision)
		})

		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return info, nil
}

// Confirm выполняет подтверждённое действие.
// После оформления заказа событие публикуется в фоне, вне блокировки сессии.
func (s *StorefrontUseCase) Confirm(_ context.Context, sessionID string, token confirm.Token) (*ConfirmRes, error) {
	const op = "StorefrontUseCase.Confirm"

	var res *ConfirmRes
	err := s.withSession(sessionID, func(st *session.State) error {
		kind, out, err := st.Confirmations.Confirm(token)
		if err != nil {
			return err
		}

		res = &ConfirmRes{Kind: kind, Cart: cartView(st)}
		if receipt, ok := out.(*Receipt); ok {
			res.Receipt = receipt
		}

		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if res.Receipt != nil {
		s.publishCheckout(res.Receipt)
	}

	return res, nil
}

// Cancel отменяет ожидающее подтверждение без побочных эффектов.
func (s *StorefrontUseCase) Cancel(_ context.Context, sessionID string, token confirm.Token) error {
	const op = "StorefrontUseCase.Cancel"

	err := s.withSession(sessionID, func(st *session.State) error {
		st.Confirmations.Cancel(token)
		return nil
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// PendingConfirmations возвращает ожидающие подтверждения сессии.
func (s *StorefrontUseCase) PendingConfirmations(_ context.Context, sessionID string) ([]ConfirmationInfo, error) {
	const op = "StorefrontUseCase.PendingConfirmations"

	var res []ConfirmationInfo
	err := s.withSession(sessionID, func(st *session.State) error {
		pending := st.Confirmations.Pending()
		res = make([]ConfirmationInfo, 0, len(pending))
		for _, p := range pending {
			if info, ok := p.Payload.(*ConfirmationInfo); ok {
				res = append(res, *info)
			}
		}

		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

// WaitForPublishes ждёт завершения фоновых публикаций событий.
func (s *StorefrontUseCase) WaitForPublishes(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.publishWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// checkout очищает корзину и формирует чек. Вызывается под блокировкой сессии.
// revision — ревизия корзины на момент запроса подтверждения.
func (s *StorefrontUseCase) checkout(sessionID string, st *session.State, revision uint64) (*Receipt, error) {
	// корзину могли опустошить между запросом и подтверждением
	if st.Cart.IsEmpty() {
		return nil, e.ErrEmptyCart
	}
	if st.Cart.Revision() != revision {
		return nil, e.ErrCartChanged
	}

	view := cartView(st)
	receipt := &Receipt{
		OrderID:      uuid.NewString(),
		SessionID:    sessionID,
		Lines:        view.Lines,
		TotalItems:   view.TotalItems,
		TotalPrice:   view.TotalPrice,
		CheckedOutAt: s.now().UTC(),
	}

	st.Cart.Clear()
	st.Confirmations.CancelKind(confirm.KindCheckout)

	return receipt, nil
}

func (s *StorefrontUseCase) publishCheckout(receipt *Receipt) {
	const op = "StorefrontUseCase.publishCheckout"

	event := NewCheckoutEvent(uuid.NewString(), receipt)

	s.publishWg.Add(1)
	go func() {
		defer s.publishWg.Done()

		bgCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := s.publisher.PublishCheckout(bgCtx, event); err != nil {
			s.logger.Warnf("Failed to publish checkout event (order_id: %s): %v", receipt.OrderID, e.Wrap(op, err))
		}
	}()
}

// mutateLine меняет количество существующей позиции; отсутствующая позиция — no-op.
func (s *StorefrontUseCase) mutateLine(sessionID string, productID int64, next func(line domain.CartLine) int) (*CartView, error) {
	var view *CartView
	err := s.withSession(sessionID, func(st *session.State) error {
		if line, ok := st.Cart.Line(productID); ok {
			if err := st.Cart.SetQuantity(productID, next(line)); err != nil {
				return err
			}
		}

		view = cartView(st)
		return nil
	})

	return view, err
}

func (s *StorefrontUseCase) withSession(sessionID string, fn func(st *session.State) error) error {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}

	return sess.Do(fn)
}

// addClamped добавляет товар так, чтобы позиция не превысила остаток.
// Возвращает фактически добавленное количество (0, если позиция уже на максимуме).
func addClamped(st *session.State, product domain.Product, qty int) (int, error) {
	if !product.InStock() {
		return 0, e.ErrProductUnavailable
	}

	inCart := 0
	if line, ok := st.Cart.Line(product.ID); ok {
		inCart = line.Quantity
	}

	delta := min(qty, product.Stock-inCart)
	if delta < 1 {
		return 0, nil
	}

	if err := st.Cart.AddItem(product, delta); err != nil {
		return 0, err
	}

	return delta, nil
}

func cartView(st *session.State) *CartView {
	return NewCartView(st.Cart.Lines(), st.Cart.TotalItemCount(), st.Cart.TotalPrice())
}
