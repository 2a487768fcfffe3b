package usecase

import (
	"time"

	"github.com/DRSN-tech/pharmacy-storefront/internal/catalog"
	"github.com/DRSN-tech/pharmacy-storefront/internal/confirm"
	"github.com/DRSN-tech/pharmacy-storefront/internal/domain"
)

// CATALOG

// SearchRes — результат поиска: плоский список и секции по категориям.
type SearchRes struct {
	Query    string
	Products []domain.Product
	Sections []catalog.Section
}

// CART

// AddToCartReq — запрос на добавление товара в корзину.
type AddToCartReq struct {
	SessionID string
	ProductID int64
	Quantity  int
}

// AddToCartRes — результат добавления. Для рецептурного товара корзина не меняется,
// а возвращается запрос на подтверждение. Added ложно, если корзина не изменилась:
// позиция уже на пределе остатка или ждёт подтверждения рецепта.
type AddToCartRes struct {
	Added        bool
	Quantity     int  // фактически добавленное количество после ограничения остатком
	LimitReached bool // добавлено меньше запрошенного из-за остатка
	Confirmation *ConfirmationInfo
	Cart         *CartView
}

// CartView — снимок корзины для отображения.
type CartView struct {
	Lines         []CartLineView
	DistinctLines int
	TotalItems    int
	TotalPrice    domain.Money
}

// CartLineView — позиция корзины для отображения.
type CartLineView struct {
	Product  domain.Product
	Quantity int
	Subtotal domain.Money
}

// CONFIRMATIONS

// ConfirmationInfo — ожидающее подтверждение и текст вопроса пользователю.
type ConfirmationInfo struct {
	Token      confirm.Token
	Kind       confirm.Kind
	Message    string
	ProductID  int64
	Quantity   int
	TotalPrice domain.Money
	TotalItems int
}

// ConfirmRes — результат подтверждения.
type ConfirmRes struct {
	Kind    confirm.Kind
	Cart    *CartView
	Receipt *Receipt
}

// Receipt — итог оформленного заказа.
type Receipt struct {
	OrderID      string
	SessionID    string
	Lines        []CartLineView
	TotalItems   int
	TotalPrice   domain.Money
	CheckedOutAt time.Time
}

// INFRASTRUCTURE

// CheckoutEvent — событие об оформлении заказа для внешних подписчиков.
type CheckoutEvent struct {
	EventID      string              `json:"event_id"`
	OrderID      string              `json:"order_id"`
	SessionID    string              `json:"session_id"`
	Lines        []CheckoutEventLine `json:"lines"`
	TotalItems   int                 `json:"total_items"`
	TotalCents   int64               `json:"total_cents"`
	Total        string              `json:"total"`
	CheckedOutAt time.Time           `json:"checked_out_at"`
}

// CheckoutEventLine — позиция заказа в событии.
type CheckoutEventLine struct {
	ProductID      int64  `json:"product_id"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	SubtotalCents  int64  `json:"subtotal_cents"`
}

// RateQuota — состояние лимита запросов клиента.
type RateQuota struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetIn   time.Duration
}

// MAPPERS

func NewAddToCartReq(sessionID string, productID int64, quantity int) *AddToCartReq {
	return &AddToCartReq{
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  quantity,
	}
}

func NewCartView(lines []domain.CartLine, totalItems int, totalPrice domain.Money) *CartView {
	views := make([]CartLineView, len(lines))
	for i, l := range lines {
		views[i] = CartLineView{
			Product:  l.Product,
			Quantity: l.Quantity,
			Subtotal: l.Subtotal(),
		}
	}

	return &CartView{
		Lines:         views,
		DistinctLines: len(views),
		TotalItems:    totalItems,
		TotalPrice:    totalPrice,
	}
}

func NewCheckoutEvent(eventID string, r *Receipt) *CheckoutEvent {
	lines := make([]CheckoutEventLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = CheckoutEventLine{
			ProductID:      l.Product.ID,
			Name:           l.Product.Name,
			Quantity:       l.Quantity,
			UnitPriceCents: l.Product.Price.Cents(),
			SubtotalCents:  l.Subtotal.Cents(),
		}
	}

	return &CheckoutEvent{
		EventID:      eventID,
		OrderID:      r.OrderID,
		SessionID:    r.SessionID,
		Lines:        lines,
		TotalItems:   r.TotalItems,
		TotalCents:   r.TotalPrice.Cents(),
		Total:        r.TotalPrice.String(),
		CheckedOutAt: r.CheckedOutAt,
	}
}
