package http

import (
	"time"

	"github.com/DRSN-tech/pharmacy-storefront/internal/catalog"
	"github.com/DRSN-tech/pharmacy-storefront/internal/domain"
	"github.com/DRSN-tech/pharmacy-storefront/internal/usecase"
)

// REQUESTS

// AddToCartRequest — тело POST /sessions/{sid}/cart/items. Отсутствующее или нулевое quantity
// означает одну единицу, отрицательное отклоняется с 400.
type AddToCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

// RESPONSES

// ProductDTO — товар на границе API. Цена отдаётся строкой с двумя знаками и в сентаво.
type ProductDTO struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	Category             string `json:"category"`
	Price                string `json:"price"`
	PriceCents           int64  `json:"price_cents"`
	Image                string `json:"image"`
	Description          string `json:"description"`
	PrescriptionRequired bool   `json:"prescription_required"`
	Stock                int    `json:"stock"`
	InStock              bool   `json:"in_stock"`
	Manufacturer         string `json:"manufacturer"`
}

type SectionDTO struct {
	Category string       `json:"category"`
	Products []ProductDTO `json:"products"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

type ProductsResponse struct {
	Category string       `json:"category"`
	Products []ProductDTO `json:"products"`
}

type SearchResponse struct {
	Query    string       `json:"query"`
	Products []ProductDTO `json:"products"`
	Sections []SectionDTO `json:"sections"`
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
}

type RecentSearchesResponse struct {
	Searches []string `json:"searches"`
}

type CartLineDTO struct {
	Product  ProductDTO `json:"product"`
	Quantity int        `json:"quantity"`
	Subtotal string     `json:"subtotal"`
}

type CartDTO struct {
	Lines         []CartLineDTO `json:"lines"`
	DistinctLines int           `json:"distinct_lines"`
	TotalItems    int           `json:"total_items"`
	TotalPrice    string        `json:"total_price"`
}

type ConfirmationDTO struct {
	Token      string `json:"token"`
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	ProductID  int64  `json:"product_id,omitempty"`
	Quantity   int    `json:"quantity,omitempty"`
	TotalItems int    `json:"total_items,omitempty"`
	TotalPrice string `json:"total_price,omitempty"`
}

type ConfirmationsResponse struct {
	Confirmations []ConfirmationDTO `json:"confirmations"`
}

type AddToCartResponse struct {
	Added        bool             `json:"added"`
	Quantity     int              `json:"quantity"`
	LimitReached bool             `json:"limit_reached"`
	Confirmation *ConfirmationDTO `json:"confirmation,omitempty"`
	Cart         CartDTO          `json:"cart"`
}

type ReceiptDTO struct {
	OrderID      string        `json:"order_id"`
	Lines        []CartLineDTO `json:"lines"`
	TotalItems   int           `json:"total_items"`
	TotalPrice   string        `json:"total_price"`
	CheckedOutAt time.Time     `json:"checked_out_at"`
}

type ConfirmResponse struct {
	Kind    string      `json:"kind"`
	Cart    CartDTO     `json:"cart"`
	Receipt *ReceiptDTO `json:"receipt,omitempty"`
}

// MAPPERS

func toProductDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:                   p.ID,
		Name:                 p.Name,
		Category:             p.Category,
		Price:                p.Price.String(),
		PriceCents:           p.Price.Cents(),
		Image:                p.Image,
		Description:          p.Description,
		PrescriptionRequired: p.PrescriptionRequired,
		Stock:                p.Stock,
		InStock:              p.InStock(),
		Manufacturer:         p.Manufacturer,
	}
}

func toProductDTOs(products []domain.Product) []ProductDTO {
	res := make([]ProductDTO, len(products))
	for i, p := range products {
		res[i] = toProductDTO(p)
	}

	return res
}

func toSectionDTOs(sections []catalog.Section) []SectionDTO {
	res := make([]SectionDTO, len(sections))
	for i, s := range sections {
		res[i] = SectionDTO{Category: s.Category, Products: toProductDTOs(s.Products)}
	}

	return res
}

func toCartLineDTOs(lines []usecase.CartLineView) []CartLineDTO {
	res := make([]CartLineDTO, len(lines))
	for i, l := range lines {
		res[i] = CartLineDTO{
			Product:  toProductDTO(l.Product),
			Quantity: l.Quantity,
			Subtotal: l.Subtotal.String(),
		}
	}

	return res
}

func toCartDTO(v *usecase.CartView) CartDTO {
	if v == nil {
		return CartDTO{Lines: []CartLineDTO{}, TotalPrice: domain.Money(0).String()}
	}

	return CartDTO{
		Lines:         toCartLineDTOs(v.Lines),
		DistinctLines: v.DistinctLines,
		TotalItems:    v.TotalItems,
		TotalPrice:    v.TotalPrice.String(),
	}
}

func toConfirmationDTO(c *usecase.ConfirmationInfo) *ConfirmationDTO {
	if c == nil {
		return nil
	}

	dto := &ConfirmationDTO{
		Token:      string(c.Token),
		Kind:       string(c.Kind),
		Message:    c.Message,
		ProductID:  c.ProductID,
		Quantity:   c.Quantity,
		TotalItems: c.TotalItems,
	}
	if c.TotalItems > 0 {
		dto.TotalPrice = c.TotalPrice.String()
	}

	return dto
}

func toReceiptDTO(r *usecase.Receipt) *ReceiptDTO {
	if r == nil {
		return nil
	}

	return &ReceiptDTO{
		OrderID:      r.OrderID,
		Lines:        toCartLineDTOs(r.Lines),
		TotalItems:   r.TotalItems,
		TotalPrice:   r.TotalPrice.String(),
		CheckedOutAt: r.CheckedOutAt,
	}
}
