package usecase

import (
	"context"

	"github.com/DRSN-tech/pharmacy-storefront/internal/confirm"
	"github.com/DRSN-tech/pharmacy-storefront/internal/domain"
)

type CatalogUC interface {
	ListCategories(ctx context.Context) []string
	ListProducts(ctx context.Context, category string) []domain.Product
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	OpenProduct(ctx context.Context, id int64) (domain.Product, error)
	Search(ctx context.Context, query string) *SearchRes
}

type StorefrontUC interface {
	CatalogUC

	CreateSession(ctx context.Context) string
	CloseSession(ctx context.Context, sessionID string)

	SubmitSearch(ctx context.Context, sessionID string, query string) ([]string, error)
	RecentSearches(ctx context.Context, sessionID string) ([]string, error)

	GetCart(ctx context.Context, sessionID string) (*CartView, error)
	AddToCart(ctx context.Context, req *AddToCartReq) (*AddToCartRes, error)
	SetQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*CartView, error)
	IncrementItem(ctx context.Context, sessionID string, productID int64) (*CartView, error)
	DecrementItem(ctx context.Context, sessionID string, productID int64) (*CartView, error)
	RequestRemoveItem(ctx context.Context, sessionID string, productID int64) (*ConfirmationInfo, error)
	RequestCheckout(ctx context.Context, sessionID string) (*ConfirmationInfo, error)

	Confirm(ctx context.Context, sessionID string, token confirm.Token) (*ConfirmRes, error)
	Cancel(ctx context.Context, sessionID string, token confirm.Token) error
	PendingConfirmations(ctx context.Context, sessionID string) ([]ConfirmationInfo, error)
}
