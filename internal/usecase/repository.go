package usecase

import (
	"github.com/DRSN-tech/pharmacy-storefront/internal/domain"
	"github.com/DRSN-tech/pharmacy-storefront/internal/session"
)

type CatalogIndex interface {
	Categories() []string
	FilterByCategory(category string) []domain.Product
	Search(query string) []domain.Product
	ProductByID(id int64) (domain.Product, bool)
}

type SessionStore interface {
	Create() *session.Session
	Get(id string) (*session.Session, error)
	Delete(id string)
}
