// Package catalog реализует индекс статического каталога: фильтр по категории,
// поиск по подстроке и группировку результатов по категориям.
package catalog

import (
	"fmt"
	"strings"

	"github.com/DRSN-tech/pharmacy-storefront/internal/domain"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/e"
)

// Section — группа товаров одной категории.
type Section struct {
	Category string
	Products []domain.Product
}

// Index хранит каталог. После создания не изменяется, поэтому безопасен для конкурентного чтения.
type Index struct {
	products   []domain.Product
	categories []string
	byID       map[int64]int
}

// NewIndex проверяет сид и строит индекс.
// categories — допустимые категории; служебная "Todos" допускается, но товарам не назначается.
func NewIndex(products []domain.Product, categories []string) (*Index, error) {
	const op = "catalog.NewIndex"

	known := make(map[string]struct{}, len(categories))
	ordered := []string{domain.AllCategories}
	for _, c := range categories {
		if domain.IsAllCategories(c) {
			continue
		}
		if _, dup := known[c]; dup {
			return nil, e.Wrap(op, fmt.Errorf("%w: duplicate category %q", e.ErrInvalidCatalog, c))
		}
		known[c] = struct{}{}
		ordered = append(ordered, c)
	}

	byID := make(map[int64]int, len(products))
	for i, p := range products {
		if p.ID <= 0 {
			return nil, e.Wrap(op, fmt.Errorf("%w: product %q has non-positive id %d", e.ErrInvalidCatalog, p.Name, p.ID))
		}
		if _, dup := byID[p.ID]; dup {
			return nil, e.Wrap(op, fmt.Errorf("%w: duplicate product id %d", e.ErrInvalidCatalog, p.ID))
		}
		if p.Stock < 0 {
			return nil, e.Wrap(op, fmt.Errorf("%w: product %d has negative stock", e.ErrInvalidCatalog, p.ID))
		}
		if p.Price < 0 {
			return nil, e.Wrap(op, fmt.Errorf("%w: product %d has negative price", e.ErrInvalidCatalog, p.ID))
		}
		if _, ok := known[p.Category]; !ok {
			return nil, e.Wrap(op, fmt.Errorf("%w: product %d has unknown category %q", e.ErrInvalidCatalog, p.ID, p.Category))
		}
		byID[p.ID] = i
	}

	return &Index{
		products:   append([]domain.Product(nil), products...),
		categories: ordered,
		byID:       byID,
	}, nil
}

// Products возвращает копию каталога в исходном порядке.
func (x *Index) Products() []domain.Product {
	return append([]domain.Product(nil), x.products...)
}

// Categories возвращает категории; первой идёт служебная "Todos".
func (x *Index) Categories() []string {
	return append([]string(nil), x.categories...)
}

// ProductByID ищет товар по идентификатору.
func (x *Index) ProductByID(id int64) (domain.Product, bool) {
	i, ok := x.byID[id]
	if !ok {
		return domain.Product{}, false
	}

	return x.products[i], true
}

// FilterByCategory возвращает товары категории в порядке каталога.
// "Todos"/"All" возвращает весь каталог; неизвестная категория даёт пустой результат.
func (x *Index) FilterByCategory(category string) []domain.Product {
	if domain.IsAllCategories(category) {
		return x.Products()
	}

	res := make([]domain.Product, 0)
	for _, p := range x.products {
		if p.Category == category {
			res = append(res, p)
		}
	}

	return res
}

// Search ищет подстроку без учёта регистра в названии, категории или производителе.
// Пустой запрос ничего не находит.
func (x *Index) Search(query string) []domain.Product {
	res := make([]domain.Product, 0)
	if query == "" {
		return res
	}

	q := strings.ToLower(query)
	for _, p := range x.products {
		if matches(p, q) {
			res = append(res, p)
		}
	}

	return res
}

// GroupByCategory группирует товары по категории.
// Порядок секций — порядок первого появления категории, внутри секции сохраняется порядок входа.
func GroupByCategory(products []domain.Product) []Section {
	sections := make([]Section, 0)
	pos := make(map[string]int)
	for _, p := range products {
		i, ok := pos[p.Category]
		if !ok {
			i = len(sections)
			pos[p.Category] = i
			sections = append(sections, Section{Category: p.Category})
		}
		sections[i].Products = append(sections[i].Products, p)
	}

	return sections
}

func matches(p domain.Product, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Category), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Manufacturer), lowerQuery)
}
