package http

import (
	"net/http"

	"github.com/DRSN-tech/pharmacy-storefront/internal/domain"
	"github.com/DRSN-tech/pharmacy-storefront/internal/usecase"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/logger"
)

type ProductHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewProductHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// listCategories
//
//	@Summary		Список категорий
//	@Description	Категории каталога, первой идёт "Todos"
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	CategoriesResponse
//	@Router			/categories [get]
func (p *ProductHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, CategoriesResponse{
		Categories: p.catalogUsecase.ListCategories(r.Context()),
	})
}

// listProducts
//
//	@Summary		Товары категории
//	@Description	Товары в порядке каталога. Без параметра или с "Todos" возвращается весь каталог
//	@Tags			catalog
//	@Produce		json
//	@Param			category	query		string	false	"Категория"
//	@Success		200			{object}	ProductsResponse
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = domain.AllCategories
	}

	WriteSuccess(w, http.StatusOK, ProductsResponse{
		Category: category,
		Products: toProductDTOs(p.catalogUsecase.ListProducts(r.Context(), category)),
	})
}

// openProduct
//
//	@Summary		Карточка товара
//	@Description	Товар без остатка открыть нельзя
//	@Tags			catalog
//	@Produce		json
//	@Param			id	path		int	true	"ID товара"
//	@Success		200	{object}	ProductDTO
//	@Failure		400	{object}	ErrorResponse	"Некорректный ID"
//	@Failure		404	{object}	ErrorResponse	"Товар не найден"
//	@Failure		409	{object}	ErrorResponse	"Товар отсутствует"
//	@Router			/products/{id} [get]
func (p *ProductHandler) openProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.catalogUsecase.OpenProduct(r.Context(), id)
	if err != nil {
		p.logger.Debugf("open product %d: %v", id, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductDTO(product))
}

// search
//
//	@Summary		Поиск по каталогу
//	@Description	Подстрока без учёта регистра по названию, категории и производителю. Пустой запрос ничего не находит
//	@Tags			catalog
//	@Produce		json
//	@Param			q	query		string	false	"Запрос"
//	@Success		200	{object}	SearchResponse
//	@Router			/search [get]
func (p *ProductHandler) search(w http.ResponseWriter, r *http.Request) {
	res := p.catalogUsecase.Search(r.Context(), r.URL.Query().Get("q"))

	WriteSuccess(w, http.StatusOK, SearchResponse{
		Query:    res.Query,
		Products: toProductDTOs(res.Products),
		Sections: toSectionDTOs(res.Sections),
	})
}
