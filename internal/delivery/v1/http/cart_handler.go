package http

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/pharmacy-storefront/internal/usecase"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/e"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	storefrontUsecase usecase.StorefrontUC
	logger            logger.Logger
}

func NewCartHandler(storefrontUsecase usecase.StorefrontUC, logger logger.Logger) *CartHandler {
	return &CartHandler{storefrontUsecase: storefrontUsecase, logger: logger}
}

// getCart
//
//	@Summary	Корзина сессии
//	@Tags		cart
//	@Produce	json
//	@Param		sid	path		string	true	"ID сессии"
//	@Success	200	{object}	CartDTO
//	@Failure	404	{object}	ErrorResponse	"Сессия не найдена"
//	@Router		/sessions/{sid}/cart [get]
func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.storefrontUsecase.GetCart(r.Context(), chi.URLParam(r, "sid"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartDTO(view))
}

// addItem
//
//	@Summary		Добавить товар в корзину
//	@Description	Количество ограничивается остатком; quantity 0 или без значения означает 1, отрицательное отклоняется. Если позиция уже на пределе остатка, added=false и limit_reached=true. Для рецептурного товара корзина не меняется, возвращается подтверждение (202)
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			sid		path		string				true	"ID сессии"
//	@Param			request	body		AddToCartRequest	true	"Товар и количество"
//	@Success		200		{object}	AddToCartResponse	"Товар добавлен"
//	@Success		202		{object}	AddToCartResponse	"Требуется подтверждение рецепта"
//	@Failure		400		{object}	ErrorResponse		"Ошибка валидации"
//	@Failure		404		{object}	ErrorResponse		"Сессия или товар не найдены"
//	@Failure		409		{object}	ErrorResponse		"Товар отсутствует"
//	@Router			/sessions/{sid}/cart/items [post]
func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if req.ProductID <= 0 {
		WriteError(w, e.ErrInvalidProductID)
		return
	}

	// количество не указано — добавляем одну единицу
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		WriteError(w, e.ErrInvalidQuantity)
		return
	}

	res, err := h.storefrontUsecase.AddToCart(r.Context(), usecase.NewAddToCartReq(chi.URLParam(r, "sid"), req.ProductID, req.Quantity))
	if err != nil {
		h.logger.Debugf("add to cart: %v", err)
		WriteError(w, err)
		return
	}

	status := http.StatusOK
	if res.Confirmation != nil {
		status = http.StatusAccepted
	}

	WriteSuccess(w, status, AddToCartResponse{
		Added:        res.Added,
		Quantity:     res.Quantity,
		LimitReached: res.LimitReached,
		Confirmation: toConfirmationDTO(res.Confirmation),
		Cart:         toCartDTO(res.Cart),
	})
}

// setQuantity
//
//	@Summary		Изменить количество позиции
//	@Description	Количество ограничивается остатком; значения меньше 1 отклоняются. Отсутствующая позиция не меняется
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			sid		path		string				true	"ID сессии"
//	@Param			pid		path		int					true	"ID товара"
//	@Param			request	body		SetQuantityRequest	true	"Новое количество"
//	@Success		200		{object}	CartDTO
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		404		{object}	ErrorResponse	"Сессия не найдена"
//	@Router			/sessions/{sid}/cart/items/{pid} [put]
func (h *CartHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	pid, err := parseProductID(r, "pid")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req SetQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	view, err := h.storefrontUsecase.SetQuantity(r.Context(), chi.URLParam(r, "sid"), pid, req.Quantity)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartDTO(view))
}

// incrementItem
//
//	@Summary	Увеличить количество на 1 (не выше остатка)
//	@Tags		cart
//	@Produce	json
//	@Param		sid	path		string	true	"ID сессии"
//	@Param		pid	path		int		true	"ID товара"
//	@Success	200	{object}	CartDTO
//	@Router		/sessions/{sid}/cart/items/{pid}/increment [post]
func (h *CartHandler) incrementItem(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.storefrontUsecase.IncrementItem)
}

// decrementItem
//
//	@Summary	Уменьшить количество на 1 (не ниже 1)
//	@Tags		cart
//	@Produce	json
//	@Param		sid	path		string	true	"ID сессии"
//	@Param		pid	path		int		true	"ID товара"
//	@Success	200	{object}	CartDTO
//	@Router		/sessions/{sid}/cart/items/{pid}/decrement [post]
func (h *CartHandler) decrementItem(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.storefrontUsecase.DecrementItem)
}

// removeItem
//
//	@Summary		Запросить удаление позиции
//	@Description	Удаление выполняется после подтверждения. Если позиции нет, возвращается 204
//	@Tags			cart
//	@Produce		json
//	@Param			sid	path		string	true	"ID сессии"
//	@Param			pid	path		int		true	"ID товара"
//	@Success		202	{object}	ConfirmationDTO
//	@Success		204
//	@Router			/sessions/{sid}/cart/items/{pid} [delete]
func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	pid, err := parseProductID(r, "pid")
	if err != nil {
		WriteError(w, err)
		return
	}

	info, err := h.storefrontUsecase.RequestRemoveItem(r.Context(), chi.URLParam(r, "sid"), pid)
	if err != nil {
		WriteError(w, err)
		return
	}

	if info == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	WriteSuccess(w, http.StatusAccepted, toConfirmationDTO(info))
}

// checkout
//
//	@Summary		Запросить оформление заказа
//	@Description	Возвращает подтверждение с итоговой суммой. Пустая корзина отклоняется
//	@Tags			cart
//	@Produce		json
//	@Param			sid	path		string	true	"ID сессии"
//	@Success		202	{object}	ConfirmationDTO
//	@Failure		404	{object}	ErrorResponse	"Сессия не найдена"
//	@Failure		409	{object}	ErrorResponse	"Корзина пуста"
//	@Router			/sessions/{sid}/checkout [post]
func (h *CartHandler) checkout(w http.ResponseWriter, r *http.Request) {
	info, err := h.storefrontUsecase.RequestCheckout(r.Context(), chi.URLParam(r, "sid"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusAccepted, toConfirmationDTO(info))
}

func (h *CartHandler) step(w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, sessionID string, productID int64) (*usecase.CartView, error)) {
	pid, err := parseProductID(r, "pid")
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := fn(r.Context(), chi.URLParam(r, "sid"), pid)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartDTO(view))
}
