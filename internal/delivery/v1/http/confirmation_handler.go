package http

import (
	"net/http"

	"github.com/DRSN-tech/pharmacy-storefront/internal/confirm"
	"github.com/DRSN-tech/pharmacy-storefront/internal/usecase"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ConfirmationHandler struct {
	storefrontUsecase usecase.StorefrontUC
	logger            logger.Logger
}

func NewConfirmationHandler(storefrontUsecase usecase.StorefrontUC, logger logger.Logger) *ConfirmationHandler {
	return &ConfirmationHandler{storefrontUsecase: storefrontUsecase, logger: logger}
}

// listPending
//
//	@Summary	Ожидающие подтверждения сессии
//	@Tags		confirmations
//	@Produce	json
//	@Param		sid	path		string	true	"ID сессии"
//	@Success	200	{object}	ConfirmationsResponse
//	@Failure	404	{object}	ErrorResponse	"Сессия не найдена"
//	@Router		/sessions/{sid}/confirmations [get]
func (h *ConfirmationHandler) listPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.storefrontUsecase.PendingConfirmations(r.Context(), chi.URLParam(r, "sid"))
	if err != nil {
		WriteError(w, err)
		return
	}

	res := ConfirmationsResponse{Confirmations: make([]ConfirmationDTO, 0, len(pending))}
	for i := range pending {
		res.Confirmations = append(res.Confirmations, *toConfirmationDTO(&pending[i]))
	}

	WriteSuccess(w, http.StatusOK, res)
}

// confirm
//
//	@Summary		Подтвердить действие
//	@Description	Выполняет отложенное действие ровно один раз. Для оформления заказа возвращает чек
//	@Tags			confirmations
//	@Produce		json
//	@Param			sid		path		string	true	"ID сессии"
//	@Param			token	path		string	true	"Токен подтверждения"
//	@Success		200		{object}	ConfirmResponse
//	@Failure		404		{object}	ErrorResponse	"Сессия или подтверждение не найдены"
//	@Failure		409		{object}	ErrorResponse	"Корзина пуста, изменилась после запроса или товар отсутствует"
//	@Router			/sessions/{sid}/confirmations/{token} [post]
func (h *ConfirmationHandler) confirm(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")

	res, err := h.storefrontUsecase.Confirm(r.Context(), sid, confirm.Token(chi.URLParam(r, "token")))
	if err != nil {
		WriteError(w, err)
		return
	}

	if res.Receipt != nil {
		h.logger.Infof("order placed (order_id: %s, session_id: %s, total: %s)",
			res.Receipt.OrderID, sid, res.Receipt.TotalPrice.String())
	}

	WriteSuccess(w, http.StatusOK, ConfirmResponse{
		Kind:    string(res.Kind),
		Cart:    toCartDTO(res.Cart),
		Receipt: toReceiptDTO(res.Receipt),
	})
}

// cancel
//
//	@Summary		Отменить действие
//	@Description	Неизвестный токен игнорируется
//	@Tags			confirmations
//	@Param			sid		path	string	true	"ID сессии"
//	@Param			token	path	string	true	"Токен подтверждения"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse	"Сессия не найдена"
//	@Router			/sessions/{sid}/confirmations/{token} [delete]
func (h *ConfirmationHandler) cancel(w http.ResponseWriter, r *http.Request) {
	err := h.storefrontUsecase.Cancel(r.Context(), chi.URLParam(r, "sid"), confirm.Token(chi.URLParam(r, "token")))
	if err != nil {
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
