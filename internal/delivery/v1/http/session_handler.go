package http

import (
	"net/http"

	"github.com/DRSN-tech/pharmacy-storefront/internal/usecase"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type SessionHandler struct {
	storefrontUsecase usecase.StorefrontUC
	logger            logger.Logger
}

func NewSessionHandler(storefrontUsecase usecase.StorefrontUC, logger logger.Logger) *SessionHandler {
	return &SessionHandler{storefrontUsecase: storefrontUsecase, logger: logger}
}

// createSession
//
//	@Summary	Новая сессия
//	@Tags		sessions
//	@Produce	json
//	@Success	201	{object}	SessionResponse
//	@Router		/sessions [post]
func (h *SessionHandler) createSession(w http.ResponseWriter, r *http.Request) {
	id := h.storefrontUsecase.CreateSession(r.Context())
	h.logger.Debugf("session created (session_id: %s)", id)

	WriteSuccess(w, http.StatusCreated, SessionResponse{SessionID: id})
}

// closeSession
//
//	@Summary	Закрыть сессию
//	@Tags		sessions
//	@Param		sid	path	string	true	"ID сессии"
//	@Success	204
//	@Router		/sessions/{sid} [delete]
func (h *SessionHandler) closeSession(w http.ResponseWriter, r *http.Request) {
	h.storefrontUsecase.CloseSession(r.Context(), chi.URLParam(r, "sid"))
	w.WriteHeader(http.StatusNoContent)
}

// submitSearch
//
//	@Summary		Сохранить поисковый запрос
//	@Description	Запрос добавляется в историю сессии (не более 5, новые первыми)
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			sid		path		string			true	"ID сессии"
//	@Param			request	body		SearchRequest	true	"Запрос"
//	@Success		200		{object}	RecentSearchesResponse
//	@Failure		404		{object}	ErrorResponse	"Сессия не найдена"
//	@Router			/sessions/{sid}/searches [post]
func (h *SessionHandler) submitSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	recent, err := h.storefrontUsecase.SubmitSearch(r.Context(), chi.URLParam(r, "sid"), req.Query)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, RecentSearchesResponse{Searches: recent})
}

// recentSearches
//
//	@Summary	История поиска сессии
//	@Tags		sessions
//	@Produce	json
//	@Param		sid	path		string	true	"ID сессии"
//	@Success	200	{object}	RecentSearchesResponse
//	@Failure	404	{object}	ErrorResponse	"Сессия не найдена"
//	@Router		/sessions/{sid}/searches [get]
func (h *SessionHandler) recentSearches(w http.ResponseWriter, r *http.Request) {
	recent, err := h.storefrontUsecase.RecentSearches(r.Context(), chi.URLParam(r, "sid"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, RecentSearchesResponse{Searches: recent})
}
