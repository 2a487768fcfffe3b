package http

import (
	_ "github.com/DRSN-tech/pharmacy-storefront/docs" // регистрация swagger-спецификации
	"github.com/DRSN-tech/pharmacy-storefront/internal/cfg"
	"github.com/DRSN-tech/pharmacy-storefront/internal/usecase"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	cfg    *cfg.HTTPConfig
	logger logger.Logger
}

func NewRouter(router *chi.Mux, cfg *cfg.HTTPConfig, logger logger.Logger) *Router {
	return &Router{router: router, cfg: cfg, logger: logger}
}

// Init регистрирует маршруты. limiter может быть nil, тогда ограничение запросов отключено.
func (r *Router) Init(uc usecase.StorefrontUC, limiter usecase.RateLimiter) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.RealIP)
	r.router.Use(RequestLogger(r.logger))
	r.router.Use(middleware.Recoverer)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(r.cfg.SwaggerURL),
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		if limiter != nil {
			v1.Use(RateLimit(limiter, r.logger))
		}

		registerProductRoutes(v1, NewProductHandler(uc, r.logger))
		registerSessionRoutes(v1,
			NewSessionHandler(uc, r.logger),
			NewCartHandler(uc, r.logger),
			NewConfirmationHandler(uc, r.logger),
		)
	})
}

// Handler возвращает корневой обработчик для сервера.
func (r *Router) Handler() *chi.Mux {
	return r.router
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Get("/categories", prHandler.listCategories)
	router.Get("/search", prHandler.search)
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.listProducts)
		pr.Get("/{id}", prHandler.openProduct)
	})
}

func registerSessionRoutes(router chi.Router, sHandler *SessionHandler, cHandler *CartHandler, cfHandler *ConfirmationHandler) {
	router.Post("/sessions", sHandler.createSession)
	router.Route("/sessions/{sid}", func(s chi.Router) {
		s.Delete("/", sHandler.closeSession)

		s.Post("/searches", sHandler.submitSearch)
		s.Get("/searches", sHandler.recentSearches)

		s.Get("/cart", cHandler.getCart)
		s.Post("/cart/items", cHandler.addItem)
		s.Put("/cart/items/{pid}", cHandler.setQuantity)
		s.Delete("/cart/items/{pid}", cHandler.removeItem)
		s.Post("/cart/items/{pid}/increment", cHandler.incrementItem)
		s.Post("/cart/items/{pid}/decrement", cHandler.decrementItem)
		s.Post("/checkout", cHandler.checkout)

		s.Get("/confirmations", cfHandler.listPending)
		s.Post("/confirmations/{token}", cfHandler.confirm)
		s.Delete("/confirmations/{token}", cfHandler.cancel)
	})
}
