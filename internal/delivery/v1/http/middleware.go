package http

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/DRSN-tech/pharmacy-storefront/internal/usecase"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/e"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
)

// RateLimit ограничивает число запросов с одного адреса.
// Ошибка хранилища не блокирует запрос.
func RateLimit(limiter usecase.RateLimiter, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			quota, err := limiter.Allow(r.Context(), clientKey(r))
			if err != nil {
				log.Warnf("rate limiter unavailable: %v", err)
			}

			if quota != nil {
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(quota.Limit))
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(quota.Remaining))

				if !quota.Allowed {
					w.Header().Set("Retry-After", strconv.Itoa(int(quota.ResetIn.Round(time.Second).Seconds())))
					WriteError(w, e.ErrTooManyRequests)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger пишет в лог метод, путь, статус и длительность запроса.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Debugf("%s %s %d %s (request_id: %s)",
				r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
		})
	}
}

// clientKey — адрес клиента без порта. RealIP уже подставил X-Forwarded-For.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
