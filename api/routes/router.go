package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cocobloom/storefront-backend/api/controllers"
	cartcontrollers "github.com/cocobloom/storefront-backend/api/controllers/cart"
	"github.com/cocobloom/storefront-backend/api/middleware"
	"github.com/cocobloom/storefront-backend/internal/cart"
	checkoutsvc "github.com/cocobloom/storefront-backend/internal/checkout"
	"github.com/cocobloom/storefront-backend/internal/orders"
	"github.com/cocobloom/storefront-backend/internal/products"
	"github.com/cocobloom/storefront-backend/pkg/config"
	"github.com/cocobloom/storefront-backend/pkg/db"
	"github.com/cocobloom/storefront-backend/pkg/logger"
	"github.com/cocobloom/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	productService products.Service,
	cartService cart.Service,
	checkoutService checkoutsvc.Service,
	ordersService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Session-Id", "Idempotency-Key", "X-Admin-Token"},
		ExposedHeaders: []string{"X-Session-Id", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	promoLimiter := middleware.RateLimit(
		middleware.NewRateLimitPolicy("promo", cfg.RateLimit.Window, cfg.RateLimit.PromoIPLimit, cfg.RateLimit.PromoSessionLimit),
		redisClient, logg,
	)
	checkoutLimiter := middleware.RateLimit(
		middleware.NewRateLimitPolicy("checkout", cfg.RateLimit.Window, cfg.RateLimit.CheckoutIPLimit, cfg.RateLimit.CheckoutSessionLimit),
		redisClient, logg,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(productService, logg))
			r.Get("/{slug}", controllers.ProductBySlug(productService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(cartService, logg))
			r.Post("/items", cartcontrollers.CartAddItem(cartService, logg))
			r.Put("/items/{productId}", cartcontrollers.CartSetQty(cartService, logg))
			r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(cartService, logg))
			r.Delete("/", cartcontrollers.CartClear(cartService, logg))
			r.With(promoLimiter).Post("/promo", cartcontrollers.PromoApply(cartService, logg))
			r.Delete("/promo", cartcontrollers.PromoRemove(cartService, logg))
		})

		r.With(checkoutLimiter).Post("/checkout", controllers.CheckoutSubmit(checkoutService, logg))
		r.Post("/orders/track", controllers.OrderTrack(ordersService, logg))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminToken(cfg.Admin.Token, logg))

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.AdminProductCreate(productService, logg))
				r.Put("/{id}", controllers.AdminProductUpdate(productService, logg))
				r.Delete("/{id}", controllers.AdminProductDelete(productService, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrderList(ordersService, logg))
				r.Get("/{code}", controllers.AdminOrderDetail(ordersService, logg))
				r.Post("/{code}/status", controllers.AdminOrderAdvanceStatus(ordersService, logg))
			})
		})
	})

	return r
}
