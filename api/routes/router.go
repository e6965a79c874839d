package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Aman2975/hugli-backend/api/controllers"
	"github.com/Aman2975/hugli-backend/api/middleware"
	"github.com/Aman2975/hugli-backend/internal/auth"
	"github.com/Aman2975/hugli-backend/internal/cart"
	"github.com/Aman2975/hugli-backend/internal/catalog"
	"github.com/Aman2975/hugli-backend/internal/checkout"
	"github.com/Aman2975/hugli-backend/internal/contact"
	"github.com/Aman2975/hugli-backend/internal/notifications"
	"github.com/Aman2975/hugli-backend/internal/orders"
	"github.com/Aman2975/hugli-backend/internal/users"
	"github.com/Aman2975/hugli-backend/pkg/auth/session"
	"github.com/Aman2975/hugli-backend/pkg/config"
	"github.com/Aman2975/hugli-backend/pkg/db"
	"github.com/Aman2975/hugli-backend/pkg/enums"
	"github.com/Aman2975/hugli-backend/pkg/logger"
	"github.com/Aman2975/hugli-backend/pkg/metrics"
	redisclient "github.com/Aman2975/hugli-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             *db.Client
	Redis          *redisclient.Client
	SessionManager *session.Manager
	Metrics        *metrics.HTTPMetrics
	MetricsHandler http.Handler

	Auth          auth.Service
	Addresses     users.AddressService
	Catalog       catalog.Service
	Cart          cart.Service
	Checkout      checkout.Service
	Orders        orders.Service
	Contact       contact.Service
	Notifications notifications.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.Metrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	otpPolicy := middleware.NewAuthRateLimitPolicy(
		"otp",
		cfg.AuthRateLimit.OTPWindow,
		cfg.AuthRateLimit.OTPIPLimit,
		cfg.AuthRateLimit.OTPEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, d.DB, d.Redis, logg))
	})

	if d.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", d.MetricsHandler)
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(d.Catalog, logg))
			r.Get("/{slug}", controllers.ProductGet(d.Catalog, logg))
		})

		r.Get("/business", controllers.BusinessInfo(cfg))
		r.Post("/contact", controllers.ContactSubmit(d.Contact, d.Metrics, logg))

		// Carts work for guests with an X-Cart-Session header and for
		// logged-in users by their user ID.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(cfg.JWT, d.SessionManager, logg))
			r.Use(middleware.CartOwner(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(d.Cart, logg))
				r.Post("/items", controllers.CartAddItem(d.Cart, logg))
				r.Put("/items/{cartId}", controllers.CartUpdateQuantity(d.Cart, logg))
				r.Delete("/items/{cartId}", controllers.CartRemoveItem(d.Cart, logg))
				r.Delete("/", controllers.CartClear(d.Cart, logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/draft", controllers.CheckoutGetDraft(d.Checkout, logg))
				r.Put("/draft/customer-info", controllers.CheckoutSaveCustomerInfo(d.Checkout, logg))
				r.Put("/draft/delivery-info", controllers.CheckoutSaveDeliveryInfo(d.Checkout, logg))
				r.Put("/draft/preferences", controllers.CheckoutSavePreferences(d.Checkout, logg))
				r.Post("/draft/advance", controllers.CheckoutAdvance(d.Checkout, logg))
				r.Post("/draft/back", controllers.CheckoutBack(d.Checkout, logg))
				r.Post("/submit", controllers.CheckoutSubmit(d.Checkout, d.Metrics, logg))
			})

			r.Post("/orders", controllers.OrdersCreate(d.Orders, d.Metrics, logg))
		})

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).Post("/register", controllers.AuthRegister(d.Auth, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/login", controllers.AuthLogin(d.Auth, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/admin/login", controllers.AdminAuthLogin(d.Auth, logg))
			r.With(middleware.AuthRateLimit(otpPolicy, d.Redis, logg)).Post("/send-otp", controllers.AuthSendOTP(d.Auth, logg))
			r.With(middleware.AuthRateLimit(otpPolicy, d.Redis, logg)).Post("/verify-otp", controllers.AuthVerifyOTP(d.Auth, logg))
			r.With(middleware.AuthRateLimit(otpPolicy, d.Redis, logg)).Post("/forgot-password", controllers.AuthForgotPassword(d.Auth, logg))
			r.With(middleware.AuthRateLimit(otpPolicy, d.Redis, logg)).Post("/reset-password", controllers.AuthResetPassword(d.Auth, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, d.SessionManager, logg))

				r.Post("/logout", controllers.AuthLogout(d.Auth, logg))
				r.Get("/profile", controllers.AuthProfile(d.Auth, logg))
				r.Put("/profile", controllers.AuthUpdateProfile(d.Auth, logg))
				r.Put("/change-password", controllers.AuthChangePassword(d.Auth, logg))

				r.Route("/addresses", func(r chi.Router) {
					r.Get("/", controllers.AddressList(d.Addresses, logg))
					r.Post("/", controllers.AddressCreate(d.Addresses, logg))
					r.Put("/{id}", controllers.AddressUpdate(d.Addresses, logg))
					r.Delete("/{id}", controllers.AddressDelete(d.Addresses, logg))
					r.Put("/{id}/default", controllers.AddressSetDefault(d.Addresses, logg))
				})
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, d.SessionManager, logg))

			r.Get("/orders", controllers.OrdersListMine(d.Orders, logg))
			r.Get("/orders/{id}", controllers.OrdersGetMine(d.Orders, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, d.SessionManager, logg))
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrdersList(d.Orders, logg))
				r.Get("/stats", controllers.AdminOrderStats(d.Orders, logg))
				r.Get("/{id}", controllers.AdminOrderGet(d.Orders, logg))
				r.Put("/{id}/status", controllers.AdminOrderUpdateStatus(d.Orders, logg))
				r.Delete("/{id}", controllers.AdminOrderDelete(d.Orders, logg))
			})

			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", controllers.AdminContactsList(d.Contact, logg))
				r.Get("/{id}", controllers.AdminContactGet(d.Contact, logg))
				r.Put("/{id}/status", controllers.AdminContactUpdateStatus(d.Contact, logg))
				r.Delete("/{id}", controllers.AdminContactDelete(d.Contact, logg))
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", controllers.NotificationsList(d.Notifications, logg))
				r.Put("/{id}/read", controllers.NotificationMarkRead(d.Notifications, logg))
			})
		})
	})

	return r
}
