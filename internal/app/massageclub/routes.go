// Package massageclub предоставляет маршруты для основного приложения.
package massageclub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/massage-club/internal/http/handlers/appointment/book"
	appointmentcancel "github.com/magabrotheeeer/massage-club/internal/http/handlers/appointment/cancel"
	"github.com/magabrotheeeer/massage-club/internal/http/handlers/appointment/list"
	"github.com/magabrotheeeer/massage-club/internal/http/handlers/appointment/slots"
	"github.com/magabrotheeeer/massage-club/internal/http/handlers/appointment/upcoming"
	"github.com/magabrotheeeer/massage-club/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/massage-club/internal/http/handlers/auth/profileread"
	"github.com/magabrotheeeer/massage-club/internal/http/handlers/auth/profileupdate"
	"github.com/magabrotheeeer/massage-club/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/massage-club/internal/http/handlers/content/contentlist"
	"github.com/magabrotheeeer/massage-club/internal/http/handlers/content/featured"
	"github.com/magabrotheeeer/massage-club/internal/http/handlers/content/latest"
	contentread "github.com/magabrotheeeer/massage-club/internal/http/handlers/content/read"
	"github.com/magabrotheeeer/massage-club/internal/http/handlers/plan/planlist"
	subscriptioncancel "github.com/magabrotheeeer/massage-club/internal/http/handlers/subscription/cancel"
	"github.com/magabrotheeeer/massage-club/internal/http/handlers/subscription/mysubscription"
	"github.com/magabrotheeeer/massage-club/internal/http/handlers/subscription/pause"
	"github.com/magabrotheeeer/massage-club/internal/http/handlers/subscription/paymenthistory"
	"github.com/magabrotheeeer/massage-club/internal/http/handlers/subscription/resume"
	"github.com/magabrotheeeer/massage-club/internal/http/handlers/subscription/subscribe"
	"github.com/magabrotheeeer/massage-club/internal/http/middlewarectx"
	appointmentservice "github.com/magabrotheeeer/massage-club/internal/services/appointment"
	authservice "github.com/magabrotheeeer/massage-club/internal/services/auth"
	contentservice "github.com/magabrotheeeer/massage-club/internal/services/content"
	subscriptionservice "github.com/magabrotheeeer/massage-club/internal/services/subscription"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	tokenParser middlewarectx.TokenParser,
	authService *authservice.AuthService,
	subscriptionService *subscriptionservice.SubscriptionService,
	appointmentService *appointmentservice.AppointmentService,
	contentService *contentservice.ContentService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Get("/plans", planlist.New(logger, subscriptionService).ServeHTTP)
		r.Get("/content/featured", featured.New(logger, contentService).ServeHTTP)
		r.Get("/content/latest", latest.New(logger, contentService).ServeHTTP)
		r.Get("/appointments/available-slots", slots.New(logger, appointmentService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokenParser, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/auth/me", profileread.New(logger, authService).ServeHTTP)
			r.Put("/auth/me", profileupdate.New(logger, authService).ServeHTTP)

			r.Post("/subscriptions/subscribe", subscribe.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions/my-subscription", mysubscription.New(logger, subscriptionService).ServeHTTP)
			r.Post("/subscriptions/cancel", subscriptioncancel.New(logger, subscriptionService).ServeHTTP)
			r.Post("/subscriptions/pause", pause.New(logger, subscriptionService).ServeHTTP)
			r.Post("/subscriptions/resume", resume.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions/payment-history", paymenthistory.New(logger, subscriptionService).ServeHTTP)

			r.Post("/appointments", book.New(logger, appointmentService).ServeHTTP)
			r.Get("/appointments", list.New(logger, appointmentService).ServeHTTP)
			r.Get("/appointments/upcoming", upcoming.New(logger, appointmentService).ServeHTTP)
			r.Post("/appointments/{id}/cancel", appointmentcancel.New(logger, appointmentService).ServeHTTP)

			r.Get("/content", contentlist.New(logger, contentService).ServeHTTP)
			r.Get("/content/category/{category}", contentlist.New(logger, contentService).ServeHTTP)
			r.Get("/content/{id}", contentread.New(logger, contentService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
