package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"minderbook/internal/config"
	"minderbook/internal/http-server/handlers/admin/listUsers"
	"minderbook/internal/http-server/handlers/admin/reviewDocument"
	"minderbook/internal/http-server/handlers/admin/updateBookingStatus"
	"minderbook/internal/http-server/handlers/auth/login"
	"minderbook/internal/http-server/handlers/auth/logout"
	"minderbook/internal/http-server/handlers/auth/register"
	"minderbook/internal/http-server/handlers/billing/subscribe"
	"minderbook/internal/http-server/handlers/booking/cancelBooking"
	"minderbook/internal/http-server/handlers/booking/createBooking"
	"minderbook/internal/http-server/handlers/booking/listBookings"
	"minderbook/internal/http-server/handlers/booking/respondBooking"
	"minderbook/internal/http-server/handlers/child/addChild"
	"minderbook/internal/http-server/handlers/child/listChildren"
	"minderbook/internal/http-server/handlers/childminder/recommendedChildminders"
	"minderbook/internal/http-server/handlers/childminder/searchChildminders"
	"minderbook/internal/http-server/handlers/document/listDocuments"
	"minderbook/internal/http-server/handlers/document/uploadDocument"
	"minderbook/internal/http-server/handlers/message/listMessages"
	"minderbook/internal/http-server/handlers/message/sendMessage"
	"minderbook/internal/http-server/handlers/profile/updateProfile"
	"minderbook/internal/http-server/handlers/support/createTicket"
	"minderbook/internal/http-server/handlers/support/listTickets"
	"minderbook/internal/http-server/handlers/support/replyTicket"
	"minderbook/internal/http-server/handlers/support/updateTicket"
	"minderbook/internal/http-server/middleware/mwauth"
	"minderbook/internal/http-server/middleware/mwlogger"
	"minderbook/internal/http-server/middleware/mwmetrics"
	"minderbook/internal/lib/logger/handlers/slogpretty"
	"minderbook/internal/lib/logger/sl"
	"minderbook/internal/models"
	"minderbook/internal/notify"
	"minderbook/internal/notify/events"
	"minderbook/internal/notify/mailgraph"
	"minderbook/internal/payments"
	"minderbook/internal/storage/postgres"
	"minderbook/internal/storage/redisstore"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting minderbook", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	sessions, err := redisstore.New(context.Background(), &cfg.Redis)
	if err != nil {
		log.Error("failed to init session store", sl.Err(err))
		os.Exit(1)
	}

	var mailer notify.Mailer = &notify.ConsoleMailer{Log: log}
	if cfg.Mail.Enabled {
		mailer = mailgraph.New(&cfg.Mail)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		publisher, err = events.NewAMQPPublisher(&cfg.Events)
		if err != nil {
			log.Error("failed to init event publisher", sl.Err(err))
			os.Exit(1)
		}
	}

	payClient, err := payments.New(&cfg.Payments)
	if err != nil {
		log.Error("failed to init payment client", sl.Err(err))
		os.Exit(1)
	}

	notifier := notify.NewService(log, mailer, storage, publisher)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(mwmetrics.New())
	router.Use(mwauth.New(log, sessions))

	fs := http.FileServer(http.Dir("./static/"))
	router.Handle("/static/*", http.StripPrefix("/static/", fs))

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/static/index.html", http.StatusFound)
	})

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", register.New(log, storage, notifier))
		r.Post("/auth/login", login.New(log, storage, sessions))
		r.Post("/auth/logout", logout.New(log, sessions))

		r.Get("/childminders", searchChildminders.New(log, storage))
		r.Get("/childminders/recommended", recommendedChildminders.New(log, storage))

		r.Group(func(r chi.Router) {
			r.Use(mwauth.RequireRole(models.RoleParent, models.RoleChildminder, models.RoleAdmin))

			r.Get("/bookings", listBookings.New(log, storage))
			r.Post("/bookings/{id}/cancel", cancelBooking.New(log, storage, notifier))
			r.Post("/bookings/{id}/respond", respondBooking.New(log, storage, notifier))

			r.Post("/documents", uploadDocument.New(log, storage))
			r.Get("/documents", listDocuments.New(log, storage))

			r.Post("/support", createTicket.New(log, storage, notifier))
			r.Get("/support", listTickets.New(log, storage))
			r.Post("/support/{id}/messages", replyTicket.New(log, storage, notifier))

			r.Post("/messages", sendMessage.New(log, storage, notifier))
			r.Get("/messages", listMessages.New(log, storage))

			r.Put("/profile", updateProfile.New(log, storage, notifier))
		})

		r.Group(func(r chi.Router) {
			r.Use(mwauth.RequireRole(models.RoleParent))

			r.Post("/bookings", createBooking.New(log, storage, notifier))
			r.Post("/children", addChild.New(log, storage))
			r.Get("/children", listChildren.New(log, storage))
		})

		r.Group(func(r chi.Router) {
			r.Use(mwauth.RequireRole(models.RoleChildminder))

			r.Post("/billing/subscribe", subscribe.New(log, payClient, storage))
		})

		r.Group(func(r chi.Router) {
			r.Use(mwauth.RequireRole(models.RoleAdmin))

			r.Get("/admin/users", listUsers.New(log, storage))
			r.Patch("/admin/bookings/{id}/status", updateBookingStatus.New(log, storage, notifier))
			r.Get("/admin/documents", listDocuments.New(log, storage))
			r.Patch("/admin/documents/{id}", reviewDocument.New(log, storage, notifier))
			r.Patch("/admin/support/{id}", updateTicket.New(log, storage))
		})
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				n, err := storage.CompleteElapsedBookings()
				if err != nil {
					log.Error("failed to complete elapsed bookings", sl.Err(err))
				} else if n > 0 {
					log.Info("completed elapsed bookings", slog.Int64("count", n))
				}
			case <-stop:
				return
			}
		}
	}()

	go func() {
		if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = publisher.Close(); err != nil {
		log.Error("failed to close event publisher", sl.Err(err))
	}

	if err = sessions.Close(); err != nil {
		log.Error("failed to close redis connection", sl.Err(err))
	}

	if err = storage.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("connections closed")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
