// Package httpapi exposes the admin console's JSON API.
package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/techstore/admin-manager/internal/apisrv/admin"
	"github.com/techstore/admin-manager/internal/apisrv/auth"
	"github.com/techstore/admin-manager/internal/ratelimit"
)

// Config is the configuration for the http server
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Server is the http server
type Server struct {
	hs   *http.Server
	c    *Config
	done chan struct{}
}

// New creates a new server
func New(config *Config) *Server {
	return &Server{
		c:    config,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router(adminServer *admin.Server, authServer *auth.Server) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.c.AllowedOrigins,
		AllowedMethods:   []string{"GET", "PUT", "POST", "DELETE", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	h := &handlers{
		admin:  adminServer,
		auth:   authServer,
		limits: ratelimit.NewOrderLimiter(100, 20),
	}

	// public surface consumed by the dashboard and the storefront
	r.Get("/api/stats", h.getStats)
	r.Get("/api/stats/categories", h.getCategoryStats)
	r.Get("/api/stats/sales/{month}", h.getMonthlySales)
	r.Post("/api/orders", h.createOrder)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", h.login)
		r.Post("/create", h.createAdmin)
		r.Post("/delete", h.deleteAdmin)
		r.Post("/change-password", h.changePassword)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authServer.WithAuth)

		r.Post("/images", h.uploadImage)

		r.Route("/products", func(r chi.Router) {
			r.Post("/", h.addProduct)
			r.Get("/", h.listProducts)
			r.Get("/{id}", h.getProduct)
			r.Put("/{id}", h.updateProduct)
			r.Put("/{id}/featured", h.setProductFeatured)
			r.Delete("/{id}", h.deleteProduct)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.listOrders)
			r.Get("/{id}", h.getOrder)
			r.Put("/{id}/status", h.updateOrderStatus)
			r.Put("/{id}/driver", h.assignDriver)
			r.Delete("/{id}", h.deleteOrder)
		})

		r.Route("/drivers", func(r chi.Router) {
			r.Post("/", h.addDriver)
			r.Get("/", h.listDrivers)
			r.Get("/email/{email}", h.getDriverByEmail)
			r.Get("/{id}", h.getDriver)
			r.Put("/{id}", h.updateDriver)
			r.Delete("/{id}", h.deleteDriver)
		})
	})

	return r
}

// Start starts the server
func (s *Server) Start(ctx context.Context, adminServer *admin.Server, authServer *auth.Server) error {
	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              listenerAddr,
		Handler:           s.router(adminServer, authServer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Default().InfoContext(ctx, fmt.Sprintf("admin-manager new listener on: http://%v", listenerAddr))
		err := s.hs.ListenAndServe()
		if err == http.ErrServerClosed {
			slog.Default().InfoContext(ctx, "http server returned")
		} else {
			slog.Default().ErrorContext(ctx, "http server exited with an error",
				slog.String("err", err.Error()),
			)
		}
		close(s.done)
	}()

	return nil
}

// Stop shuts the server down, draining in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	return s.hs.Shutdown(ctx)
}
