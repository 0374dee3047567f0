package app

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/techstore/admin-manager/config"
	httpapi "github.com/techstore/admin-manager/internal/api/http"
	"github.com/techstore/admin-manager/internal/apisrv/admin"
	"github.com/techstore/admin-manager/internal/apisrv/auth"
	"github.com/techstore/admin-manager/internal/dependency"
	"github.com/techstore/admin-manager/internal/report"
	"github.com/techstore/admin-manager/internal/revalidation"
	"github.com/techstore/admin-manager/internal/store"
)

// App is the main application
type App struct {
	hs   *httpapi.Server
	db   dependency.Repository
	c    *config.Config
	done chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting admin manager")

	a.db, err = store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to mysql",
			slog.String("err", err.Error()),
		)
		return err
	}

	authS, err := auth.New(&a.c.Auth, a.db.Admin())
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to create auth server",
			slog.String("err", err.Error()),
		)
		return err
	}

	b, err := a.c.Bucket.Init()
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to init bucket",
			slog.String("err", err.Error()),
		)
		return err
	}

	loc, err := time.LoadLocation(a.c.Stats.Timezone)
	if err != nil {
		return fmt.Errorf("bad stats timezone %q: %w", a.c.Stats.Timezone, err)
	}

	reports := report.New(a.db.Orders(), a.db.Products(), a.db.Customers(), loc)
	rv := revalidation.New(&a.c.Revalidation)
	adminS := admin.New(a.db, b, rv, reports, a.c.Stats.CacheTTL)

	a.hs = httpapi.New(&a.c.HTTP)
	if err = a.hs.Start(ctx, adminS, authS); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server shutdown failed",
				slog.String("err", err.Error()),
			)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
	close(a.done)
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
