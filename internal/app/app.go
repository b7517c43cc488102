// Package app wires one rubico session: config → logger → store → state
// manager. Each process builds its own container; nothing is global.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/roach88/rubico/internal/config"
	"github.com/roach88/rubico/internal/logger"
	"github.com/roach88/rubico/internal/state"
	"github.com/roach88/rubico/internal/store"
)

// stopTimeout bounds closing the store after a command.
const stopTimeout = 5 * time.Second

// Module provides *zap.Logger, *store.Store and *state.Manager given a
// *config.Config.
var Module = fx.Module("rubico",
	fx.Provide(
		newLogger,
		newStore,
		newManager,
	),
)

// Session is what a command gets to work with.
type Session struct {
	Manager *state.Manager
	Log     *zap.Logger
}

// Run builds a container from cfg, loads both collections and calls fn
// with the session. The store is closed when fn returns. extra is appended
// to the container options; tests use it to supply store and state options.
func Run(ctx context.Context, cfg *config.Config, fn func(ctx context.Context, s *Session) error, extra ...fx.Option) (err error) {
	var sess Session
	opts := []fx.Option{
		fx.Supply(cfg),
		Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Populate(&sess.Manager, &sess.Log),
	}
	app := fx.New(append(opts, extra...)...)
	if err := app.Err(); err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start app: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stopTimeout)
		defer cancel()
		err = multierr.Append(err, app.Stop(stopCtx))
	}()

	if err := sess.Manager.LoadCustomers(ctx); err != nil {
		return err
	}
	if err := sess.Manager.LoadInvoices(ctx); err != nil {
		return err
	}
	return fn(ctx, &sess)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.LogLevel)
}

// storeParams takes optional extra store options, applied after the ones
// derived from config.
type storeParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Log       *zap.Logger
	Options   []store.Option `optional:"true"`
}

func newStore(p storeParams) (*store.Store, error) {
	opts := append([]store.Option{
		store.WithLogger(p.Log),
		store.WithBusyTimeout(p.Config.BusyTimeoutMS),
	}, p.Options...)
	s, err := store.Open(p.Config.DBPath, opts...)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return s.Close()
		},
	})
	return s, nil
}

type managerParams struct {
	fx.In

	Store   *store.Store
	Log     *zap.Logger
	Options []state.Option `optional:"true"`
}

func newManager(p managerParams) *state.Manager {
	opts := append([]state.Option{state.WithLogger(p.Log)}, p.Options...)
	return state.New(p.Store.Customers(), p.Store.Invoices(), opts...)
}
