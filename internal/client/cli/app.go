package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/campaignkeeper/internal/client/authstate"
	"github.com/dmitrijs2005/campaignkeeper/internal/client/campaignstate"
	"github.com/dmitrijs2005/campaignkeeper/internal/client/client"
	"github.com/dmitrijs2005/campaignkeeper/internal/client/config"
	"github.com/dmitrijs2005/campaignkeeper/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/campaignkeeper/internal/client/services"
	"github.com/dmitrijs2005/campaignkeeper/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	config    *config.Config
	services  *services.Services
	session   *authstate.Container
	campaigns *campaignstate.Store
	metrics   prometheus.Gatherer
	logger    logging.Logger
	reader    *bufio.Reader
	out       io.Writer
	db        *sql.DB
}

// NewApp opens the credentials database and wires the pipeline, the
// session and the services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := credentials.Open(ctx, c.CredentialsDSN)
	if err != nil {
		logger.Error(ctx, "error initializing database", "dsn", c.CredentialsDSN, "error", err)
		return nil, err
	}

	sqliteStore := credentials.NewSQLiteStore(db)
	if n, err := sqliteStore.PurgeExpired(ctx); err != nil {
		logger.Warn(ctx, "purge expired credentials", "error", err)
	} else if n > 0 {
		logger.Debug(ctx, "purged expired credentials", "count", n)
	}

	var store authstate.BatchStore = sqliteStore
	if c.CredentialsKey != "" {
		if store, err = credentials.NewSealedStore(ctx, sqliteStore, []byte(c.CredentialsKey)); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	session := authstate.New(store, authstate.WithLogger(logger))

	reg := prometheus.NewRegistry()
	apiClient, err := client.New(c.ServerBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithTokenSource(session),
		client.WithLogger(logger),
		client.WithMetrics(client.NewMetrics(reg)),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:    c,
		services:  services.New(apiClient, session),
		session:   session,
		campaigns: campaignstate.New(logger),
		metrics:   reg,
		logger:    logger,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		db:        db,
	}, nil
}

// Run restores the previous session and serves the REPL until the input
// ends or the user quits.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.services.Auth.Restore(ctx); err != nil {
		a.logger.Warn(ctx, "restore session", "error", err)
	}

	fmt.Fprintf(a.out, "campaignkeeper (%s), type 'help' for commands\n", a.config.ServerBaseURL)
	if a.isLoggedIn() {
		if err := a.campaigns.Refresh(ctx, a.services.Campaigns); err != nil {
			printlnFn("error:", err)
		}
	}

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *App) isLoggedIn() bool {
	return a.session.Current().Authenticated()
}

func (a *App) getStatus() string {
	s := a.session.Current()
	if !s.Authenticated() {
		return "(logged out)"
	}

	name := "?"
	if s.User != nil {
		name = s.User.Username
	}
	if c := a.campaigns.Current(); c != nil {
		return fmt.Sprintf("(%s @ %s)", name, c.Name)
	}
	return fmt.Sprintf("(%s)", name)
}

// currentCampaign returns the id of the campaign selected with "use".
func (a *App) currentCampaign() (int64, error) {
	c := a.campaigns.Current()
	if c == nil {
		return 0, errNoCampaign
	}
	return c.ID, nil
}
