package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tagreview/internal/config"
	"tagreview/internal/logging"
	"tagreview/internal/records"
	"tagreview/internal/vocab"
	"tagreview/internal/workspace"
)

type commandContext struct {
	configFlag *string
	dbFlag     *string
	sessionID  string

	configOnce sync.Once
	config     *config.Config
	configErr  error
	logger     *slog.Logger
}

func newCommandContext(configFlag, dbFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		dbFlag:     dbFlag,
		sessionID:  uuid.NewString(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.logger = logger
	})
	return c.config, c.configErr
}

// baseContext tags the command context with the session id for log correlation.
func (c *commandContext) baseContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithSessionID(ctx, c.sessionID)
}

func (c *commandContext) loggerValue() *slog.Logger {
	if c.logger == nil {
		return logging.NewNop()
	}
	return c.logger
}

func (c *commandContext) workspace() (*workspace.Workspace, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return workspace.New(cfg.Paths.StoreDir, c.loggerValue()), nil
}

func (c *commandContext) vocabulary() (*vocab.Vocabulary, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return vocab.Load(cfg.Vocabulary.Path)
}

// storeRef returns --db when given, otherwise the configured default store.
func (c *commandContext) storeRef() string {
	if c.dbFlag != nil && strings.TrimSpace(*c.dbFlag) != "" {
		return strings.TrimSpace(*c.dbFlag)
	}
	if c.config != nil {
		return c.config.Store.Name
	}
	return ""
}

func (c *commandContext) storePath() (string, error) {
	ws, err := c.workspace()
	if err != nil {
		return "", err
	}
	return ws.Resolve(c.storeRef())
}

// withStore opens the selected store for the duration of fn. Queries and
// exports pass readOnly so they never contend for the reviewer lock.
func (c *commandContext) withStore(ctx context.Context, readOnly bool, fn func(*records.Store) error) error {
	path, err := c.storePath()
	if err != nil {
		return err
	}
	return c.withStoreAt(ctx, path, readOnly, fn)
}

func (c *commandContext) withStoreAt(ctx context.Context, path string, readOnly bool, fn func(*records.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := records.Open(ctx, path, records.Options{
		ReadOnly:    readOnly,
		BusyTimeout: time.Duration(cfg.Store.BusyTimeoutMS) * time.Millisecond,
		Logger:      c.loggerValue(),
	})
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
