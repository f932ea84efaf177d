package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"shortcast/internal/catalog"
	"shortcast/internal/config"
	"shortcast/internal/logging"
	"shortcast/internal/notifications"
	"shortcast/internal/pipeline"
	"shortcast/internal/project"
	"shortcast/internal/services/generator"
	"shortcast/internal/services/render"
	"shortcast/internal/services/tts"
	"shortcast/internal/services/youtube"
)

// commandContext shares lazily-built collaborators between subcommands.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	catalogOnce sync.Once
	catalog     *catalog.Store
	catalogErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
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
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) ensureCatalog() (*catalog.Store, error) {
	c.catalogOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.catalogErr = err
			return
		}
		c.catalog, c.catalogErr = catalog.Open(cfg)
	})
	return c.catalog, c.catalogErr
}

func (c *commandContext) notifier() (notifications.Service, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return notifications.NewService(cfg), nil
}

// buildManager wires the production pipeline from config.
func (c *commandContext) buildManager() (*pipeline.Manager, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	store, err := c.ensureCatalog()
	if err != nil {
		return nil, err
	}
	provider, err := tts.New(cfg)
	if err != nil {
		return nil, err
	}

	renderer := render.NewRenderer(cfg)
	gen := generator.NewClient(generator.Config{
		APIKey:         cfg.Generator.APIKey,
		BaseURL:        cfg.Generator.BaseURL,
		Model:          cfg.Generator.Model,
		TimeoutSeconds: cfg.Generator.TimeoutSeconds,
	})

	return pipeline.Build(cfg, logger, store, notifications.NewService(cfg), pipeline.Dependencies{
		Generator: gen,
		Speech:    provider,
		Prober:    renderer,
		Renderer:  renderer,
		Uploader:  youtube.New(cfg.Upload),
	})
}

// loadProject resolves a project id through the catalog and loads its
// document.
func (c *commandContext) loadProject(id string) (*project.Project, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := c.ensureCatalog()
	if err != nil {
		return nil, err
	}

	entry, err := store.Get(context.Background(), id)
	if err == nil && entry.FilePath != "" {
		return project.LoadFromFile(entry.FilePath)
	}

	// Fall back to the on-disk layout when the catalog has no row.
	p, loadErr := project.LoadFromFile(project.DocumentPath(cfg.Paths.OutputDir, id))
	if loadErr != nil {
		if err != nil {
			return nil, fmt.Errorf("project %s: %w", id, err)
		}
		return nil, loadErr
	}
	return p, nil
}
