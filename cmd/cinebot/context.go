package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"cinebot/internal/api"
	"cinebot/internal/config"
	"cinebot/internal/daemon"
	"cinebot/internal/logging"
)

type commandContext struct {
	configFlag *string
	userFlag   *int64

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, userFlag *int64) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		userFlag:   userFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := config.DefaultConfigPath()
		if c.configFlag != nil && strings.TrimSpace(*c.configFlag) != "" {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				c.configErr = fmt.Errorf("%w; run `cinebot config init` to create one", err)
				return
			}
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

func (c *commandContext) userID() int64 {
	if c.userFlag == nil {
		return 1
	}
	return *c.userFlag
}

// withService builds the service stack in-process for the duration of one
// command. No daemon lock is taken; concurrent access is the database's
// problem to arbitrate.
func (c *commandContext) withService(fn func(*api.Service) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	d, err := daemon.New(cfg, logging.NewNop())
	if err != nil {
		return err
	}
	defer d.Close()
	return fn(d.Service())
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
