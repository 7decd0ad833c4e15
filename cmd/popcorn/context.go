package main

import (
	"context"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/five82/popcorn/internal/app"
	"github.com/five82/popcorn/internal/config"
	"github.com/five82/popcorn/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	prefsFlag    *string

	configOnce sync.Once
	config     config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag, prefsFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		prefsFlag:    prefsFlag,
	}
}

func (c *commandContext) options() app.Options {
	return app.Options{
		ConfigPath: flagValue(c.configFlag),
		PrefsPath:  flagValue(c.prefsFlag),
		LogLevel:   flagValue(c.logLevelFlag),
	}
}

// ensureConfig loads the config once for commands that do not need storage.
func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = config.Load(flagValue(c.configFlag))
	})
	return c.config, c.configErr
}

// withEnv opens the shared environment for the duration of fn.
func (c *commandContext) withEnv(cmd *cobra.Command, fn func(context.Context, *app.Env) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := app.Open(ctx, c.options(), logging.TargetStderr)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := env.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(ctx, env)
}

func flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}
