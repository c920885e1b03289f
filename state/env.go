// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"nativestyle/config"
	"nativestyle/render"
	"nativestyle/style"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	start         time.Time
	restoreStdLog func()
	resolver      *render.Resolver
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// Resolver returns the tree resolver configured from Cfg. It is created on
// first use, after configuration and logging are set up.
func (e *LocalEnv) Resolver() *render.Resolver {
	if e.resolver == nil {
		var opts style.Options
		if e.Cfg != nil {
			opts = e.Cfg.Resolver.Options()
		}
		e.resolver = render.NewResolver(style.NewComposer(e.Log, opts), e.Log)
	}
	return e.resolver
}

// BaseContext returns the resolution context built from configured defaults.
func (e *LocalEnv) BaseContext() style.Context {
	if e.Cfg == nil {
		return style.NewContext()
	}
	return e.Cfg.Resolver.Context()
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
