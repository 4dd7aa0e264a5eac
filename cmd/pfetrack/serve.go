package main

import (
	"github.com/3issane/PFETRACKCODE212/internal/bootstrap"
)

func runServe(ctx *commandContext, args []string) error {
	fs := newFlagSet(ctx, "serve")
	addr := fs.String("addr", ctx.Container.Config.HTTP.Addr, "Listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ctx.Container.Config.HTTP.Addr = *addr

	return bootstrap.RunHTTPWithShutdown(ctx.Ctx, &bootstrap.HTTPServerConfig{
		Container: ctx.Container,
		Logger:    ctx.Logger,
	})
}
