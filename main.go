// Package main is the entry point for the aniko application.
package main

import (
	"github.com/aniko-app/aniko/cmd"
	"github.com/aniko-app/aniko/config"
	"github.com/aniko-app/aniko/internal/cache"
	"github.com/aniko-app/aniko/log"
	"github.com/aniko-app/aniko/progress"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Background maintenance: cache expiry and deferred cloud writes.
	// CollectGarbage spawns its own goroutine.
	cache.CollectGarbage()
	go progress.ReconcilePending()

	cmd.Execute()
}
