// Package di contains dependency injection tokens for the node context.
package di

import (
	"github.com/fd1az/oneinch-nodes/business/node/app"
	"github.com/fd1az/oneinch-nodes/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Executor = di.NewToken[*app.Executor]("node.Executor")
	Poller   = di.NewToken[*app.Poller]("node.Poller")
)

// Private dependency tokens - internal to node module
var (
	Notice = di.NewToken[*app.Notice]("node:notice")
)

// Helper functions for type-safe access
func GetExecutor(c di.ServiceRegistry) *app.Executor {
	return di.GetToken(c, Executor)
}

// GetPoller returns nil when no trigger is configured.
func GetPoller(c di.ServiceRegistry) *app.Poller {
	return di.GetToken(c, Poller)
}

func GetNotice(c di.ServiceRegistry) *app.Notice {
	return di.GetToken(c, Notice)
}
