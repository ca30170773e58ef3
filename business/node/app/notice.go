package app

import (
	"context"
	"sync"

	"github.com/fd1az/oneinch-nodes/internal/logger"
)

// LicensingNotice is logged once per process.
const LicensingNotice = `[Velocity BPA Licensing Notice]

These 1inch nodes are licensed under the Business Source License 1.1 (BSL 1.1).

Use of these nodes by for-profit organizations in production environments requires a commercial license from Velocity BPA.

For licensing information, visit https://velobpa.com/licensing or contact licensing@velobpa.com.`

// Notice writes the licensing notice the first time Emit is called.
type Notice struct {
	once sync.Once
	log  logger.LoggerInterface
}

// NewNotice creates the process notice. Create one at startup and share it.
func NewNotice(log logger.LoggerInterface) *Notice {
	return &Notice{log: log}
}

// Emit logs the notice at WARN on the first call only.
func (n *Notice) Emit(ctx context.Context) {
	n.once.Do(func() {
		n.log.Warn(ctx, LicensingNotice)
	})
}
