package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes pipeline and server events to a logger at debug level.
// Failures are logged at error level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnBuildComplete(_ context.Context, nodes, edges int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("graph build failed", "err", err, "duration", d)
		return
	}
	h.logger.Debug("graph built", "nodes", nodes, "edges", edges, "duration", d)
}

func (h *LogHooks) OnComponentsComplete(_ context.Context, n int, d time.Duration) {
	h.logger.Debug("components found", "count", n, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, dims, nodes int) {
	h.logger.Debug("layout started", "dims", dims, "nodes", nodes)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, dims int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("layout failed", "dims", dims, "err", err)
		return
	}
	h.logger.Debug("layout complete", "dims", dims, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", d)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "duration", d)
}
