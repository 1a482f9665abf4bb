package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stacklattice/pkg/observability"
)

// logHooks reports pipeline, cache and API events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
	_ observability.APIHooks      = (*logHooks)(nil)
)

func (h *logHooks) OnAssembleStart(_ context.Context, pathCount int) {
	h.logger.Debug("assemble start", "paths", pathCount)
}

func (h *logHooks) OnAssembleComplete(_ context.Context, nodeCount, edgeCount int, d time.Duration, err error) {
	h.logger.Debug("assemble done", "nodes", nodeCount, "edges", edgeCount, "duration", d, "err", err)
}

func (h *logHooks) OnSearchStart(_ context.Context, step int) {
	h.logger.Debug("search start", "step", step)
}

func (h *logHooks) OnSearchComplete(_ context.Context, step, candidates, attempts int, d time.Duration, err error) {
	h.logger.Debug("search done", "step", step, "candidates", candidates, "attempts", attempts, "duration", d, "err", err)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render done", "formats", formats, "duration", d, "err", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *logHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "duration", d)
}
