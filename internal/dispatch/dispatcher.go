// Package dispatch resolves tool calls against the registry and speaks the
// JSON-RPC envelope shared by the SSE, WebSocket and stdio transports.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"simple-mcp/internal/metrics"
	"simple-mcp/internal/tools"
)

// Dispatcher maps tool invocations onto registered tools. It holds no
// mutable state and is safe for concurrent use.
type Dispatcher struct {
	registry *tools.Registry
	logger   zerolog.Logger
	metrics  *metrics.Metrics
	validate bool
	info     ServerInfo
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for per-call logging.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithMetrics records tool calls and requests on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithValidation enables JSON schema validation of arguments before the
// tool runs.
func WithValidation(enabled bool) Option {
	return func(d *Dispatcher) { d.validate = enabled }
}

// WithServerInfo overrides the identity reported by server/info.
func WithServerInfo(info ServerInfo) Option {
	return func(d *Dispatcher) { d.info = info }
}

// New creates a Dispatcher over reg.
func New(reg *tools.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: reg,
		logger:   zerolog.Nop(),
		info:     DefaultServerInfo(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Info returns the server identity.
func (d *Dispatcher) Info() ServerInfo { return d.info }

// ListTools returns all tool descriptors in registry order.
func (d *Dispatcher) ListTools() []tools.Descriptor {
	return d.registry.List()
}

// Call invokes the named tool. Unknown names yield a KindMethodNotFound
// error. Failures inside the tool, panics included, come back as
// *tools.Error values and never escape to the caller.
func (d *Dispatcher) Call(ctx context.Context, name string, args tools.Arguments) (res *tools.Result, err error) {
	start := time.Now()
	label := name

	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = tools.Internal(fmt.Errorf("%v", r))
			d.logger.Error().
				Str("tool", name).
				Interface("panic", r).
				Msg("Tool panicked")
		}

		status := "ok"
		if err != nil {
			status = tools.KindOf(err).String()
		}
		d.metrics.ObserveToolCall(label, status, time.Since(start))

		evt := d.logger.Debug()
		if err != nil {
			evt = d.logger.Warn().Err(err)
		}
		evt.Str("tool", name).
			Str("transport", TransportFrom(ctx)).
			Str("status", status).
			Dur("duration", time.Since(start)).
			Msg("Tool call")
	}()

	tool, ok := d.registry.Lookup(name)
	if !ok {
		label = "unknown"
		return nil, tools.NewError(tools.KindMethodNotFound, "Unknown tool: %s", name)
	}

	if d.validate {
		if err := d.registry.Validate(name, args); err != nil {
			return nil, err
		}
	}

	res, err = tool.Call(ctx, args)
	if err != nil {
		return nil, tools.Internal(err)
	}
	if res == nil {
		return nil, tools.NewError(tools.KindInternal, "tool %s returned no result", name)
	}
	return res, nil
}
