//go:build !unix

package ctlfile

import (
	"errors"
	"log/slog"

	"github.com/faultd/faultd/pkg/fault"
	"github.com/faultd/faultd/pkg/metrics"
)

// ErrUnsupported is returned by Open on platforms without named pipes in
// the filesystem namespace.
var ErrUnsupported = errors.New("ctlfile: control file not supported on this platform")

// Controller is a stub on non-unix platforms.
type Controller struct{}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger is accepted and ignored.
func WithLogger(log *slog.Logger) Option { return func(*Controller) {} }

// WithMetrics is accepted and ignored.
func WithMetrics(reg *metrics.Registry) Option { return func(*Controller) {} }

// WithNotify is accepted and ignored.
func WithNotify(fn func(id string, kind fault.Kind, source string)) Option {
	return func(*Controller) {}
}

// New creates a stub Controller.
func New(catalog *fault.Catalog, path string, opts ...Option) *Controller {
	return &Controller{}
}

// Path returns an empty string.
func (c *Controller) Path() string { return "" }

// ListPath returns an empty string.
func (c *Controller) ListPath() string { return "" }

// Open always fails.
func (c *Controller) Open() error { return ErrUnsupported }

// Close is a no-op.
func (c *Controller) Close() error { return nil }
