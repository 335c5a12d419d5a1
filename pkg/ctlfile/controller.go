//go:build unix

package ctlfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"github.com/faultd/faultd/pkg/fault"
	"github.com/faultd/faultd/pkg/logging"
	"github.com/faultd/faultd/pkg/metrics"
)

// ListSuffix is appended to the pipe path to name the listing file.
const ListSuffix = ".list"

// Controller owns the control-file surface for a catalog. It is created
// unopened; Open materializes the files and Close removes them.
type Controller struct {
	path    string
	catalog *fault.Catalog
	log     *slog.Logger
	metrics *metrics.Registry
	notify  func(id string, kind fault.Kind, source string)

	pipe *os.File
	done chan struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithMetrics sets the metrics registry.
func WithMetrics(reg *metrics.Registry) Option {
	return func(c *Controller) { c.metrics = reg }
}

// WithNotify registers a callback invoked with the intent record before
// each dispatch, so trigger events from the control file reach the same
// observers as HTTP triggers.
func WithNotify(fn func(id string, kind fault.Kind, source string)) Option {
	return func(c *Controller) { c.notify = fn }
}

// New creates a Controller for the catalog at path.
func New(catalog *fault.Catalog, path string, opts ...Option) *Controller {
	c := &Controller{
		path:    path,
		catalog: catalog,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the pipe path.
func (c *Controller) Path() string { return c.path }

// ListPath returns the listing file path.
func (c *Controller) ListPath() string { return c.path + ListSuffix }

// Open creates the pipe and the listing file and starts serving triggers.
func (c *Controller) Open() error {
	// A stale pipe from a crashed run is expected; crashing is what this
	// daemon does.
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove stale control file: %w", err)
	}
	if err := unix.Mkfifo(c.path, 0o666); err != nil {
		return fmt.Errorf("failed to create control file %s: %w", c.path, err)
	}

	var b strings.Builder
	for _, name := range c.catalog.Names() {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(c.ListPath(), []byte(b.String()), 0o644); err != nil {
		os.Remove(c.path)
		return fmt.Errorf("failed to write listing file: %w", err)
	}

	// O_RDWR keeps the pipe from hitting EOF between writers, so the read
	// loop blocks instead of spinning.
	pipe, err := os.OpenFile(c.path, os.O_RDWR, 0)
	if err != nil {
		os.Remove(c.path)
		os.Remove(c.ListPath())
		return fmt.Errorf("failed to open control file: %w", err)
	}
	c.pipe = pipe
	c.done = make(chan struct{})

	c.log.Info("control file ready", "path", c.path, "list", c.ListPath())
	go c.serve()
	return nil
}

// serve reads trigger payloads line by line until the pipe is closed.
func (c *Controller) serve() {
	reader := bufio.NewReader(c.pipe)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			c.dispatch([]byte(line))
		}
		if err != nil {
			select {
			case <-c.done:
			default:
				if !errors.Is(err, io.EOF) && !errors.Is(err, fs.ErrClosed) {
					c.log.Error("control file read error", "error", err)
				}
			}
			return
		}
	}
}

// dispatch handles one raw payload line, newline included, mirroring the
// HTTP trigger path.
func (c *Controller) dispatch(payload []byte) {
	if len(payload) > fault.MaxTriggerLen {
		if c.metrics != nil {
			c.metrics.RejectedTotal.WithLabelValues(metrics.ReasonTooLarge).Inc()
		}
		c.log.Warn("rejected oversized trigger payload", "source", "ctlfile", "limit", fault.MaxTriggerLen)
		return
	}

	kind := c.catalog.Parse(string(payload))
	id := uuid.NewString()

	if c.metrics != nil {
		c.metrics.TriggersTotal.WithLabelValues(kind.String()).Inc()
	}
	if kind != fault.KindNone {
		c.log.Warn("injecting fault", "id", id, "kind", kind, "source", "ctlfile")
		if c.notify != nil {
			c.notify(id, kind, "ctlfile")
		}
	}

	c.catalog.Inject(kind)
}

// Close stops serving and removes both files.
func (c *Controller) Close() error {
	if c.pipe == nil {
		return nil
	}
	close(c.done)
	err := c.pipe.Close()
	c.pipe = nil
	if rmErr := os.Remove(c.path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) && err == nil {
		err = rmErr
	}
	if rmErr := os.Remove(c.ListPath()); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) && err == nil {
		err = rmErr
	}
	return err
}
