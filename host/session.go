package host

import (
	"context"
	"log/slog"

	"github.com/dop251/goja"
	"github.com/google/uuid"

	cerrors "github.com/chouten-app/chouten-cli/domain/errors"
	"github.com/chouten-app/chouten-cli/hostfuncs"
)

// Session owns the single execution context used for the entire run: the
// engine, the capability registry, and the plugin instance handle. It is the
// explicit home of what would otherwise be process-wide mutable state and is
// passed by reference to every later stage.
//
// A Session is not safe for concurrent use. The engine is cooperative and
// single-threaded from the host's point of view: no script code runs
// concurrently with host code, and every host effect completes (or degrades)
// before control returns to the script.
type Session struct {
	id       string
	vm       *goja.Runtime
	logger   *slog.Logger
	registry *hostfuncs.Registry
	plugin   *goja.Object
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithCapabilities sets the capability registry installed at bootstrap.
// If unset, a default registry with the console and request capabilities is
// used.
func WithCapabilities(registry *hostfuncs.Registry) Option {
	return func(s *Session) {
		s.registry = registry
	}
}

// NewSession initializes the engine and installs every capability into its
// global namespace. This must happen exactly once, before any script
// compiles; failure is fatal to the run.
func NewSession(ctx context.Context, opts ...Option) (*Session, error) {
	s := &Session{id: uuid.NewString()}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With(slog.String("session", s.id))

	if s.registry == nil {
		reg, err := hostfuncs.NewRegistry(
			hostfuncs.WithCapability(hostfuncs.NewConsoleCapability(s.logger)),
			hostfuncs.WithCapability(hostfuncs.NewRequestCapability(s.logger)),
		)
		if err != nil {
			return nil, &cerrors.BootstrapError{Err: err}
		}
		s.registry = reg
	}

	s.vm = goja.New()
	// Expose Go structs (HostResponse) under their json tag names.
	s.vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))

	if err := s.registry.InstallAll(ctx, s.vm); err != nil {
		return nil, &cerrors.BootstrapError{Err: err}
	}

	s.logger.Debug("session bootstrapped", slog.Any("capabilities", s.registry.Names()))
	return s, nil
}

// ID returns the session's run identifier.
func (s *Session) ID() string {
	return s.id
}

// Runtime exposes the underlying engine. Intended for capability tests; the
// CLI never touches it directly.
func (s *Session) Runtime() *goja.Runtime {
	return s.vm
}
