package hostfuncs_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/chouten-app/chouten-cli/domain/errors"
	"github.com/chouten-app/chouten-cli/hostfuncs"
)

func newVM() *goja.Runtime {
	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))
	return vm
}

func TestNewRegistry_DuplicateCapabilityName(t *testing.T) {
	_, err := hostfuncs.NewRegistry(
		hostfuncs.WithCapability(hostfuncs.NewConsoleCapability(nil)),
		hostfuncs.WithCapability(hostfuncs.NewConsoleCapability(nil)),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate capability name")
}

func TestRegistry_Names(t *testing.T) {
	reg, err := hostfuncs.NewRegistry(
		hostfuncs.WithCapability(hostfuncs.NewRequestCapability(nil)),
		hostfuncs.WithCapability(hostfuncs.NewConsoleCapability(nil)),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"console", "request"}, reg.Names())
	assert.True(t, reg.Has("console"))
	assert.False(t, reg.Has("fetch"))
}

func TestConsoleCapability_LogsToDiagnosticStream(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	reg, err := hostfuncs.NewRegistry(
		hostfuncs.WithCapability(hostfuncs.NewConsoleCapability(logger)),
	)
	require.NoError(t, err)

	vm := newVM()
	require.NoError(t, reg.InstallAll(context.Background(), vm))

	v, err := vm.RunString(`console.log("hello from plugin")`)
	require.NoError(t, err)
	assert.True(t, goja.IsUndefined(v), "console.log returns no value")
	assert.Contains(t, buf.String(), "msg=console.log")
	assert.Contains(t, buf.String(), "hello from plugin")
	assert.Contains(t, buf.String(), "source=plugin")
}

func TestConsoleCapability_PluginTextStaysInAttribute(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	reg, err := hostfuncs.NewRegistry(
		hostfuncs.WithCapability(hostfuncs.NewConsoleCapability(logger)),
	)
	require.NoError(t, err)

	vm := newVM()
	require.NoError(t, reg.InstallAll(context.Background(), vm))

	// A string shaped like a host log record must end up quoted inside the
	// message attribute, not as the record's own message.
	_, err = vm.RunString(`console.log("level=ERROR msg=disk-full")`)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "msg=console.log")
	assert.Contains(t, buf.String(), `message="level=ERROR msg=disk-full"`)
}

func TestConsoleCapability_CoercesNonStrings(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	reg, err := hostfuncs.NewRegistry(
		hostfuncs.WithCapability(hostfuncs.NewConsoleCapability(logger)),
	)
	require.NoError(t, err)

	vm := newVM()
	require.NoError(t, reg.InstallAll(context.Background(), vm))

	_, err = vm.RunString(`console.log(42)`)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "42")
}

func TestRequestCapability_ReturnsResponseObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("pong"))
	}))
	defer srv.Close()

	reg, err := hostfuncs.NewRegistry(
		hostfuncs.WithCapability(hostfuncs.NewRequestCapability(nil)),
	)
	require.NoError(t, err)

	vm := newVM()
	require.NoError(t, reg.InstallAll(context.Background(), vm))

	v, err := vm.RunString(fmt.Sprintf(`request(%q, "GET")`, srv.URL))
	require.NoError(t, err)

	obj := v.ToObject(vm)
	assert.Equal(t, int64(http.StatusOK), obj.Get("statusCode").ToInteger())
	assert.Equal(t, "pong", obj.Get("body").String())
	assert.Contains(t, obj.Get("contentType").String(), "text/plain")
}

func TestRequestCapability_DegradedResponseObservedAsNormalValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	reg, err := hostfuncs.NewRegistry(
		hostfuncs.WithCapability(hostfuncs.NewRequestCapability(nil)),
	)
	require.NoError(t, err)

	vm := newVM()
	require.NoError(t, reg.InstallAll(context.Background(), vm))

	v, err := vm.RunString(fmt.Sprintf(`request(%q, "GET").statusCode`, url))
	require.NoError(t, err, "the script observes a response object, never an exception")
	assert.Equal(t, int64(500), v.ToInteger())
}

func TestRequestCapability_AbortNotCatchableInScript(t *testing.T) {
	reg, err := hostfuncs.NewRegistry(
		hostfuncs.WithCapability(hostfuncs.NewRequestCapability(nil)),
	)
	require.NoError(t, err)

	vm := newVM()
	require.NoError(t, reg.InstallAll(context.Background(), vm))

	recovered := func() (r any) {
		defer func() { r = recover() }()
		_, _ = vm.RunString(`
			(function() {
				try {
					request("http://127.0.0.1:0", "DELETE");
				} catch (e) {
					return "swallowed";
				}
			})()
		`)
		return nil
	}()

	cause, ok := hostfuncs.AbortCause(recovered)
	require.True(t, ok, "the abort must unwind past script try/catch")

	var unsupported *cerrors.UnsupportedMethodError
	require.ErrorAs(t, cause, &unsupported)
	assert.Equal(t, "DELETE", unsupported.Method)
}

func TestMiddleware_FIFOOrder(t *testing.T) {
	var order []string
	tag := func(name string) hostfuncs.Middleware {
		return func(_ string, next hostfuncs.NativeFunc) hostfuncs.NativeFunc {
			return func(call goja.FunctionCall) goja.Value {
				order = append(order, name)
				return next(call)
			}
		}
	}

	reg, err := hostfuncs.NewRegistry(
		hostfuncs.WithMiddleware(tag("outer"), tag("inner")),
		hostfuncs.WithCapability(hostfuncs.NewConsoleCapability(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))),
	)
	require.NoError(t, err)

	vm := newVM()
	require.NoError(t, reg.InstallAll(context.Background(), vm))

	_, err = vm.RunString(`console.log("x")`)
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestLoggingMiddleware_RecordsCapabilityCalls(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	reg, err := hostfuncs.NewRegistry(
		hostfuncs.WithMiddleware(hostfuncs.LoggingMiddleware(logger)),
		hostfuncs.WithCapability(hostfuncs.NewConsoleCapability(logger)),
	)
	require.NoError(t, err)

	vm := newVM()
	require.NoError(t, reg.InstallAll(context.Background(), vm))

	_, err = vm.RunString(`console.log("x")`)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "capability call")
	assert.Contains(t, buf.String(), "console.log")
}
