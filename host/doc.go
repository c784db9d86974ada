// Package host provides the runtime environment for executing extraction
// plugins.
//
// It owns the embedded JavaScript engine (goja), installs host capabilities
// before any script compiles, loads and instantiates the plugin, and turns a
// dispatched verb into a method call whose promise-like result is resolved
// back into the host as a JSON string. A Session is single-threaded and
// exclusively owned for the life of the process; there is exactly one plugin
// instance per run.
package host
