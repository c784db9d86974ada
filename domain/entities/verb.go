// Package entities provides the core domain types shared across the CLI:
// the plugin verbs and the per-verb result shapes plugins are expected to
// resolve to.
package entities

// Verb identifies one of the fixed plugin entry points selectable from the
// command line.
type Verb string

const (
	VerbDiscover Verb = "discover"
	VerbSearch   Verb = "search"
	VerbInfo     Verb = "info"
	VerbMedia    Verb = "media"
	VerbServers  Verb = "servers"
	VerbSources  Verb = "sources"
)

// Verbs returns all supported verbs in CLI order.
func Verbs() []Verb {
	return []Verb{VerbDiscover, VerbSearch, VerbInfo, VerbMedia, VerbServers, VerbSources}
}

// ParseVerb maps a CLI option (e.g. "--search") to its Verb.
// The second return value is false for unrecognized options.
func ParseVerb(option string) (Verb, bool) {
	switch option {
	case "--discover":
		return VerbDiscover, true
	case "--search":
		return VerbSearch, true
	case "--info":
		return VerbInfo, true
	case "--media":
		return VerbMedia, true
	case "--servers":
		return VerbServers, true
	case "--sources":
		return VerbSources, true
	}
	return "", false
}

// Flag returns the CLI spelling of the verb (e.g. "--discover").
func (v Verb) Flag() string {
	return "--" + string(v)
}

// RequiresURL reports whether the verb takes a URL argument.
// Every verb except discover does.
func (v Verb) RequiresURL() bool {
	return v != VerbDiscover
}

// Valid reports whether v is one of the six supported verbs.
func (v Verb) Valid() bool {
	switch v {
	case VerbDiscover, VerbSearch, VerbInfo, VerbMedia, VerbServers, VerbSources:
		return true
	}
	return false
}
