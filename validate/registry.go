// Package validate holds the response validator pipeline: a registry
// of path-scoped transforms that are applied, in registration order,
// to decoded response bodies before they reach the caller.
//
// The registry is shared mutable state. All methods are safe for
// concurrent use, but registering or clearing rules while other
// goroutines are mid-request changes which rules those requests see;
// register rules during setup and leave the registry alone afterwards.
package validate

import (
	"fmt"
	"sync"
)

// Transform rewrites a resolved value. Returning an error aborts the
// whole pipeline run for that response; the error reaches the caller
// unswallowed. Use with care: a failing transform costs the caller the
// entire response, including parts that already validated.
type Transform func(value any) (any, error)

// Scope is the (namespace, version) pair a rule applies to. The zero
// Scope is not valid; use NewScope or Global.
type Scope struct {
	Namespace string
	Version   int
	global    bool
}

// NewScope builds a resource scope such as ("subscription", 1).
func NewScope(namespace string, version int) Scope {
	return Scope{Namespace: namespace, Version: version}
}

// Global returns the scope that matches every resource.
func Global() Scope { return Scope{global: true} }

// IsGlobal reports whether the scope matches every resource.
func (s Scope) IsGlobal() bool { return s.global }

func (s Scope) String() string {
	if s.global {
		return "global"
	}
	return fmt.Sprintf("%s/v%d", s.Namespace, s.Version)
}

// Rule is one registered (scope, path, transform) triple.
type Rule struct {
	Scope     Scope
	Path      Path
	Transform Transform
}

// Registry is an ordered collection of rules. Registration order is
// the application order: rules are applied FIFO, with global and
// resource-scoped rules interleaved by registration time; scope carries
// no priority. Registering the same (scope, path)
// twice chains the transforms; the second receives the first's output.
type Registry struct {
	mu    sync.RWMutex
	rules []Rule
}

// NewRegistry returns an empty registry with no built-in rules.
func NewRegistry() *Registry { return &Registry{} }

// NewDefaultRegistry returns a registry preloaded with the built-in
// date-decoding rules.
func NewDefaultRegistry() *Registry {
	r := &Registry{}
	r.ResetDefaults()
	return r
}

var defaultRegistry = NewDefaultRegistry()

// Default returns the process-wide registry used by clients that were
// not given their own.
func Default() *Registry { return defaultRegistry }

// Add appends a rule. Rules are never deduplicated.
func (r *Registry) Add(scope Scope, path Path, fn Transform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, Rule{Scope: scope, Path: path, Transform: fn})
}

// Clear removes every rule, the built-in defaults included. Callers
// who want only their own rules should Clear and then Add.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = nil
}

// ResetDefaults replaces the current rule set with the built-in
// date-decoding rules.
func (r *Registry) ResetDefaults() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = defaultRules()
}

// RulesFor returns the rules that apply to the given resource scope:
// every global rule plus every rule registered for exactly that scope,
// in registration order.
func (r *Registry) RulesFor(scope Scope) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Rule
	for _, rule := range r.rules {
		if rule.Scope.IsGlobal() || rule.Scope == scope {
			out = append(out, rule)
		}
	}
	return out
}

// Len returns the total number of registered rules across all scopes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}
