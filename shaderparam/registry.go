// Package shaderparam implements the global shader-parameter registry the
// Lowerer consults to resolve the declared type of `global`-scoped uniforms
// (spec §6: "a function get_global_type(name) → DataType"). Real engines
// back this with a project-wide parameter table; spec.md marks it an
// external collaborator, so this is a minimal concrete supplement — a
// handle-keyed registry in the shape of naga's ir.TypeRegistry
// (ir/registry.go), scoped down to a name→type map since global shader
// parameters are looked up by name, not deduplicated by structural key.
package shaderparam

import (
	"fmt"
	"sync"

	"github.com/nikitalita/shaderconv/ast"
)

// ErrUnknownGlobal is returned by Registry.GetGlobalType for an unregistered name.
type ErrUnknownGlobal struct{ Name string }

func (e *ErrUnknownGlobal) Error() string {
	return fmt.Sprintf("shaderparam: no global shader parameter named %q", e.Name)
}

// Registry maps global shader-parameter names to their declared type.
// Safe for concurrent use: spec §5 allows many lowerings to run in parallel
// on independent inputs, and a process typically shares one registry across
// all of them.
type Registry struct {
	mu    sync.RWMutex
	types map[string]ast.DataType
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]ast.DataType)}
}

// Register records the type of a global shader parameter.
func (r *Registry) Register(name string, t ast.DataType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = t
}

// GetGlobalType implements the `get_global_type(name) → DataType` contract.
func (r *Registry) GetGlobalType(name string) (ast.DataType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	if !ok {
		return 0, &ErrUnknownGlobal{Name: name}
	}
	return t, nil
}
