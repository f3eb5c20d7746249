package fabrik

import (
	"sync"

	"golang.org/x/text/cases"

	"github.com/syssam/fabrik/schema"
)

// keyFolder case-folds registry keys so that "Author", "AUTHOR" and "author"
// all address the same definition, including non-ASCII names.
var keyFolder = cases.Fold()

func foldKey(name string) string {
	return keyFolder.String(name)
}

// A Registry stores factory definitions keyed by case-folded name and
// resolves them with parent-chain inheritance. It is safe for concurrent
// Register and Resolve calls; resolution never mutates registry state and is
// recomputed on every call.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]*Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{definitions: make(map[string]*Definition)}
}

// Register stores a definition under the case-folded key. Re-registering a
// key unconditionally replaces the previous definition.
func (r *Registry) Register(name string, def *Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[foldKey(name)] = def
}

// RegisterTable stores a definition under its table's name.
func (r *Registry) RegisterTable(table *schema.Table, def *Definition) {
	r.Register(table.Name(), def)
}

// Resolve looks up a definition by key. A definition without a parent is
// returned as registered. A definition with a parent is flattened against its
// parent chain: parent defaults, generators and traits come first and the
// child overrides them per field (per name for traits, where a child trait
// fully replaces a parent trait); callback lists are concatenated parent
// first. The merged definition carries no parent name and is not stored back
// into the registry.
func (r *Registry) Resolve(name string) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[foldKey(name)]
	if !ok {
		return nil, &NotFoundError{key: name}
	}
	if def.parentName == "" {
		return def, nil
	}
	// The visited set is scoped to this resolution call only.
	visited := make(map[string]struct{})
	return r.mergeWithParent(def, visited)
}

// mergeWithParent flattens child against its parent chain, detecting cycles
// via the per-call visited set. Callers must hold the read lock.
func (r *Registry) mergeWithParent(child *Definition, visited map[string]struct{}) (*Definition, error) {
	parentKey := foldKey(child.parentName)
	if _, seen := visited[parentKey]; seen {
		return nil, &CircularInheritanceError{name: child.parentName}
	}
	visited[parentKey] = struct{}{}
	parent, ok := r.definitions[parentKey]
	if !ok {
		return nil, &ParentNotFoundError{parent: child.parentName}
	}
	if parent.parentName != "" {
		var err error
		if parent, err = r.mergeWithParent(parent, visited); err != nil {
			return nil, err
		}
	}

	// Maps: parent entries first, child entries override per key.
	defaults := cloneMap(parent.defaultValues)
	for c, v := range child.defaultValues {
		defaults[c] = v
	}
	generators := cloneMap(parent.generators)
	for c, g := range child.generators {
		generators[c] = g
	}
	traits := cloneMap(parent.traits)
	for name, t := range child.traits {
		traits[name] = t
	}

	merged := &Definition{
		table:           child.table,
		defaultValues:   defaults,
		generators:      generators,
		traits:          traits,
		beforeCreate:    concat(parent.beforeCreate, child.beforeCreate),
		afterCreate:     concat(parent.afterCreate, child.afterCreate),
		transientBefore: concat(parent.transientBefore, child.transientBefore),
		transientAfter:  concat(parent.transientAfter, child.transientAfter),
	}
	return merged, nil
}

func concat[E any](a, b []E) []E {
	out := make([]E, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
