// Package registry maps logical identifiers to path templates and resolves
// them under a fixed project root.
//
// A Registry is safe for concurrent use. Registration and overrides take the
// write lock; lookups take the read lock and resolve outside it, since parsed
// templates are immutable.
package registry

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/conneroisu/pathreg/internal/errors"
	"github.com/conneroisu/pathreg/internal/logging"
	"github.com/conneroisu/pathreg/internal/template"
)

// ID is an opaque logical path identifier such as "SaveDir".
type ID string

// Definition pairs an identifier with its template source.
type Definition struct {
	ID       ID     `json:"id" yaml:"id"`
	Template string `json:"template" yaml:"template"`
}

// Entry describes one registered path.
type Entry struct {
	ID       ID
	Template *template.Template
	// Override is the active debug override, or nil.
	Override *template.Template
	// Order is the zero-based registration sequence number.
	Order int
}

// Effective returns the template Resolve uses for this entry.
func (e Entry) Effective() *template.Template {
	if e.Override != nil {
		return e.Override
	}
	return e.Template
}

type entry struct {
	template *template.Template
	order    int
}

// Registry manages registered path templates
type Registry struct {
	root      ProjectRoot
	mode      Mode
	logger    logging.Logger
	entries   map[ID]*entry
	order     []ID
	overrides map[ID]*template.Template
	mutex     sync.RWMutex
	watchers  []chan Event
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	logger       logging.Logger
	mode         Mode
	baseOverride string
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMode sets the build mode. The default is ModeRelease.
func WithMode(mode Mode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithBaseOverride replaces the base directory in debug mode. In release mode
// it is ignored and a warning is logged.
func WithBaseOverride(dir string) Option {
	return func(o *options) {
		o.baseOverride = dir
	}
}

// New creates a registry rooted at <base>/<studio>/<project>. The registry
// starts empty.
func New(base, studio, project, appID string, opts ...Option) (*Registry, error) {
	o := options{mode: ModeRelease}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}
	logger := o.logger.WithComponent("registry")
	ctx := context.Background()

	if o.baseOverride != "" {
		if o.mode.IsDebug() {
			logger.Info(ctx, "Using base directory override", "base", o.baseOverride)
			base = o.baseOverride
		} else {
			logger.Warn(ctx, nil, "Base directory override ignored in release mode", "base", o.baseOverride)
		}
	}

	root, err := NewProjectRoot(base, studio, project, appID)
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "Created path registry", "root", root.Dir(), "mode", o.mode.String())

	return &Registry{
		root:      root,
		mode:      o.mode,
		logger:    logger,
		entries:   make(map[ID]*entry),
		order:     make([]ID, 0),
		overrides: make(map[ID]*template.Template),
		watchers:  make([]chan Event, 0),
	}, nil
}

// Register parses source and stores it under id. The template is fully
// validated here; a registered id keeps its first template.
func (r *Registry) Register(id ID, source string) error {
	if id == "" {
		return errors.NewRegistryError(errors.ErrCodeEmptyID, "identifier cannot be empty").WithTemplate(source)
	}

	tmpl, err := template.Parse(source)
	if err != nil {
		return withID(err, id)
	}

	return r.insert(id, tmpl)
}

// RegisterStatic is like Register but rejects templates with placeholders.
func (r *Registry) RegisterStatic(id ID, source string) error {
	if id == "" {
		return errors.NewRegistryError(errors.ErrCodeEmptyID, "identifier cannot be empty").WithTemplate(source)
	}

	tmpl, err := template.Parse(source)
	if err != nil {
		return withID(err, id)
	}
	if !tmpl.IsStatic() {
		return errors.NewRegistryError(errors.ErrCodeNotStatic, "static path cannot contain placeholders").
			WithID(string(id)).
			WithTemplate(source).
			WithContext("placeholders", tmpl.Placeholders())
	}

	return r.insert(id, tmpl)
}

// RegisterAll registers every definition in order, continuing past failures.
// The returned error aggregates every failure.
func (r *Registry) RegisterAll(defs []Definition) error {
	var result *multierror.Error
	for _, def := range defs {
		if err := r.Register(def.ID, def.Template); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func (r *Registry) insert(id ID, tmpl *template.Template) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if existing, exists := r.entries[id]; exists {
		return errors.ErrDuplicateIDFor(string(id)).
			WithTemplate(tmpl.Source()).
			WithContext("registered", existing.template.Source())
	}

	r.entries[id] = &entry{template: tmpl, order: len(r.order)}
	r.order = append(r.order, id)

	r.logger.Debug(context.Background(), "Registered path", "id", string(id), "template", tmpl.Source())
	r.notify(EventTypeRegistered, id, tmpl.Source())

	return nil
}

// Resolve substitutes values into the template registered for id and returns
// the absolute path. In debug mode an override takes precedence.
func (r *Registry) Resolve(id ID, values template.Values) (ResolvedPath, error) {
	tmpl, ok := r.effective(id)
	if !ok {
		return ResolvedPath{}, errors.ErrUnknownIDFor(string(id))
	}

	rel, err := tmpl.Resolve(values)
	if err != nil {
		err = withID(err, id)
		if errors.IsValidationError(err) {
			pe := errors.Root(err)
			logging.LogRejection(context.Background(), r.logger, err, "resolve", map[string]interface{}{
				"id":      string(id),
				"index":   pe.Index,
				"segment": pe.Segment,
			})
		}
		return ResolvedPath{}, err
	}

	return r.root.join(rel), nil
}

// GetStatic returns the path for an id whose template has no placeholders.
// It reports false for unknown ids and for templates that need values.
func (r *Registry) GetStatic(id ID) (ResolvedPath, bool) {
	tmpl, ok := r.effective(id)
	if !ok || !tmpl.IsStatic() {
		return ResolvedPath{}, false
	}

	rel, err := tmpl.Resolve(nil)
	if err != nil {
		// Static segments are validated at registration.
		return ResolvedPath{}, false
	}
	return r.root.join(rel), true
}

// MustGetStatic is like GetStatic but panics when the path is unavailable.
func (r *Registry) MustGetStatic(id ID) ResolvedPath {
	p, ok := r.GetStatic(id)
	if !ok {
		panic("registry: no static path registered for " + string(id))
	}
	return p
}

func (r *Registry) effective(id ID) (*template.Template, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if r.mode.IsDebug() {
		if tmpl, ok := r.overrides[id]; ok {
			return tmpl, true
		}
	}
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return e.template, true
}

// Lookup retrieves the entry registered for id
func (r *Registry) Lookup(id ID) (Entry, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return Entry{}, false
	}
	return r.entryLocked(id, e), true
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	_, ok := r.entries[id]
	return ok
}

// Entries returns all registered entries in registration order
func (r *Registry) Entries() []Entry {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.entryLocked(id, r.entries[id]))
	}
	return result
}

func (r *Registry) entryLocked(id ID, e *entry) Entry {
	return Entry{
		ID:       id,
		Template: e.template,
		Override: r.overrides[id],
		Order:    e.order,
	}
}

// Count returns the number of registered paths
func (r *Registry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.entries)
}

// Root returns the project root.
func (r *Registry) Root() ProjectRoot {
	return r.root
}

// Mode returns the mode the registry was built with.
func (r *Registry) Mode() Mode {
	return r.mode
}

// withID records id on every PathError in err's chain.
func withID(err error, id ID) error {
	for _, pe := range errors.Chain(err) {
		pe.WithID(string(id))
	}
	return err
}
