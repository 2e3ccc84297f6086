package registry

import (
	"context"

	"github.com/hashicorp/go-multierror"

	"github.com/conneroisu/pathreg/internal/errors"
	"github.com/conneroisu/pathreg/internal/template"
)

// Override replaces the template used for id until ClearOverride is called.
// Only available in debug mode; the registered template is left untouched.
func (r *Registry) Override(id ID, source string) error {
	if !r.mode.IsDebug() {
		return errors.NewRegistryError(errors.ErrCodeOverridesDisabled, "overrides require debug mode").
			WithID(string(id))
	}

	tmpl, err := template.Parse(source)
	if err != nil {
		return withID(err, id)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.entries[id]; !ok {
		return errors.ErrUnknownIDFor(string(id)).WithTemplate(source)
	}

	r.overrides[id] = tmpl
	r.logger.Info(context.Background(), "Path overridden", "id", string(id), "template", source)
	r.notify(EventTypeOverridden, id, source)

	return nil
}

// OverrideAll applies every definition as an override, continuing past
// failures like RegisterAll.
func (r *Registry) OverrideAll(defs []Definition) error {
	var result *multierror.Error
	for _, def := range defs {
		if err := r.Override(def.ID, def.Template); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// ClearOverride removes the override for id, if any.
func (r *Registry) ClearOverride(id ID) error {
	if !r.mode.IsDebug() {
		return errors.NewRegistryError(errors.ErrCodeOverridesDisabled, "overrides require debug mode").
			WithID(string(id))
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return errors.ErrUnknownIDFor(string(id))
	}

	if _, overridden := r.overrides[id]; !overridden {
		return nil
	}

	delete(r.overrides, id)
	r.logger.Info(context.Background(), "Path override cleared", "id", string(id))
	r.notify(EventTypeOverrideCleared, id, e.template.Source())

	return nil
}

// Overrides returns the active override sources keyed by id.
func (r *Registry) Overrides() map[ID]string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make(map[ID]string, len(r.overrides))
	for id, tmpl := range r.overrides {
		result[id] = tmpl.Source()
	}
	return result
}
