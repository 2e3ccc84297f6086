package registry

import (
	"path"
	"path/filepath"

	"github.com/conneroisu/pathreg/internal/errors"
	"github.com/conneroisu/pathreg/internal/validation"
)

// ProjectRoot is the directory every registered path is resolved under:
// <base>/<studio>/<project>. The app identifier is validated and carried but
// is not part of the directory.
//
// Paths are held in slash form and converted to host form on output.
type ProjectRoot struct {
	base    string
	studio  string
	project string
	appID   string
	dir     string
}

// NewProjectRoot validates the root components. base must be an absolute
// directory other than the filesystem root; the filesystem is never touched.
func NewProjectRoot(base, studio, project, appID string) (ProjectRoot, error) {
	cleanBase, err := checkBase(base)
	if err != nil {
		return ProjectRoot{}, err
	}

	parts := []struct {
		name  string
		value string
	}{
		{"studio", studio},
		{"project", project},
		{"app_id", appID},
	}
	normalized := make([]string, len(parts))
	for i, part := range parts {
		seg, err := validation.ValidateSegment(part.value)
		if err != nil {
			pe := errors.Root(err)
			if pe == nil {
				return ProjectRoot{}, errors.WrapInternal(err, "unexpected validator error")
			}
			return ProjectRoot{}, pe.WithContext("component", part.name)
		}
		normalized[i] = seg
	}

	return ProjectRoot{
		base:    cleanBase,
		studio:  normalized[0],
		project: normalized[1],
		appID:   normalized[2],
		dir:     path.Join(cleanBase, normalized[0], normalized[1]),
	}, nil
}

func checkBase(base string) (string, error) {
	if base == "" {
		return "", errors.NewRegistryError(errors.ErrCodeInvalidBase, "base directory cannot be empty")
	}
	if !filepath.IsAbs(base) {
		return "", errors.NewRegistryError(errors.ErrCodeInvalidBase, "base directory must be absolute").
			WithContext("base", base)
	}

	clean := filepath.Clean(base)
	if filepath.Dir(clean) == clean {
		return "", errors.NewRegistryError(errors.ErrCodeInvalidBase, "base directory cannot be the filesystem root").
			WithContext("base", base)
	}

	return filepath.ToSlash(clean), nil
}

// Base returns the base directory in host form.
func (r ProjectRoot) Base() string { return filepath.FromSlash(r.base) }

// Studio returns the normalized studio name.
func (r ProjectRoot) Studio() string { return r.studio }

// Project returns the normalized project name.
func (r ProjectRoot) Project() string { return r.project }

// AppID returns the normalized application identifier.
func (r ProjectRoot) AppID() string { return r.appID }

// Dir returns the project root directory in host form.
func (r ProjectRoot) Dir() string { return filepath.FromSlash(r.dir) }

// String implements fmt.Stringer.
func (r ProjectRoot) String() string { return r.Dir() }

// IsZero reports whether r was never initialized.
func (r ProjectRoot) IsZero() bool { return r.dir == "" }

// join appends an already validated slash path below the root.
func (r ProjectRoot) join(rel string) ResolvedPath {
	return ResolvedPath{abs: r.dir + "/" + rel, rel: rel}
}

// ResolvedPath is an absolute path produced by the registry. It always lies
// below the project root.
type ResolvedPath struct {
	abs string
	rel string
}

// String returns the absolute path in host form.
func (p ResolvedPath) String() string { return filepath.FromSlash(p.abs) }

// Slash returns the absolute path with "/" separators.
func (p ResolvedPath) Slash() string { return p.abs }

// Relative returns the part below the project root with "/" separators.
func (p ResolvedPath) Relative() string { return p.rel }

// IsZero reports whether p is the zero value.
func (p ResolvedPath) IsZero() bool { return p.abs == "" }
