package pathreg

import (
	"github.com/conneroisu/pathreg/internal/errors"
	"github.com/conneroisu/pathreg/internal/logging"
	"github.com/conneroisu/pathreg/internal/registry"
	"github.com/conneroisu/pathreg/internal/template"
	"github.com/conneroisu/pathreg/internal/validation"
)

type (
	// Registry maps identifiers to validated path templates.
	Registry = registry.Registry
	// ID identifies a registered path.
	ID           = registry.ID
	Definition   = registry.Definition
	Entry        = registry.Entry
	Option       = registry.Option
	Mode         = registry.Mode
	ProjectRoot  = registry.ProjectRoot
	ResolvedPath = registry.ResolvedPath
	Event        = registry.Event
	EventType    = registry.EventType

	Template = template.Template
	// Values maps placeholder names to substitution values.
	Values = template.Values

	// PathError is the error type returned by every operation.
	PathError = errors.PathError
	ErrorType = errors.ErrorType

	Logger = logging.Logger
)

const (
	ModeRelease = registry.ModeRelease
	ModeDebug   = registry.ModeDebug

	EventTypeRegistered      = registry.EventTypeRegistered
	EventTypeOverridden      = registry.EventTypeOverridden
	EventTypeOverrideCleared = registry.EventTypeOverrideCleared

	ErrorTypeValidation = errors.ErrorTypeValidation
	ErrorTypeTemplate   = errors.ErrorTypeTemplate
	ErrorTypeRegistry   = errors.ErrorTypeRegistry
	ErrorTypeResolve    = errors.ErrorTypeResolve
)

// Sentinels for errors.Is.
var (
	ErrEmptySegment     = errors.ErrEmptySegment
	ErrTraversal        = errors.ErrTraversal
	ErrIllegalCharacter = errors.ErrIllegalCharacter
	ErrReservedName     = errors.ErrReservedName
	ErrSegmentTooLong   = errors.ErrSegmentTooLong
	ErrHomeRelative     = errors.ErrHomeRelative

	ErrEmptyTemplate         = errors.ErrEmptyTemplate
	ErrAbsoluteTemplate      = errors.ErrAbsoluteTemplate
	ErrMalformedPlaceholder  = errors.ErrMalformedPlaceholder
	ErrDuplicatePlaceholder  = errors.ErrDuplicatePlaceholder
	ErrMissingPlaceholderVal = errors.ErrMissingPlaceholderVal

	ErrEmptyID           = errors.ErrEmptyID
	ErrDuplicateID       = errors.ErrDuplicateID
	ErrUnknownID         = errors.ErrUnknownID
	ErrNotStatic         = errors.ErrNotStatic
	ErrInvalidBase       = errors.ErrInvalidBase
	ErrOverridesDisabled = errors.ErrOverridesDisabled
)

// New creates an empty registry rooted at <base>/<studio>/<project>.
func New(base, studio, project, appID string, opts ...Option) (*Registry, error) {
	return registry.New(base, studio, project, appID, opts...)
}

// WithLogger sets the logger used for registration and rejection events.
func WithLogger(logger Logger) Option { return registry.WithLogger(logger) }

// WithMode sets the registry mode.
func WithMode(mode Mode) Option { return registry.WithMode(mode) }

// WithBaseOverride replaces the base directory in debug mode.
func WithBaseOverride(dir string) Option { return registry.WithBaseOverride(dir) }

// ParseMode parses "release" or "debug"; the empty string is release.
func ParseMode(s string) (Mode, error) { return registry.ParseMode(s) }

// ParseTemplate parses and validates a path template without registering it.
func ParseTemplate(source string) (*Template, error) { return template.Parse(source) }

// ValidateSegment validates a single path segment and returns it in NFC.
func ValidateSegment(raw string) (string, error) { return validation.ValidateSegment(raw) }

// CodeOf returns the code of the first *PathError in the chain of err, or "".
func CodeOf(err error) string { return errors.CodeOf(err) }
