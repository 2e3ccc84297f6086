package registry

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/conneroisu/pathreg/internal/errors"
	"github.com/conneroisu/pathreg/internal/logging"
	"github.com/conneroisu/pathreg/internal/template"
)

const (
	testStudio  = "MyStudio"
	testProject = "MyGame"
	testAppID   = "ExampleApp"
)

func newTestRegistry(t *testing.T, opts ...Option) (*Registry, string) {
	t.Helper()

	base := t.TempDir()
	r, err := New(base, testStudio, testProject, testAppID, opts...)
	require.NoError(t, err)
	return r, filepath.Join(base, testStudio, testProject)
}

func TestNew(t *testing.T) {
	r, root := newTestRegistry(t)

	assert.NotNil(t, r)
	assert.Equal(t, 0, r.Count())
	assert.Empty(t, r.Entries())
	assert.Equal(t, ModeRelease, r.Mode())
	assert.Equal(t, root, r.Root().Dir())
	assert.Equal(t, testAppID, r.Root().AppID())
}

// Scenario A: a static template resolves directly under the root.
func TestStaticPath(t *testing.T) {
	r, root := newTestRegistry(t)

	require.NoError(t, r.Register("SaveDir", "saves"))

	got, ok := r.GetStatic("SaveDir")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "saves"), got.String())
	assert.Equal(t, "saves", got.Relative())

	resolved, err := r.Resolve("SaveDir", template.Values{"ignored": "x"})
	require.NoError(t, err)
	assert.Equal(t, got, resolved)
}

// Scenario B: placeholders substitute into the final segment.
func TestResolvePlaceholder(t *testing.T) {
	r, root := newTestRegistry(t)
	require.NoError(t, r.Register("LevelData", "cache/levels/{id}.map"))

	got, err := r.Resolve("LevelData", template.Values{"id": "dungeon_01"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "cache", "levels", "dungeon_01.map"), got.String())
	assert.Equal(t, "cache/levels/dungeon_01.map", got.Relative())
	assert.Equal(t, filepath.ToSlash(root)+"/cache/levels/dungeon_01.map", got.Slash())
}

// Scenario C: traversal in a value is rejected, never sanitized.
func TestResolveRejectsTraversalValue(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(&logging.LoggerConfig{Level: logging.LevelWarn, Format: "json", Output: &buf})
	r, _ := newTestRegistry(t, WithLogger(logger))
	require.NoError(t, r.Register("LevelData", "cache/levels/{id}.map"))

	for _, value := range []string{"../etc", "a/../../b", `..\..\windows`} {
		got, err := r.Resolve("LevelData", template.Values{"id": value})
		require.Error(t, err, "value %q", value)
		assert.True(t, got.IsZero())
		assert.True(t,
			errors.Is(err, perrors.ErrTraversal) || errors.Is(err, perrors.ErrIllegalCharacter),
			"value %q: %v", value, err)

		var pe *perrors.PathError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "LevelData", pe.ID)
		assert.Equal(t, 2, pe.Index)
	}

	require.NoError(t, r.Register("SlotDir", "saves/{slot}"))
	_, err := r.Resolve("SlotDir", template.Values{"slot": ".."})
	assert.True(t, errors.Is(err, perrors.ErrTraversal))

	assert.Contains(t, buf.String(), "Rejected unsafe path input")
	assert.Contains(t, buf.String(), `"event_type":"security"`)
}

// Scenario D: a missing placeholder value is reported.
func TestResolveMissingValue(t *testing.T) {
	r, _ := newTestRegistry(t)
	require.NoError(t, r.Register("SlotData", "saves/{slot}/data.json"))

	_, err := r.Resolve("SlotData", template.Values{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, perrors.ErrMissingPlaceholderVal))

	var pe *perrors.PathError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "slot", pe.Placeholder)
	assert.Equal(t, "SlotData", pe.ID)
}

// Scenario E: reserved literals fail at registration time.
func TestRegisterRejectsReservedLiteral(t *testing.T) {
	r, _ := newTestRegistry(t)

	err := r.Register("Device", "con/data.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, perrors.ErrReservedName))
	assert.False(t, r.Has("Device"))
	assert.Equal(t, 0, r.Count())

	var pe *perrors.PathError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "Device", pe.ID)
	assert.Equal(t, 0, pe.Index)
}

func TestRegisterErrors(t *testing.T) {
	tests := []struct {
		name     string
		id       ID
		template string
		wantErr  error
	}{
		{name: "empty id", id: "", template: "saves", wantErr: perrors.ErrEmptyID},
		{name: "empty template", id: "A", template: "", wantErr: perrors.ErrEmptyTemplate},
		{name: "absolute template", id: "A", template: "/etc", wantErr: perrors.ErrAbsoluteTemplate},
		{name: "home template", id: "A", template: "~/saves", wantErr: perrors.ErrHomeRelative},
		{name: "traversal literal", id: "A", template: "../saves", wantErr: perrors.ErrTraversal},
		{name: "malformed", id: "A", template: "saves/{slot", wantErr: perrors.ErrMalformedPlaceholder},
		{name: "duplicate placeholder", id: "A", template: "{a}/{a}", wantErr: perrors.ErrDuplicatePlaceholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRegistry(t)
			err := r.Register(tt.id, tt.template)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, 0, r.Count())
		})
	}
}

func TestWithIDLabelsEveryWrapper(t *testing.T) {
	inner := perrors.NewTemplateError(perrors.ErrCodeMalformedPlaceholder, "bad placeholder")
	wrapped := perrors.WrapConfig(inner, "loading paths")

	err := withID(fmt.Errorf("register: %w", wrapped), "LevelData")

	assert.Equal(t, "LevelData", wrapped.ID)
	assert.Equal(t, "LevelData", inner.ID)
	assert.Contains(t, err.Error(), "["+perrors.ErrCodeConfigInvalid+"] id:LevelData")
	assert.Contains(t, err.Error(), "["+perrors.ErrCodeMalformedPlaceholder+"] id:LevelData")

	plain := errors.New("plain")
	assert.Same(t, plain, withID(plain, "LevelData"))
}

func TestRegisterDuplicateKeepsFirst(t *testing.T) {
	r, root := newTestRegistry(t)

	require.NoError(t, r.Register("SaveDir", "saves"))
	err := r.Register("SaveDir", "other")
	require.Error(t, err)
	assert.True(t, errors.Is(err, perrors.ErrDuplicateID))

	var pe *perrors.PathError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "SaveDir", pe.ID)
	assert.Equal(t, "saves", pe.Context["registered"])

	got, ok := r.GetStatic("SaveDir")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "saves"), got.String())
	assert.Equal(t, 1, r.Count())
}

func TestRegisterStatic(t *testing.T) {
	r, _ := newTestRegistry(t)

	require.NoError(t, r.RegisterStatic("Config", "config/settings.ini"))

	err := r.RegisterStatic("LevelData", "cache/{id}.map")
	require.Error(t, err)
	assert.True(t, errors.Is(err, perrors.ErrNotStatic))
	assert.False(t, r.Has("LevelData"))

	err = r.RegisterStatic("Broken", "a//b")
	assert.True(t, errors.Is(err, perrors.ErrEmptySegment))

	err = r.RegisterStatic("", "a")
	assert.True(t, errors.Is(err, perrors.ErrEmptyID))
}

func TestRegisterAll(t *testing.T) {
	r, _ := newTestRegistry(t)

	err := r.RegisterAll([]Definition{
		{ID: "SaveDir", Template: "saves"},
		{ID: "Device", Template: "con/data.txt"},
		{ID: "LevelData", Template: "cache/levels/{id}.map"},
		{ID: "SaveDir", Template: "again"},
		{ID: "Broken", Template: "{"},
	})
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 3)
	assert.True(t, errors.Is(merr.Errors[0], perrors.ErrReservedName))
	assert.True(t, errors.Is(merr.Errors[1], perrors.ErrDuplicateID))
	assert.True(t, errors.Is(merr.Errors[2], perrors.ErrMalformedPlaceholder))

	assert.Equal(t, 2, r.Count())
	assert.True(t, r.Has("SaveDir"))
	assert.True(t, r.Has("LevelData"))
}

func TestRegisterAllSuccess(t *testing.T) {
	r, _ := newTestRegistry(t)

	assert.NoError(t, r.RegisterAll([]Definition{
		{ID: "SaveDir", Template: "saves"},
		{ID: "LevelData", Template: "cache/levels/{id}.map"},
	}))
	assert.NoError(t, r.RegisterAll(nil))
	assert.Equal(t, 2, r.Count())
}

func TestGetStatic(t *testing.T) {
	r, _ := newTestRegistry(t)
	require.NoError(t, r.Register("SaveDir", "saves"))
	require.NoError(t, r.Register("LevelData", "cache/levels/{id}.map"))

	_, ok := r.GetStatic("LevelData")
	assert.False(t, ok, "placeholder template is not static")

	_, ok = r.GetStatic("Missing")
	assert.False(t, ok)

	assert.NotPanics(t, func() { r.MustGetStatic("SaveDir") })
	assert.Panics(t, func() { r.MustGetStatic("LevelData") })
}

func TestResolveUnknownID(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.Resolve("Nope", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, perrors.ErrUnknownID))
	assert.Contains(t, err.Error(), "id:Nope")
}

func TestResolveIsIdempotent(t *testing.T) {
	r, _ := newTestRegistry(t)
	require.NoError(t, r.Register("Region", "save/{save_name}/region_{x}_{y}.map"))

	values := template.Values{"save_name": "world", "x": "1", "y": "2"}
	first, err := r.Resolve("Region", values)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := r.Resolve("Region", values)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolvedPathsStayUnderRoot(t *testing.T) {
	r, root := newTestRegistry(t)
	require.NoError(t, r.Register("Any", "data/{name}"))

	for _, value := range []string{"ok", "a b", "café", ".hidden", "x..y"} {
		got, err := r.Resolve("Any", template.Values{"name": value})
		require.NoError(t, err, "value %q", value)

		rel, err := filepath.Rel(root, got.String())
		require.NoError(t, err)
		assert.True(t, filepath.IsLocal(rel), "value %q escaped the root: %s", value, got)
	}
}

func TestLookupAndEntries(t *testing.T) {
	r, _ := newTestRegistry(t)
	ids := []ID{"Zeta", "Alpha", "Mid"}
	for _, id := range ids {
		require.NoError(t, r.Register(id, "dir_"+string(id)))
	}

	entries := r.Entries()
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, ids[i], e.ID, "entries keep registration order")
		assert.Equal(t, i, e.Order)
		assert.Nil(t, e.Override)
		assert.Equal(t, e.Template, e.Effective())
	}

	e, ok := r.Lookup("Alpha")
	require.True(t, ok)
	assert.Equal(t, "dir_Alpha", e.Template.Source())
	assert.Equal(t, 1, e.Order)

	_, ok = r.Lookup("Missing")
	assert.False(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	r, _ := newTestRegistry(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			id := ID(fmt.Sprintf("Path%d", index))
			assert.NoError(t, r.Register(id, fmt.Sprintf("levels/{id}_%d.map", index)))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, r.Count())

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			id := ID(fmt.Sprintf("Path%d", index))
			got, err := r.Resolve(id, template.Values{"id": "x"})
			assert.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("levels/x_%d.map", index), got.Relative())
		}(i)
	}
	wg.Wait()
}

func TestConcurrentDuplicateRegistration(t *testing.T) {
	r, _ := newTestRegistry(t)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			if err := r.Register("Shared", fmt.Sprintf("dir%d", index)); err != nil {
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, r.Count())
	assert.Equal(t, 9, failures)
}
