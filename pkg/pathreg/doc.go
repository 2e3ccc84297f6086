// Package pathreg provides a registry of named, project-relative application
// paths that can never escape their project root.
//
// Every path is registered under an identifier with a template such as
// "saves" or "cache/levels/{id}.map". Templates are parsed and validated once
// at registration; placeholder values are validated again at resolution, so
// a resolved path is always <base>/<studio>/<project>/<relative>.
//
// # Quick Start
//
//	r, err := pathreg.New("/opt/games", "MyStudio", "MyGame", "ExampleApp")
//	if err != nil {
//		return err
//	}
//
//	_ = r.Register("SaveDir", "saves")
//	_ = r.Register("LevelData", "cache/levels/{id}.map")
//
//	saves := r.MustGetStatic("SaveDir")
//	level, err := r.Resolve("LevelData", pathreg.Values{"id": "dungeon_01"})
//
// # Segment Rules
//
// Templates are relative: they may not start with "/" or "~". Each segment,
// literal or substituted, must be non-empty and at most 255 bytes, must not
// be "." or "..", must not contain a separator, a control character or any
// of <>:"\|?*, must not end with a dot or space, and must not be a reserved
// device name such as CON, NUL, COM1 or LPT9 in any case, with or without an
// extension. Valid segments are normalized to Unicode NFC.
//
// # Debug Overrides
//
// A registry created WithMode(ModeDebug) accepts Override, which replaces the
// template of an identifier, and WithBaseOverride, which replaces the base
// directory. Both are refused or ignored in release mode.
//
// # Errors
//
// Every failure is a *PathError carrying a stable code. Compare with
// errors.Is against the exported sentinels:
//
//	if errors.Is(err, pathreg.ErrTraversal) {
//		// reject the input
//	}
//
// # Concurrency
//
// A Registry is safe for concurrent use. Registration takes a write lock;
// lookups and resolution share a read lock.
package pathreg
