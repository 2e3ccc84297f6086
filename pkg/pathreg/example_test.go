package pathreg_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/conneroisu/pathreg/pkg/pathreg"
)

func exampleBase() string {
	return filepath.Join(os.TempDir(), "pathreg-example")
}

func Example() {
	r, err := pathreg.New(exampleBase(), "MyStudio", "MyGame", "ExampleApp")
	if err != nil {
		fmt.Println(err)
		return
	}

	_ = r.Register("SaveDir", "saves")
	_ = r.Register("LevelData", "cache/levels/{id}.map")

	saves := r.MustGetStatic("SaveDir")
	fmt.Println(saves.Relative())

	level, err := r.Resolve("LevelData", pathreg.Values{"id": "dungeon_01"})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(level.Relative())

	_, err = r.Resolve("LevelData", pathreg.Values{"id": "../../etc/passwd"})
	fmt.Println(errors.Is(err, pathreg.ErrIllegalCharacter))

	// Output:
	// saves
	// cache/levels/dungeon_01.map
	// true
}

func ExampleRegistry_Override() {
	r, _ := pathreg.New(exampleBase(), "MyStudio", "MyGame", "ExampleApp",
		pathreg.WithMode(pathreg.ModeDebug))
	_ = r.Register("SaveDir", "saves")

	_ = r.Override("SaveDir", "debug_saves")
	fmt.Println(r.MustGetStatic("SaveDir").Relative())

	_ = r.ClearOverride("SaveDir")
	fmt.Println(r.MustGetStatic("SaveDir").Relative())

	// Output:
	// debug_saves
	// saves
}

func ExampleValidateSegment() {
	for _, s := range []string{"Slot 1", "..", "con.txt"} {
		if _, err := pathreg.ValidateSegment(s); err != nil {
			fmt.Println(s, pathreg.CodeOf(err))
			continue
		}
		fmt.Println(s, "ok")
	}

	// Output:
	// Slot 1 ok
	// .. ERR_TRAVERSAL
	// con.txt ERR_RESERVED_NAME
}
