package main

import (
	"os"

	"github.com/conneroisu/pathreg/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
