// Command ideanet draws the animated idea network in a terminal, renders headless snapshots, and
// browses the idea box behind it.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, bad.Sprint("ideanet:"), err)
		os.Exit(1)
	}
}
