package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/magma1447/mergerfs-tools/internal/cli"
	"github.com/magma1447/mergerfs-tools/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "MERGERFS-CONSOLIDATE",
		Section: "1",
		Source:  "mergerfs-tools " + version.Version,
		Manual:  "mergerfs-tools manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
