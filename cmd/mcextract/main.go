package main

import "github.com/mcasset/extract/cmd"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main starts the mcextract cli
func main() {
	cmd.Run(version, commit, date)
}
