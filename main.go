package main

import (
	"os"

	"spendscope/cmd/analyze"
	"spendscope/cmd/categorize"
	"spendscope/cmd/root"
)

func main() {
	root.Init()
	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
