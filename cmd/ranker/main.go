package main

import (
	"os"

	"alfredoptarigan/resume-ranker/cmd/ranker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
