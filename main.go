package main

import (
	"os"

	"github.com/interview-coach/coach-pipeline/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
