// main is the entry point for the vainupylinter CLI.
package main

import (
	"github.com/vainuio/vainupylinter/cmd"
	"github.com/vainuio/vainupylinter/internal/contract"
	"github.com/vainuio/vainupylinter/internal/history"
)

// main runs the root command. A gate run exits the process itself with 0 or 1.
func main() {
	defer history.CloseHistory()
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Error starting CLI", err)
	}
}
