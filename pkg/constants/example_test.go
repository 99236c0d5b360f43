package constants_test

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/agentstation/strainmap/pkg/constants"
)

// Example demonstrates creating the library directory with standard permissions
func Example() {
	dir, err := os.MkdirTemp("", "strainmap-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	libDir := filepath.Join(dir, "library")
	if err := os.MkdirAll(libDir, constants.DirPermissions); err != nil {
		panic(err)
	}
	file := filepath.Join(libDir, constants.DefaultLibraryFile)
	if err := os.WriteFile(file, []byte("strains: []\n"), constants.FilePermissions); err != nil {
		panic(err)
	}

	fmt.Printf("Library file: %s\n", filepath.Base(file))
	fmt.Printf("Created file with %o permissions\n", constants.FilePermissions)
	// Output:
	// Library file: strains.yaml
	// Created file with 644 permissions
}

// Example_timeouts demonstrates timeout constants
func Example_timeouts() {
	srv := &http.Server{
		ReadTimeout:  constants.ServerReadTimeout,
		WriteTimeout: constants.ServerWriteTimeout,
	}
	fmt.Printf("Read timeout: %v\n", srv.ReadTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), constants.LLMRequestTimeout)
	defer cancel()
	_, hasDeadline := ctx.Deadline()
	fmt.Printf("LLM deadline set: %v\n", hasDeadline)

	// Output:
	// Read timeout: 15s
	// LLM deadline set: true
}

// Example_heuristics shows the extraction heuristics
func Example_heuristics() {
	fmt.Printf("Unlabeled name limit: %d\n", constants.MaxUnlabeledNameLength)
	fmt.Printf("Min terpene name: %d\n", constants.MinTerpeneNameLength)
	fmt.Printf("Default model: %s\n", constants.DefaultGeminiModel)

	// Output:
	// Unlabeled name limit: 60
	// Min terpene name: 2
	// Default model: gemini-3-flash-preview
}
