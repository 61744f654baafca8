package main

import (
	"fmt"
	"os"

	"github.com/learnmath/learnmath/cmd/cli/root"

	// Register subcommands.
	_ "github.com/learnmath/learnmath/cmd/cli/questions"
	_ "github.com/learnmath/learnmath/cmd/cli/users"
)

func main() {
	// Execute the root Cobra command
	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
