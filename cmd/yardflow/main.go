package main

import (
	"fmt"
	"os"

	"github.com/DEREKLIN1429/dereknou114/cmd/yardflow/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
