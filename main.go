// main is the entry point for the dropoff CLI.
package main

import (
	"fmt"
	"os"

	"github.com/seasonlab/dropoff/cmd"
)

func main() {
	err := cmd.Execute()

	if profErr := cmd.StopProfiling(); profErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", profErr)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
