package main

import (
	"fmt"
	"os"

	"patrol/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if cmd.IsGateFailure(err) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}
