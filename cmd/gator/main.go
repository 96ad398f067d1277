package main

import (
	"context"
	"fmt"
	"os"

	"gator/internal/cmd"
)

func main() {
	app := &cmd.App{Out: os.Stdout, Err: os.Stderr, OpenStore: cmd.OpenStore, Exit: os.Exit}
	if err := app.Run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
