package main

import (
	"fmt"
	"os"

	"github.com/kobzarvs/qrepl/internal/app"
	"github.com/kobzarvs/qrepl/internal/logger"
)

func main() {
	args := os.Args[1:]
	debug := false
	if len(args) > 0 && args[0] == "--debug" {
		debug = true
		args = args[1:]
	}
	if err := logger.Init(debug); err != nil {
		fmt.Fprintln(os.Stderr, "qrepl:", err)
	}
	defer logger.Close()
	if err := app.New(args).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "qrepl:", err)
		os.Exit(1)
	}
}
