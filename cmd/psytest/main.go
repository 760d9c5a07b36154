package main

import (
	"fmt"
	"os"

	"github.com/IT-Nick/psytest/internal/cli"
	"github.com/fatih/color"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, color.RedString("Ошибка: %v", err))
		os.Exit(1)
	}
}
