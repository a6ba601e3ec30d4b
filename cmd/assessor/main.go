package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"assessor/internal/cli"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		os.Stderr.WriteString("Warning: could not load .env: " + err.Error() + "\n")
	}
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
