package main

import (
	"github.com/joho/godotenv"

	"github.com/rustyeddy/tradejournal/internal/cli"
)

func main() {
	// A missing .env is fine; JOURNAL_* variables may come from the shell.
	_ = godotenv.Load()
	cli.Execute()
}
