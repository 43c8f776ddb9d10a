package main

import (
	"github.com/joho/godotenv"

	"leaguerank/internal/cli"
)

func main() {
	// A missing .env is fine; flags and the environment still apply
	_ = godotenv.Load()

	cli.Execute()
}
