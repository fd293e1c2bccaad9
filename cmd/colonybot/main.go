package main

import "github.com/andrescamacho/colonybot/internal/adapters/cli"

func main() {
	cli.Execute()
}
