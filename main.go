package main

import "github.com/custodia-labs/connect-cli/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
