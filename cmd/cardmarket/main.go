// Package main is the entry point for the cardmarket CLI client.
package main

import (
	"github.com/donaldgifford/card-market/cmd/cardmarket/cmd"
)

func main() {
	cmd.Execute()
}
