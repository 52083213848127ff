package main

import (
	"github.com/davidvella/dayroll/cmd/dayroll/commands"
)

func main() {
	commands.Execute()
}
