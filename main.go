// Groclist - a command-line grocery list manager with reminders.
package main

import (
	"os"

	"github.com/karimwahba/groclist/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
