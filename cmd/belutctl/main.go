// Command belutctl runs maintenance tasks against the BELUT.IN database:
// migrations, user creation and offline report exports.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
