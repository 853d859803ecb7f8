// crmctl runs maintenance tasks against the CRM database.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: .env file not found, relying on system env")
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
