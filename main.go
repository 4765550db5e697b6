package main

import (
	"os"

	"github.com/nonthaphat/sportsdesk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
