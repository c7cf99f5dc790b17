package main

import (
	"os"

	"github.com/courierlab/dispatchsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
