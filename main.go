package main

import (
	"os"

	"github.com/briefboard/briefboard/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
