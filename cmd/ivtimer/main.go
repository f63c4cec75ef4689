package main

import (
	"os"

	"github.com/psantana5/ivtimer/cmd/ivtimer/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
