package main

import (
	"os"

	"latentd/internal/ctl"
)

func main() {
	os.Exit(ctl.Main(os.Args[1:]))
}
