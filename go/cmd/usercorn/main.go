package main

import (
	"os"

	"github.com/usercorn-project/usercorn/go/cmd"
)

func main() {
	os.Exit(cmd.NewUsercornCmd().Run(os.Args, os.Environ()))
}
