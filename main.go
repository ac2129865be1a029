package main

import (
	"os"

	"github.com/yuksel-arslan/SmartCon360-sub007/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
