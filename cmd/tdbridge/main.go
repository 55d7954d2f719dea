package main

import (
	"fmt"
	"os"

	"github.com/tdmcp/tdbridge/bridge"
)

func main() {
	if err := bridge.Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
