// Package main provides the basis CLI.
package main

import (
	"fmt"
	"os"

	"github.com/basis-fem/basis/engine"

	_ "github.com/basis-fem/basis/engine/gonum"
	_ "github.com/basis-fem/basis/engine/gorgonia"
	_ "github.com/basis-fem/basis/engine/native"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("basis %s\n", version)
			return
		case "engines":
			for _, name := range engine.Engines() {
				e, err := engine.Lookup(name)
				if err != nil {
					fmt.Fprintln(os.Stderr, "basis:", err)
					os.Exit(1)
				}
				fmt.Printf("%-12s %s\n", name, e.Convention())
			}
			return
		}
	}

	fmt.Println("basis - multi-engine tensor and FEM kernels for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  engines    List registered engines")
}
