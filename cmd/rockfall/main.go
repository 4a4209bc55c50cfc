// Command rockfall simulates rocks falling into a seven-wide well pushed by
// jets of gas and prints the height of the stack.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
