// Command measurectl converts measurements and keeps measurement records.
package main

import (
	"fmt"
	"os"
)

func main() {
	app, err := newApp(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}
