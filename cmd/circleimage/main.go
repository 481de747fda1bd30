// Command circleimage renders images cropped to a circle the way the
// CircleImage widget draws them, and inspects image sources.
package main

import (
	"fmt"
	"os"

	"github.com/TkwkT/CircleImageView/cmd/circleimage/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
