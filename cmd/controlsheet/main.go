// Command controlsheet maintains the content production control sheet.
package main

import (
	"os"

	"github.com/quillworks/controlsheet/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
