// Command efyj evaluates, adjusts, or predicts against a DEXi-like
// model and an options CSV, streaming results to stdout or to the
// files named by -e/-g.
package main

import (
	"os"

	"github.com/efyj-go/efyj/cmd/efyj/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
