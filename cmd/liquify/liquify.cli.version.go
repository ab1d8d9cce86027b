package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/itsatony/go-liquify"
)

func runVersion(stdout io.Writer) int {
	fmt.Fprintf(stdout, FmtVersion+"\n", liquify.Version, runtime.Version())
	return ExitCodeSuccess
}
