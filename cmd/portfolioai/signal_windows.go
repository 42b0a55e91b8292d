//go:build windows

package main

import (
	"os"
)

// terminationSignals stop the server gracefully; Windows only delivers Ctrl+C.
var terminationSignals = []os.Signal{os.Interrupt}
