package main

import (
	"github.com/sst/widgetlink/cmd"
	"github.com/sst/widgetlink/internal/logging"
)

func main() {
	defer logging.RecoverPanic("main", nil)

	cmd.Execute()
}
