// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/luxfi/xmsg/cmd/plugin"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	cmd := plugin.NewXmsgCmd()
	cmd.Version = fmt.Sprintf("%s (built %s)", version, buildDate)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
