// Package main is the entry point for onair.
package main

import (
	"github.com/onair-cli/onair/cmd"
	"github.com/onair-cli/onair/config"
	"github.com/onair-cli/onair/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
