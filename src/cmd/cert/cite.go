package main

import (
	"github.com/spf13/cobra"

	"certview/src/cmd/cert/citecmd"
)

func newCiteCmd() *cobra.Command { return citecmd.New() }
