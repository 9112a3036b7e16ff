package main

import (
	"github.com/spf13/cobra"

	"certview/src/cmd/cert/servecmd"
)

func newServeCmd() *cobra.Command { return servecmd.New() }
