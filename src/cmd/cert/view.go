package main

import (
	"github.com/spf13/cobra"

	"certview/src/cmd/cert/viewcmd"
)

func newViewCmd() *cobra.Command { return viewcmd.New() }
