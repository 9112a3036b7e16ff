package main

import (
	"github.com/spf13/cobra"

	"certview/src/cmd/cert/tidycmd"
)

func newTidyCmd() *cobra.Command { return tidycmd.New() }
