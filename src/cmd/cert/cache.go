package main

import (
	"github.com/spf13/cobra"

	"certview/src/cmd/cert/cachecmd"
)

func newCacheCmd() *cobra.Command { return cachecmd.New() }
