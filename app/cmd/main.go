package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "learnassist",
		Short:        "Learning assistant service backed by a hosted LLM",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "HCL config file (default $LEARNASSIST_CONFIG)")

	root.AddCommand(
		newServeCmd(&configPath),
		newPromptCmd(),
	)

	return root
}
