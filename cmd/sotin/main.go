package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "sotin",
		Short: "Conversational research assistant with web-grounded answers",
	}

	root.AddCommand(serveCMD(), chatCMD(), lookupCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
