package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Print recently searched queries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(GetConfig())
		if err != nil {
			return err
		}
		defer a.Close()

		qs, err := a.aggregator.Recent(cmd.Context())
		if err != nil {
			return err
		}
		for _, q := range qs {
			fmt.Fprintln(cmd.OutOrStdout(), q)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recentCmd)
}
