package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/config"
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List the suggested companies",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, c := range config.DefaultCompanies {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
	},
}
