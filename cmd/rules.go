package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tray-check/config"
	"tray-check/internal/infrastructure/report"
	"tray-check/internal/infrastructure/storage"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Показать действующие правила комплектации",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		rules, err := storage.LoadRules(cfg.RulesPath)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), report.DescribeRules(rules))
		return nil
	},
}
