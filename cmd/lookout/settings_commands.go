package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lookout/internal/ipc"
)

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change persisted settings",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all persisted settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.SettingsList()
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if resp == nil || len(resp.Settings) == 0 {
					fmt.Fprintln(stdout, "No settings stored yet")
					return nil
				}
				table := renderTable([]string{"Setting", "Value"}, buildSettingsRows(resp.Settings), []columnAlignment{alignLeft, alignLeft})
				fmt.Fprintln(stdout, table)
				return nil
			})
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a single setting value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.TrimSpace(args[0])
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.SettingsGet(key)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.Value)
				return nil
			})
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a setting value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.TrimSpace(args[0])
			value := args[1]
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.SettingsSet(key, value)
				if err != nil {
					return err
				}
				if resp == nil || !resp.Updated {
					return fmt.Errorf("setting %q was not updated", key)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", key, value)
				return nil
			})
		},
	}

	settingsCmd.AddCommand(listCmd)
	settingsCmd.AddCommand(getCmd)
	settingsCmd.AddCommand(setCmd)
	return settingsCmd
}
