package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lookout/internal/daemon"
	"lookout/internal/ipc"
)

func newSendCommand(ctx *commandContext) *cobra.Command {
	var target string
	var data string

	cmd := &cobra.Command{
		Use:   "send <type>",
		Short: "Send a control message to the daemon",
		Long: fmt.Sprintf(
			"Send a control message envelope to the daemon. Supported types are %q, %q, and %q; messages addressed to any target other than %q are ignored.",
			daemon.MessagePlaySound, daemon.MessageShowNotification, daemon.MessageClearBadge, daemon.MessageTargetBackground,
		),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			messageType := strings.TrimSpace(args[0])
			if messageType == "" {
				return fmt.Errorf("message type is required")
			}

			var payload json.RawMessage
			if trimmed := strings.TrimSpace(data); trimmed != "" {
				if !json.Valid([]byte(trimmed)) {
					return fmt.Errorf("--data must be valid JSON")
				}
				payload = json.RawMessage(trimmed)
			}

			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Send(target, messageType, payload)
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if resp != nil && resp.Handled {
					fmt.Fprintln(stdout, "Message handled")
				} else {
					fmt.Fprintln(stdout, "Message ignored")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&target, "target", daemon.MessageTargetBackground, "Message target")
	cmd.Flags().StringVar(&data, "data", "", "JSON payload for the message")
	return cmd
}
