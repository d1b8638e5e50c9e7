package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cabfare/backend/internal/domain"
)

func newChatCmd(state *rootState) *cobra.Command {
	var trip domain.Trip

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Compare fares, then chat with the assistant about them",
		Long: "Runs a comparison and starts an interactive session. " +
			"Type /reset to clear the conversation and /quit to leave.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, state.cfg, state.logger, false)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			out := cmd.OutOrStdout()
			renderBanner(out)

			result, err := a.comparisons.Compare(ctx, trip)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			renderComparison(out, result)

			summary := a.chat.Summarize(ctx, result)
			history := []domain.Message{{
				Role:    domain.RoleAssistant,
				Content: "I've compared the fares for your trip!\n\n" + summary,
			}}
			fmt.Fprintf(out, "\n💬 %s\n", history[0].Content)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "\nyou> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				switch line {
				case "":
					continue
				case "/quit", "/exit":
					return nil
				case "/reset":
					history = nil
					fmt.Fprintln(out, mutedStyle.Render("conversation cleared"))
					continue
				}

				reply := a.chat.Respond(ctx, line, history, result)
				history = append(history,
					domain.Message{Role: domain.RoleUser, Content: line},
					domain.Message{Role: domain.RoleAssistant, Content: reply},
				)
				fmt.Fprintf(out, "cabfare> %s\n", reply)

				if ctx.Err() != nil {
					return nil
				}
			}
			return scanner.Err()
		},
	}

	addTripFlags(cmd, &trip)
	return cmd
}
