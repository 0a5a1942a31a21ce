package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"inmomax/internal/chatbot"
)

func newChatCmd(a *app) *cobra.Command {
	var minDelay, maxDelay time.Duration

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the InmoMax assistant; type \"salir\" to quit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("min-delay") {
				minDelay = a.cfg.Chat.ReplyDelayMin
			}
			if !cmd.Flags().Changed("max-delay") {
				maxDelay = a.cfg.Chat.ReplyDelayMax
			}
			return runChat(cmd, minDelay, maxDelay)
		},
	}
	cmd.Flags().DurationVar(&minDelay, "min-delay", chatbot.DefaultMinDelay, "minimum reply delay")
	cmd.Flags().DurationVar(&maxDelay, "max-delay", chatbot.DefaultMaxDelay, "maximum reply delay")
	return cmd
}

func runChat(cmd *cobra.Command, minDelay, maxDelay time.Duration) error {
	out := cmd.OutOrStdout()
	replies := make(chan chatbot.ChatMessage, 1)

	conv := chatbot.NewConversation(chatbot.DefaultTable(),
		chatbot.WithDelayRange(minDelay, maxDelay),
		chatbot.WithNotify(func(m chatbot.ChatMessage) {
			if m.Sender == chatbot.SenderBot {
				replies <- m
			}
		}),
	)
	defer conv.Shutdown()
	conv.Open()

	printBot(out, conv.Messages()[0])
	for i, q := range conv.QuickReplies() {
		fmt.Fprintf(out, "  %d) %s\n", i+1, q)
	}

	ctx := cmd.Context()
	in := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !in.Scan() {
			fmt.Fprintln(out)
			return in.Err()
		}
		text := strings.TrimSpace(in.Text())
		if strings.EqualFold(text, "salir") {
			return nil
		}

		if _, err := conv.Send(text); err != nil {
			if errors.Is(err, chatbot.ErrEmptyMessage) {
				continue
			}
			return err
		}

		select {
		case m := <-replies:
			printBot(out, m)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func printBot(out io.Writer, m chatbot.ChatMessage) {
	fmt.Fprintf(out, "[%s] InmoMax: %s\n", m.Timestamp.Format("15:04"), m.Text)
}
