package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse or clear generated prompts",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List history entries, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := newSession(cfg, nil)
		if err != nil {
			return err
		}
		defer s.Close()

		return renderHistory(cmd.OutOrStdout(), cfg.Output, s.ctrl.View().History)
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a history entry without calling the model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := newSession(cfg, nil)
		if err != nil {
			return err
		}
		defer s.Close()

		result, err := s.ctrl.SelectHistoryItem(args[0])
		if err != nil {
			return err
		}
		return renderResult(cmd.OutOrStdout(), cfg.Output, result)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every history entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Clear all history?") {
			fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
			return nil
		}

		s, err := newSession(cfg, nil)
		if err != nil {
			return err
		}
		defer s.Close()

		n := len(s.ctrl.View().History)
		s.ctrl.ClearHistory()
		fmt.Fprintf(cmd.ErrOrStderr(), "Cleared %d entries.\n", n)
		return nil
	},
}

func init() {
	historyClearCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
}

// confirm は y/yes の入力があった場合のみ true を返します。
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
