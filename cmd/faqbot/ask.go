package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [query...]",
	Short: "Answer a single question and exit",
	Long:  `Routes one query through the pricing, collection and generic handlers and prints the reply.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the reply with routing details as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := bootstrap(ctx, bootstrapOptions{withCache: true, defaultLevel: "warn"})
	if err != nil {
		return err
	}
	defer a.close()

	reply, _ := a.answer(ctx, strings.Join(args, " "))
	out := cmd.OutOrStdout()
	if askJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(reply)
	}
	_, err = fmt.Fprintln(out, reply.Text)
	return err
}
