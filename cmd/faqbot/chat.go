package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/faqmatch/internal/conversation"
	logpkg "github.com/kailas-cloud/faqmatch/internal/logger"
	"github.com/kailas-cloud/faqmatch/internal/usecase/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Reads questions from stdin and prints replies. The session keeps its own
history; commands: /history, /clear, /quit.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := bootstrap(ctx, bootstrapOptions{withCache: true, defaultLevel: "warn"})
	if err != nil {
		return err
	}
	defer a.close()

	if noColor {
		color.NoColor = true
	}

	r := &repl{
		answer: a.answer,
		log:    conversation.NewLog(),
		logger: a.logger,
		in:     cmd.InOrStdin(),
		out:    cmd.OutOrStdout(),
	}
	return r.run(ctx)
}

var (
	youColor    = color.New(color.FgCyan, color.Bold)
	botColor    = color.New(color.FgGreen, color.Bold)
	errColor    = color.New(color.FgRed)
	systemColor = color.New(color.FgHiBlack)
)

// repl drives the interactive session; the history log is owned here, never by the router.
type repl struct {
	answer func(ctx context.Context, query string) (chat.Reply, bool)
	log    *conversation.Log
	logger *zap.Logger
	in     io.Reader
	out    io.Writer
}

func (r *repl) run(ctx context.Context) error {
	systemColor.Fprintf(r.out, "👔 Boutique assistant (session %s). Type /quit to exit.\n", r.log.SessionID())

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for {
		youColor.Fprint(r.out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case "/quit", "/exit":
			systemColor.Fprintln(r.out, "Goodbye!")
			return nil
		case "/clear":
			r.log.Clear()
			systemColor.Fprintf(r.out, "History cleared (session %s).\n", r.log.SessionID())
			continue
		case "/history":
			r.printHistory()
			continue
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		_ = r.log.Append(conversation.RoleUser, line)
		reply, ok := r.answer(r.sessionContext(ctx), line)
		_ = r.log.Append(conversation.RoleAssistant, reply.Text)

		if !ok {
			errColor.Fprintln(r.out, reply.Text)
			continue
		}
		botColor.Fprint(r.out, "Bot: ")
		fmt.Fprintln(r.out, reply.Text)
	}
}

// sessionContext tags query logs with the current session id, which changes on /clear.
func (r *repl) sessionContext(ctx context.Context) context.Context {
	if r.logger == nil {
		return ctx
	}
	return logpkg.ContextWithLogger(ctx, r.logger.With(zap.String("session_id", r.log.SessionID())))
}

func (r *repl) printHistory() {
	entries := r.log.Entries()
	if len(entries) == 0 {
		systemColor.Fprintln(r.out, "No messages yet.")
		return
	}
	for _, e := range entries {
		c := youColor
		if e.Role == conversation.RoleAssistant {
			c = botColor
		}
		c.Fprintf(r.out, "[%s] %s: ", e.At.Format("15:04:05"), e.Role)
		fmt.Fprintln(r.out, e.Content)
	}
}
