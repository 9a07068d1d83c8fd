// cmd_play.go
//
// Terminal front end. Each input line is mapped to an intent the way a
// speech platform would, then handed to the dialog app:
//
//	a number        provide_guess
//	empty line      no_input (escalating)
//	quit / bye      quit_game
//	yes / no        play_again_* or done_* depending on the open context
//	repeat, daily   repeat, daily_game
//	anything else   fallback

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/numbergenie/internal/dialog"
	"github.com/robalobadob/numbergenie/internal/rng"
)

var (
	playSeed  uint64
	playDaily bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		if zerolog.GlobalLevel() < zerolog.WarnLevel {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		}

		src := rng.Default()
		if playSeed != 0 {
			src = rng.NewSeeded(playSeed)
		}
		d, err := build(cfg, src)
		if err != nil {
			return err
		}
		defer d.Close()

		first := dialog.IntentStart
		if playDaily {
			first = dialog.IntentDaily
		}
		return play(cmd.Context(), d.app, first, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	playCmd.Flags().Uint64Var(&playSeed, "seed", 0, "deterministic seed (0 = random)")
	playCmd.Flags().BoolVar(&playDaily, "daily", false, "play today's daily number")
}

// play runs one conversation until the app ends it or input runs out.
func play(ctx context.Context, app *dialog.App, first string, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	id := uuid.NewString()
	res, err := app.Handle(ctx, dialog.Request{SessionID: id, Intent: first})
	if err != nil {
		return err
	}
	show(out, res)

	sc := bufio.NewScanner(in)
	reprompts := 0
	for !res.EndConversation {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			break
		}
		req := toRequest(sc.Text(), res.Contexts)
		req.SessionID = id
		if req.Intent == dialog.IntentNoInput {
			req.RepromptCount = reprompts
			reprompts++
		} else {
			reprompts = 0
		}
		res, err = app.Handle(ctx, req)
		if err != nil {
			return err
		}
		show(out, res)
	}
	return sc.Err()
}

func toRequest(line string, open []dialog.Context) dialog.Request {
	text := strings.TrimSpace(line)
	word := strings.ToLower(text)
	if n, err := strconv.Atoi(word); err == nil {
		return dialog.Request{Intent: dialog.IntentGuess, Guess: &n, RawText: text}
	}
	switch word {
	case "":
		return dialog.Request{Intent: dialog.IntentNoInput}
	case "quit", "bye", "give up":
		return dialog.Request{Intent: dialog.IntentQuit, RawText: text}
	case "cancel", "stop":
		return dialog.Request{Intent: dialog.IntentCancel, RawText: text}
	case "repeat", "again?", "what":
		return dialog.Request{Intent: dialog.IntentRepeat, RawText: text}
	case "daily":
		return dialog.Request{Intent: dialog.IntentDaily, RawText: text}
	case "i'm done", "done":
		return dialog.Request{Intent: dialog.IntentDoneYes, RawText: text}
	case "yes", "y", "no", "n":
		yes := word[0] == 'y'
		if hasContext(open, dialog.ContextDoneYesNo) {
			return dialog.Request{Intent: pickIntent(yes, dialog.IntentDoneYes, dialog.IntentDoneNo), RawText: text}
		}
		return dialog.Request{Intent: pickIntent(yes, dialog.IntentPlayAgainYes, dialog.IntentPlayAgainNo), RawText: text}
	}
	return dialog.Request{Intent: dialog.IntentFallback, RawText: text}
}

func hasContext(open []dialog.Context, name string) bool {
	for _, c := range open {
		if c.Name == name {
			return true
		}
	}
	return false
}

func pickIntent(yes bool, a, b string) string {
	if yes {
		return a
	}
	return b
}

func show(out io.Writer, res dialog.Response) {
	fmt.Fprintln(out, res.DisplayText)
	if res.Card != nil && res.Card.Caption != "" {
		fmt.Fprintf(out, "  [%s]\n", res.Card.Caption)
	}
	if len(res.Suggestions) > 0 {
		fmt.Fprintf(out, "  (%s)\n", strings.Join(res.Suggestions, " | "))
	}
}
