package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkjarl/gumshoe/internal/e2etest"
	"github.com/mkjarl/gumshoe/internal/errors"
	"github.com/mkjarl/gumshoe/internal/logging"
)

// TestGameRound plays one investigative round against a live deployment:
// start a game, gather one piece of evidence, consult the heuristic
// assistant and make an accusation.
func TestGameRound(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second) //nolint:mnd // 30 seconds
	defer cancel()

	var (
		doc *goquery.Document
		err error
	)
	if doc, err = client.SubmitForm(ctx, "/", "/play/start", nil); err != nil {
		return errors.Wrap(err, "start game")
	}
	if doc.Find("#stats").Length() != 1 {
		return errors.New("game stats missing after start")
	}

	if doc, err = client.SubmitDocForm(ctx, doc, "/play/action", "", nil); err != nil {
		return errors.Wrap(err, "take action")
	}
	if doc.Find("#history li").Length() < 1 {
		return errors.New("evidence missing from casefile after action")
	}

	if doc, err = client.SubmitDocForm(ctx, doc, "/play/suggest", "", nil); err != nil {
		return errors.Wrap(err, "suggest action")
	}
	if doc.Find("#suggestion").Length() != 1 {
		return errors.New("suggestion panel missing")
	}

	if doc, err = client.SubmitDocForm(ctx, doc, "/play/accuse", "", firstAccusation(doc)); err != nil {
		return errors.Wrap(err, "accuse")
	}
	if doc.Find("#verdict").Length() != 1 {
		return errors.New("verdict missing after accusation")
	}
	return nil
}

// firstAccusation picks the first option of each accusation select. The
// smoke test only cares that the round trip works, not that the guess is
// right.
func firstAccusation(doc *goquery.Document) map[string][]string {
	return map[string][]string{
		"suspect":  {doc.Find("#accuse-suspect option").First().AttrOr("value", "")},
		"weapon":   {doc.Find("#accuse-weapon option").First().AttrOr("value", "")},
		"location": {doc.Find("#accuse-location option").First().AttrOr("value", "")},
	}
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestGameRound(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error playing game round", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
