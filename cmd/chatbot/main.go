package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cognicore/scriptbox/internal/logger"
	"github.com/cognicore/scriptbox/pkg/scriptbox/chat"
	"github.com/cognicore/scriptbox/pkg/scriptbox/config"
	"github.com/cognicore/scriptbox/pkg/scriptbox/store"
	"github.com/cognicore/scriptbox/pkg/scriptbox/store/sqlite"
)

func main() {
	var (
		responsesPath = flag.String("responses", "", "Response tables YAML (optional, built-in tables if empty)")
		stoplistPath  = flag.String("stoplist", "", "Stoplist YAML (optional, English stopwords if empty)")
		lexiconPath   = flag.String("lexicon", "", "Lemma lexicon YAML (optional)")
		matchMode     = flag.String("match", "", "Topic match mode: substring or phrase (overrides responses file)")
		seed          = flag.Uint64("seed", 0, "Seed for reply selection (0 = random)")
		historyPath   = flag.String("history", "", "SQLite transcript database (optional)")
		replay        = flag.Bool("replay", false, "Print the last recorded session from --history and exit")
		logMode       = flag.String("log", "dev", "Log mode: dev or prod")
	)
	flag.Parse()

	log, err := logger.New(*logMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := config.Loader{
		ResponsesPath: *responsesPath,
		StoplistPath:  *stoplistPath,
		LexiconPath:   *lexiconPath,
		MatchMode:     *matchMode,
		Seed:          *seed,
	}
	session, cleanup, err := buildSession(ctx, loader, *historyPath, log)
	if err != nil {
		log.Fatal("failed to start chatbot", "error", err)
	}
	defer cleanup()

	if *replay {
		if session.Transcript == nil {
			log.Fatal("--replay requires --history")
		}
		if err := replayLast(ctx, session.Transcript); err != nil {
			log.Fatal("replay failed", "error", err)
		}
		return
	}

	res, err := session.Run(ctx)
	if err != nil && ctx.Err() == nil {
		log.Error("session ended with error", "error", err)
	}
	log.Debug("session finished", "session", res.SessionID, "turns", res.Turns, "farewell", res.Farewell)
}

func buildSession(ctx context.Context, loader config.Loader, historyPath string, log *logger.Logger) (*chat.Session, func(), error) {
	components, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	for _, o := range components.Overlaps {
		log.Warn("trigger shared between categories", "overlap", o.String())
	}

	session := &chat.Session{
		In:           os.Stdin,
		Out:          os.Stdout,
		Preprocessor: components.Preprocessor,
		Matcher:      components.Matcher,
		Logger:       log,
	}
	cleanup := func() {}

	if historyPath != "" {
		st, err := sqlite.OpenSQLite(ctx, historyPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open history: %w", err)
		}
		session.Transcript = st
		cleanup = func() { st.Close() }
	}

	return session, cleanup, nil
}

func replayLast(ctx context.Context, st store.Store) error {
	id, ok, err := st.LastSession(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("No recorded sessions.")
		return nil
	}
	return chat.Replay(ctx, os.Stdout, st, id)
}
