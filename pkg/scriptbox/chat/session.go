package chat

import (
	"bufio"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/oklog/ulid/v2"

	"github.com/cognicore/scriptbox/internal/logger"
	"github.com/cognicore/scriptbox/pkg/scriptbox/ingest"
	"github.com/cognicore/scriptbox/pkg/scriptbox/intent"
	"github.com/cognicore/scriptbox/pkg/scriptbox/store"
)

const (
	botLabel  = "Chatbot:"
	userLabel = "You:"
)

// Session runs one interactive conversation over a reader and writer.
type Session struct {
	In           io.Reader
	Out          io.Writer
	Preprocessor *ingest.Preprocessor
	Matcher      *intent.Matcher

	// Transcript is optional; when set every turn is appended to it.
	Transcript store.Store
	Logger     *logger.Logger
	Now        func() time.Time

	id      string
	entropy *ulid.MonotonicEntropy
	seq     int
}

// Result summarizes a finished session.
type Result struct {
	SessionID string
	Turns     int
	// Farewell is true when the user said goodbye, false on EOF or cancellation.
	Farewell bool
}

var (
	botColor  = color.New(color.FgCyan, color.Bold)
	userColor = color.New(color.FgGreen)
)

// Run prints the banner and loops until a farewell, end of input or ctx is
// done. Blank lines re-prompt without a reply. Lines have no length limit.
//
// If In is an io.Closer it is closed when Run returns so the reader
// goroutine can exit; otherwise that goroutine stays blocked until In
// yields data or EOF.
func (s *Session) Run(ctx context.Context) (Result, error) {
	if s.Preprocessor == nil || s.Matcher == nil {
		return Result{}, fmt.Errorf("chat: preprocessor and matcher required")
	}
	s.init()
	log := s.log().With("session", s.id)
	res := Result{SessionID: s.id}

	s.say("Hello! I'm a simple AI chatbot. How can I help you today?")
	s.say("(Type 'bye' or 'quit' to exit)")

	if c, ok := s.In.(io.Closer); ok {
		defer c.Close()
	}
	readCtx, stop := context.WithCancel(ctx)
	defer stop()
	lines := make(chan string)
	readErr := make(chan error, 1)
	go s.readLines(readCtx, lines, readErr)

	for {
		userColor.Fprint(s.Out, userLabel+" ")

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.Out)
			log.Info("session cancelled", "turns", res.Turns)
			return res, ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(s.Out)
			select {
			case err := <-readErr:
				if err != nil {
					return res, fmt.Errorf("read input: %w", err)
				}
			default:
			}
			log.Info("input closed", "turns", res.Turns)
			return res, nil
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		reply := s.Reply(ctx, input)
		s.say(reply.Text)
		res.Turns++

		if s.Matcher.IsFarewell(input) {
			res.Farewell = true
			log.Info("session ended by farewell", "turns", res.Turns)
			return res, nil
		}
	}
}

// readLines sends each input line, without its terminator, until EOF, a
// read error or ctx is done.
func (s *Session) readLines(ctx context.Context, lines chan<- string, readErr chan<- error) {
	defer close(lines)
	r := bufio.NewReader(s.In)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			select {
			case lines <- strings.TrimRight(line, "\r\n"):
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				readErr <- err
			}
			return
		}
	}
}

// Reply normalizes input, resolves it and records the turn. Recording
// failures are logged, never returned.
func (s *Session) Reply(ctx context.Context, input string) intent.Response {
	s.init()
	tokens := s.Preprocessor.Normalize(input)
	resp := s.Matcher.Resolve(tokens)
	s.seq++
	s.log().Debug("resolved", "tokens", tokens, "category", resp.Category.String(), "topic", resp.TopicID)

	if s.Transcript != nil {
		turn := store.Turn{
			ID:        s.newID(),
			SessionID: s.id,
			Seq:       s.seq,
			User:      input,
			Tokens:    tokens,
			Category:  resp.Category.String(),
			TopicID:   resp.TopicID,
			Reply:     resp.Text,
			At:        s.Now(),
		}
		if err := s.Transcript.AppendTurn(ctx, turn); err != nil {
			s.log().Warn("failed to record turn", "session", s.id, "seq", s.seq, "error", err)
		}
	}
	return resp
}

// ID returns the session id, assigning one if needed.
func (s *Session) ID() string {
	s.init()
	return s.id
}

func (s *Session) init() {
	if s.entropy == nil {
		s.entropy = ulid.Monotonic(rand.Reader, 0)
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	if s.Out == nil {
		s.Out = io.Discard
	}
	if s.id == "" {
		s.id = s.newID()
	}
}

func (s *Session) newID() string {
	return ulid.MustNew(ulid.Timestamp(s.Now()), s.entropy).String()
}

func (s *Session) say(text string) {
	botColor.Fprint(s.Out, botLabel)
	fmt.Fprintln(s.Out, " "+text)
}

func (s *Session) log() *logger.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logger.Nop()
}

// Replay writes a stored session as a transcript.
func Replay(ctx context.Context, w io.Writer, st store.Store, sessionID string) error {
	turns, err := st.Turns(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load session %s: %w", sessionID, err)
	}
	fmt.Fprintf(w, "Session %s (%d turns)\n", sessionID, len(turns))
	for _, t := range turns {
		fmt.Fprintf(w, "[%s] %s %s\n", t.At.Local().Format("15:04:05"), userLabel, t.User)
		label := t.Category
		if t.TopicID != "" {
			label += ":" + t.TopicID
		}
		fmt.Fprintf(w, "[%s] %s %s (%s)\n", t.At.Local().Format("15:04:05"), botLabel, t.Reply, label)
	}
	return nil
}
