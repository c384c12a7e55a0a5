package tui

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
)

// fakeContext carries values for the middleware; everything else panics.
type fakeContext struct {
	ssh.Context
	values map[any]any
}

func (c *fakeContext) SetValue(key, value any) { c.values[key] = value }
func (c *fakeContext) Value(key any) any       { return c.values[key] }

type fakeSession struct {
	ssh.Session
	ctx *fakeContext
}

func (s *fakeSession) Context() ssh.Context { return s.ctx }
func (s *fakeSession) User() string         { return "guest" }

func TestFinishMiddlewareRecordsDisconnect(t *testing.T) {
	opts := testOptions(t)
	srv := &SSHServer{opts: opts, logger: opts.Logger}
	sess := &fakeSession{ctx: &fakeContext{values: map[any]any{}}}

	g := &scriptedGame{winAfter: 100}
	handler := srv.finishMiddleware(func(sess ssh.Session) {
		tr, ok := sess.Context().Value(trackerKey{}).(*tracker)
		if !ok {
			t.Error("middleware should put a tracker in the session context")
			return
		}
		o := opts
		o.tracker = tr

		// the client drops the connection two moves into the game
		ctx, cancel := context.WithCancel(context.Background())
		p := tea.NewProgram(NewModel(g, testConfig(), o),
			tea.WithContext(ctx),
			tea.WithInput(nil),
			tea.WithOutput(io.Discard),
			tea.WithoutSignalHandler(),
		)
		done := make(chan error, 1)
		go func() {
			_, err := p.Run()
			done <- err
		}()

		// the unbound key is only taken once both moves were handled
		p.Send(runeKey("a"))
		p.Send(runeKey("d"))
		p.Send(runeKey("x"))
		cancel()

		select {
		case err := <-done:
			if !errors.Is(err, tea.ErrProgramKilled) {
				t.Errorf("Run() error = %v, want program killed", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("program did not stop after cancel")
		}

		results, _ := opts.Store.RecentResults("scripted", 10)
		if len(results) != 0 {
			t.Errorf("nothing should be stored before the middleware returns, got %+v", results)
		}
	})

	handler(sess)

	results, err := opts.Store.RecentResults("scripted", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Outcome != "aborted" || results[0].Moves != 2 {
		t.Fatalf("unexpected results: %+v", results)
	}
}
