// Package cli runs the wizard as an interactive terminal session.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/valueprop"
	"github.com/aretw0/valueprop/internal/logging"
	"github.com/aretw0/valueprop/internal/presentation/tui"
	"github.com/aretw0/valueprop/pkg/compose"
	"github.com/aretw0/valueprop/pkg/domain"
	"github.com/aretw0/valueprop/pkg/wizard"
)

// Commands accepted at any prompt.
const (
	cmdBack  = ":back"
	cmdNext  = ":next"
	cmdQuit  = ":quit"
	cmdReset = ":reset"
	cmdHelp  = ":help"
	cmdRegen = ":regen"
	cmdRm    = ":rm"
)

const progressWidth = 30

type action int

const (
	actContinue action = iota
	actNext
	actBack
	actReset
	actQuit
)

// Session drives a Wizard from line-oriented input.
type Session struct {
	wizard   *valueprop.Wizard
	scanner  *bufio.Scanner
	out      io.Writer
	renderer tui.Renderer
	banner   bool
	logger   *slog.Logger
}

// Option configures the Session.
type Option func(*Session)

// WithRenderer renders step headers and the final summary as markdown.
func WithRenderer(r tui.Renderer) Option {
	return func(s *Session) {
		s.renderer = r
	}
}

// WithBanner prints the banner when the session starts.
func WithBanner(enabled bool) Option {
	return func(s *Session) {
		s.banner = enabled
	}
}

// WithLogger configures a logger for the Session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a terminal session reading answers from in.
func NewSession(w *valueprop.Wizard, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		wizard:  w,
		scanner: bufio.NewScanner(in),
		out:     out,
		logger:  logging.NewNop(),
	}
	s.scanner.Buffer(make([]byte, 0, 64*1024), wizard.DefaultMaxInputSize*4)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run walks the steps until the wizard is completed, the user quits or input ends.
// Answers are persisted as they are entered, so quitting never loses work.
func (s *Session) Run(ctx context.Context) error {
	if s.banner {
		tui.PrintBanner(s.out)
	}
	s.printf("Commands: %s %s %s %s %s\n", cmdBack, cmdNext, cmdReset, cmdQuit, cmdHelp)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		view := s.wizard.Sequencer.Current()
		s.showStep(view)

		act, err := s.runStep(ctx, view)
		if errors.Is(err, io.EOF) {
			s.printf("\nProgress saved. Run again to continue.\n")
			return nil
		}
		if err != nil {
			return err
		}

		switch act {
		case actNext:
			if view.Last {
				if s.wizard.Sequencer.Finish(ctx) {
					s.showCompletion()
					return nil
				}
			}
			s.wizard.Sequencer.Next(ctx)
		case actBack:
			s.wizard.Sequencer.Back(ctx)
		case actReset:
			s.wizard.Store.Reset(ctx)
			s.printf("Started over.\n")
		case actQuit:
			s.printf("Progress saved. Run again to continue.\n")
			return nil
		}
	}
}

func (s *Session) runStep(ctx context.Context, view wizard.View) (action, error) {
	if len(view.Step.ReadOnly) > 0 {
		s.showReview(view.State.Data, view.Step.ReadOnly)
	}

	for _, f := range view.Step.Fields {
		var (
			act action
			err error
		)
		if f.IsList() {
			act, err = s.askList(ctx, f)
		} else {
			act, err = s.askText(ctx, f)
		}
		if err != nil || act != actContinue {
			return act, err
		}
	}
	return actNext, nil
}

func (s *Session) askText(ctx context.Context, f domain.Field) (action, error) {
	p := wizard.FieldPrompt(f)
	for {
		current, _ := s.wizard.Store.Data().Text(f)
		s.printf("\n%s\n  %s\n", p.Label, p.Hint)
		if current != "" {
			s.printf("  [current: %s] (enter to keep)\n", current)
		}

		line, err := s.readLine(ctx)
		if err != nil {
			return actContinue, err
		}

		if act, handled := s.command(ctx, line, f); handled {
			if act == actContinue {
				continue
			}
			return act, nil
		}
		if line == "" {
			return actContinue, nil
		}

		clean, err := wizard.SanitizeInput(line)
		if err != nil {
			s.printf("Error: %v. Please try again.\n", err)
			continue
		}
		patch, err := domain.SetText(f, clean)
		if err != nil {
			return actContinue, err
		}
		s.wizard.Store.UpdateData(ctx, patch)
		return actContinue, nil
	}
}

func (s *Session) askList(ctx context.Context, f domain.Field) (action, error) {
	p := wizard.FieldPrompt(f)
	s.printf("\n%s (one per line, empty line when done, %s N removes entry N)\n  %s\n", p.Label, cmdRm, p.Hint)

	for {
		items, _ := s.wizard.Store.Data().List(f)
		for i, item := range items {
			s.printf("  %d. %s\n", i+1, item)
		}

		line, err := s.readLine(ctx)
		if err != nil {
			return actContinue, err
		}
		if line == "" {
			return actContinue, nil
		}

		if rest, ok := strings.CutPrefix(line, cmdRm); ok {
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err == nil {
				err = s.wizard.Store.RemoveItem(ctx, f, n-1)
			}
			if err != nil {
				s.printf("Error: cannot remove %q: %v\n", strings.TrimSpace(rest), err)
			}
			continue
		}
		if act, handled := s.command(ctx, line, f); handled {
			if act == actContinue {
				continue
			}
			return act, nil
		}

		entry, err := wizard.SanitizeEntry(line)
		if errors.Is(err, domain.ErrEmptyEntry) {
			continue
		}
		if err != nil {
			s.printf("Error: %v. Please try again.\n", err)
			continue
		}
		if _, err := s.wizard.Store.AddItem(ctx, f, entry); err != nil {
			return actContinue, err
		}
	}
}

// command interprets navigation commands. handled is false for plain answers.
func (s *Session) command(ctx context.Context, line string, f domain.Field) (act action, handled bool) {
	switch line {
	case cmdBack:
		return actBack, true
	case cmdNext:
		return actNext, true
	case cmdQuit:
		return actQuit, true
	case cmdReset:
		return actReset, true
	case cmdHelp:
		s.printf("%s previous step, %s next step, %s start over, %s save and exit, %s N remove list entry N, %s recompose the proposition\n",
			cmdBack, cmdNext, cmdReset, cmdQuit, cmdRm, cmdRegen)
		return actContinue, true
	case cmdRegen:
		if f != domain.FieldValueProposition {
			s.printf("%s is only available on the proposition field.\n", cmdRegen)
			return actContinue, true
		}
		if _, ok := compose.Proposition(s.wizard.Store.Data()); !ok {
			s.printf("Error: %v. Fill in the first step.\n", domain.ErrIncomplete)
			return actContinue, true
		}
		s.wizard.Store.RegenerateProposition(ctx)
		return actContinue, true
	}
	return actContinue, false
}

func (s *Session) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.printf("> ")
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.scanner.Text()), nil
}

func (s *Session) showStep(v wizard.View) {
	md := fmt.Sprintf("# Step %d of %d: %s\n\n%s\n", v.Step.Number, domain.LastStep, v.Step.Title, v.Step.Description)
	s.markdown(md)
	s.printf("%s\n", tui.ProgressBar(v.Progress, progressWidth))
}

func (s *Session) showReview(data domain.AnswerData, fields []domain.Field) {
	var b strings.Builder
	b.WriteString("## Review\n\n")
	for _, f := range fields {
		label := wizard.FieldPrompt(f).Label
		if items, ok := data.List(f); ok {
			if len(items) == 0 {
				continue
			}
			fmt.Fprintf(&b, "**%s**\n\n", label)
			for _, it := range items {
				fmt.Fprintf(&b, "- %s\n", it)
			}
			b.WriteString("\n")
			continue
		}
		if text, _ := data.Text(f); text != "" {
			fmt.Fprintf(&b, "**%s**: %s\n\n", label, text)
		}
	}
	s.markdown(b.String())
}

func (s *Session) showCompletion() {
	s.markdown("## Congratulations!\n\nYou've successfully created a compelling value proposition. " +
		"Use it to enhance your professional profiles, proposals, and networking conversations.\n")
	s.printf("%s\n", compose.Summary(s.wizard.Store.Data()))
}

func (s *Session) markdown(md string) {
	out := md
	if s.renderer != nil {
		rendered, err := s.renderer(md)
		if err != nil {
			s.logger.Debug("Markdown render failed", "error", err)
		} else {
			out = rendered
		}
	}
	s.printf("%s\n", strings.TrimSpace(out))
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
