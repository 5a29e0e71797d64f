// Package app wires the editing buffer and the completion engine to a tcell
// screen: the raw input loop, key dispatch and compositing that the core
// packages deliberately leave outside.
package app

import (
	"runtime"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/qrepl/internal/completion"
	"github.com/kobzarvs/qrepl/internal/config"
	"github.com/kobzarvs/qrepl/internal/editor"
	"github.com/kobzarvs/qrepl/internal/logger"
)

// App is the top-level runtime for qrepl.
type App struct {
	args []string

	cfg    config.Config
	screen tcell.Screen
	buf    *editor.Buffer
	eng    *completion.Engine
	styles styleSet

	// Submitted expressions and their echoed results, newest last. The tail
	// that fits above the editing area is drawn; everything older scrolls
	// out of view.
	scrollback []string
}

func New(args []string) *App {
	return &App{args: args}
}

func (a *App) Run() error {
	runtime.LockOSThread()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.styles = newStyleSet(cfg.Theme)

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	a.screen = s

	width := func() int {
		w, _ := s.Size()
		return w
	}
	a.buf = editor.New(width,
		runewidth.StringWidth(cfg.Repl.Prompt),
		runewidth.StringWidth(cfg.Repl.PromptContinuation))
	a.eng = completion.NewEngine(completeSymbol, width)

	logger.Info("repl started", "prompt", cfg.Repl.Prompt)
	for {
		a.render()
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if a.handleKey(ev) {
				return nil
			}
		case *tcell.EventResize:
			s.Sync()
		}
	}
}

// handleKey dispatches one key event; the result reports whether to quit.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyCtrlD:
		if a.buf.Empty() {
			return true
		}
		a.buf.DeleteForward()
	case tcell.KeyRune:
		a.buf.Insert(string(ev.Rune()))
		a.refreshFilter()
	case tcell.KeyEnter:
		a.handleEnter()
	case tcell.KeyTab:
		a.handleTab()
	case tcell.KeyBacktab:
		if entry, ok := a.eng.SelectPrevious(); ok {
			a.replaceWord(entry)
		}
	case tcell.KeyEscape:
		a.eng.Close()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.buf.DeleteBackward()
		a.refreshFilter()
	case tcell.KeyDelete:
		a.buf.DeleteForward()
		a.refreshFilter()
	case tcell.KeyLeft:
		a.eng.Close()
		a.buf.MoveLeft()
	case tcell.KeyRight:
		a.eng.Close()
		a.buf.MoveRight()
	case tcell.KeyUp:
		if a.eng.State() == completion.Open {
			if entry, ok := a.eng.SelectPrevious(); ok {
				a.replaceWord(entry)
			}
			return false
		}
		a.buf.MoveUp()
	case tcell.KeyDown:
		if a.eng.State() == completion.Open {
			if entry, ok := a.eng.SelectNext(); ok {
				a.replaceWord(entry)
			}
			return false
		}
		a.buf.MoveDown()
	case tcell.KeyHome:
		a.buf.MoveTo(0, a.buf.Cursor().Y, false)
	case tcell.KeyEnd:
		a.buf.MoveToEndOfLine(a.buf.Cursor().Y)
	case tcell.KeyCtrlA:
		a.buf.MoveToBegin()
	case tcell.KeyCtrlE:
		a.buf.MoveToEnd()
	case tcell.KeyCtrlU:
		a.buf.Clear()
		a.eng.Close()
	case tcell.KeyCtrlL:
		a.scrollback = nil
	}
	return false
}

// handleEnter accepts an open completion, submits a finished expression from
// the last line, or continues the expression with an auto-indented line.
func (a *App) handleEnter() {
	if a.eng.State() == completion.Open {
		if entry, ok := a.eng.Selected(); ok {
			a.replaceWord(entry)
			a.eng.Close()
			return
		}
		a.eng.Close()
	}
	if a.buf.CursorOnLastLine() && unclosedDepth(a.buf.Text()) == 0 {
		a.submit()
		return
	}
	indent := unclosedDepth(a.buf.ExpressionBeforeCursor()) * a.cfg.Repl.IndentWidth
	a.buf.InsertNewLine(indent)
}

// handleTab queries completion on the word under the cursor, inserting the
// common root; repeated presses cycle through the candidates.
func (a *App) handleTab() {
	if a.eng.State() == completion.Open {
		if entry, ok := a.eng.SelectNext(); ok {
			a.replaceWord(entry)
		}
		return
	}
	word, _ := a.buf.WordUnderCursor()
	root, ok, err := a.eng.Query(word, a.buf.ExpressionBeforeCursor())
	if err != nil {
		logger.Error("completion failed", "filter", word, "err", err)
		return
	}
	if !ok {
		a.eng.Close()
		return
	}
	a.replaceWord(root)
	if len(a.eng.Entries()) > 1 {
		a.eng.SetFilter(root)
		a.eng.Open()
	} else {
		a.eng.Close()
	}
}

// refreshFilter re-narrows an open popup after the word under the cursor
// changed.
func (a *App) refreshFilter() {
	if a.eng.State() != completion.Open {
		return
	}
	word, _ := a.buf.WordUnderCursor()
	a.eng.SetFilter(word)
}

// replaceWord swaps the word under the cursor for entry and puts the cursor
// after it.
func (a *App) replaceWord(entry string) {
	_, start := a.buf.WordUnderCursor()
	line := []rune(a.buf.CurrentLine())
	cur := a.buf.Cursor()
	next := string(line[:start]) + entry + string(line[cur.X:])
	a.buf.SetCurrentLine(next)
	a.buf.MoveTo(start+len([]rune(entry)), cur.Y, false)
}

// submit appends the finished expression to the scrollback and resets the
// editor. Evaluation itself is not this program's job; the expression is
// echoed back.
func (a *App) submit() {
	text := a.buf.Text()
	lines := a.buf.Lines()
	for i, line := range lines {
		prompt := a.cfg.Repl.PromptContinuation
		if i == 0 {
			prompt = a.cfg.Repl.Prompt
		}
		a.scrollback = append(a.scrollback, prompt+line)
	}
	if strings.TrimSpace(text) != "" {
		a.scrollback = append(a.scrollback, "=> "+strings.TrimSpace(text))
	}
	logger.Debug("expression submitted", "lines", len(lines))
	a.buf.Clear()
	a.eng.Close()
}

// unclosedDepth counts bracket nesting still open at the end of text. It is
// what decides between submitting and continuing on Enter, and how far the
// next line indents.
func unclosedDepth(text string) int {
	depth := 0
	for _, r := range text {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		}
	}
	return depth
}
