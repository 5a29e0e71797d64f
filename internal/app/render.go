package app

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/qrepl/internal/completion"
	"github.com/kobzarvs/qrepl/internal/config"
)

type styleSet struct {
	main     tcell.Style
	prompt   tcell.Style
	header   tcell.Style
	prefix   tcell.Style
	selected tcell.Style
	popup    tcell.Style
}

func newStyleSet(theme config.Theme) styleSet {
	mainFg := parseColor(theme.Foreground, tcell.ColorWhite)
	mainBg := parseColor(theme.Background, tcell.ColorBlack)
	popupBg := parseColor(theme.AutocompleteBackground, mainBg)
	main := tcell.StyleDefault.Foreground(mainFg).Background(mainBg)
	return styleSet{
		main:   main,
		prompt: tcell.StyleDefault.Foreground(parseColor(theme.PromptForeground, mainFg)).Background(mainBg),
		header: tcell.StyleDefault.Foreground(parseColor(theme.AutocompleteHeader, mainFg)).Background(popupBg).Underline(true),
		prefix: tcell.StyleDefault.Foreground(parseColor(theme.AutocompletePrefix, mainFg)).Background(popupBg),
		selected: tcell.StyleDefault.
			Foreground(parseColor(theme.AutocompleteSelectedForeground, mainBg)).
			Background(parseColor(theme.AutocompleteSelectedBackground, mainFg)),
		popup: tcell.StyleDefault.Foreground(mainFg).Background(popupBg),
	}
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
	}
	return tcell.GetColor(name)
}

// render composites scrollback, the wrapped expression with its prompts and
// the completion popup onto the screen.
func (a *App) render() {
	s := a.screen
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	s.SetStyle(a.styles.main)
	s.Clear()

	maxPopup := a.cfg.Completion.MaxHeight
	if maxPopup > h/2 {
		maxPopup = h / 2
	}
	popup := a.eng.Render(maxPopup, a.cfg.Completion.MinHeight)

	exprHeight := a.buf.ExpressionHeight()
	editTop := h - len(popup) - exprHeight
	if editTop < 0 {
		editTop = 0
	}

	// Scrollback tail above the editing area.
	back := a.scrollback
	if len(back) > editTop {
		back = back[len(back)-editTop:]
	}
	for i, line := range back {
		drawText(s, 0, editTop-len(back)+i, a.styles.main, line)
	}

	// The expression, one wrapped chunk per screen row.
	row := editTop
	for y := 0; y < a.buf.LineCount(); y++ {
		prompt := a.cfg.Repl.PromptContinuation
		if y == 0 {
			prompt = a.cfg.Repl.Prompt
		}
		for i, chunk := range a.buf.WrapLine(y) {
			x := 0
			if i == 0 {
				drawText(s, 0, row, a.styles.prompt, prompt)
				x = runewidth.StringWidth(prompt)
			}
			drawText(s, x, row, a.styles.main, chunk)
			row++
		}
	}

	for i, prow := range popup {
		a.drawPopupRow(editTop+exprHeight+i, w, prow)
	}

	crow, ccol := a.buf.ScreenCursor()
	s.ShowCursor(ccol, editTop+crow)
	s.Show()
}

func (a *App) drawPopupRow(y, w int, row completion.Row) {
	noColor := a.cfg.Completion.NoColor
	x := 0
	for _, cell := range row {
		switch {
		case cell.Kind == completion.CellHeader:
			style := a.styles.header
			if noColor {
				style = a.styles.main
			}
			drawText(a.screen, x, y, style, cell.Text)
			x += runewidth.StringWidth(cell.Text)
		case cell.Kind == completion.CellSelected && noColor:
			// Colorless fallback: mark the selection instead of styling it.
			runes := []rune(cell.Text)
			drawText(a.screen, x, y, a.styles.main, ">"+string(runes[:len(runes)-1]))
			x += runewidth.StringWidth(cell.Text)
		case cell.Kind == completion.CellSelected:
			drawText(a.screen, x, y, a.styles.selected, cell.Text)
			x += runewidth.StringWidth(cell.Text)
		default:
			style := a.styles.popup
			if noColor {
				style = a.styles.main
			}
			runes := []rune(cell.Text)
			if cell.PrefixLen > 0 && cell.PrefixLen <= len(runes) && !noColor {
				prefix := string(runes[:cell.PrefixLen])
				drawText(a.screen, x, y, a.styles.prefix, prefix)
				drawText(a.screen, x+runewidth.StringWidth(prefix), y, style, string(runes[cell.PrefixLen:]))
			} else {
				drawText(a.screen, x, y, style, cell.Text)
			}
			x += runewidth.StringWidth(cell.Text)
		}
		if x >= w {
			return
		}
	}
	// Fill the remainder so the popup band reads as one block.
	if len(row) > 0 && !noColor {
		drawText(a.screen, x, y, a.styles.popup, strings.Repeat(" ", w-x))
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		w := runewidth.RuneWidth(r)
		if w < 1 {
			w = 1
		}
		x += w
	}
}
