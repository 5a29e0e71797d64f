// Package completion drives the auto-completion popup of the repl: candidate
// filtering, common-root computation, selection cycling and the column-grid
// layout sized to the terminal.
package completion

import (
	"strings"

	"github.com/kobzarvs/qrepl/internal/logger"
)

// CompleteFunc produces completion candidates for a filter prefix and the
// expression text preceding it, plus a scope label describing the source
// (e.g. a type name). It is called synchronously; any error is surfaced to
// the caller of Query unchanged.
type CompleteFunc func(filter, expr string) (candidates []string, scope string, err error)

// WidthFunc reports the current terminal width, queried fresh on every
// layout computation.
type WidthFunc func() int

type Visibility int

const (
	Closed Visibility = iota // nothing rendered
	Open                     // grid rendered
	Cleared                  // blank filler rows, reserving vertical space
)

// Engine holds the candidate set of the last completion query and the state
// of the popup built from it.
type Engine struct {
	complete CompleteFunc
	width    WidthFunc

	scope      string
	allEntries []string
	entries    []string // allEntries filtered by the current prefix
	filter     string
	selection  int // index into entries, -1 when nothing is highlighted
	visibility Visibility
}

func NewEngine(complete CompleteFunc, width WidthFunc) *Engine {
	return &Engine{
		complete:  complete,
		width:     width,
		selection: -1,
	}
}

// Query invokes the completion callback, replaces the candidate set and
// returns the common root of the filtered entries. On a callback error the
// prior state is left untouched. ok is false when no entry matched.
func (e *Engine) Query(filter, expr string) (root string, ok bool, err error) {
	candidates, scope, err := e.complete(filter, expr)
	if err != nil {
		return "", false, err
	}
	logger.Debug("completion query", "filter", filter, "candidates", len(candidates), "scope", scope)
	e.allEntries = candidates
	e.scope = scope
	e.SetFilter(filter)
	if len(e.entries) == 0 {
		return "", false, nil
	}
	return commonRoot(e.entries), true, nil
}

// SetFilter narrows the candidate set to entries with the given prefix and
// drops the selection.
func (e *Engine) SetFilter(filter string) {
	e.selection = -1
	e.filter = filter
	e.entries = e.entries[:0:0]
	for _, c := range e.allEntries {
		if strings.HasPrefix(c, filter) {
			e.entries = append(e.entries, c)
		}
	}
}

// SelectNext advances the selection cyclically and returns the selected
// entry. ok is false when there are no entries.
func (e *Engine) SelectNext() (string, bool) {
	if len(e.entries) == 0 {
		return "", false
	}
	e.selection = (e.selection + 1) % len(e.entries)
	return e.entries[e.selection], true
}

// SelectPrevious retreats the selection cyclically, wrapping to the last
// entry when nothing was selected.
func (e *Engine) SelectPrevious() (string, bool) {
	if len(e.entries) == 0 {
		return "", false
	}
	if e.selection <= 0 {
		e.selection = len(e.entries) - 1
	} else {
		e.selection--
	}
	return e.entries[e.selection], true
}

// Selected returns the highlighted entry, if any.
func (e *Engine) Selected() (string, bool) {
	if e.selection < 0 || e.selection >= len(e.entries) {
		return "", false
	}
	return e.entries[e.selection], true
}

// Open makes the popup visible. It does not repopulate entries.
func (e *Engine) Open() {
	e.visibility = Open
}

// Close drops the candidate set and hides the popup.
func (e *Engine) Close() {
	e.selection = -1
	e.entries = nil
	e.allEntries = nil
	e.visibility = Closed
}

// Clear closes the popup but keeps rendering blank filler rows, so the
// vertical space stays reserved.
func (e *Engine) Clear() {
	e.Close()
	e.visibility = Cleared
}

func (e *Engine) State() Visibility { return e.visibility }

func (e *Engine) Scope() string { return e.scope }

func (e *Engine) Filter() string { return e.filter }

func (e *Engine) Entries() []string { return e.entries }

// commonRoot returns the longest string that is a prefix of every entry.
func commonRoot(entries []string) string {
	if len(entries) == 0 {
		return ""
	}
	first := []rune(entries[0])
	runes := make([][]rune, len(entries))
	for i, e := range entries {
		runes[i] = []rune(e)
	}
	for i := 0; i < len(first); i++ {
		for _, r := range runes[1:] {
			if i >= len(r) || r[i] != first[i] {
				return string(first[:i])
			}
		}
	}
	return entries[0]
}
