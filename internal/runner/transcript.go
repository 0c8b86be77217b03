package runner

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/muesli/reflow/wordwrap"

	"github.com/tatianab/escape-room/internal/engine"
	"github.com/tatianab/escape-room/internal/i18n"
)

// Width is the column messages are wrapped at.
const Width = 80

var (
	styleMessage = color.Style{color.FgWhite, color.OpBold}
	styleSubtle  = color.Style{color.FgGray}
	styleItem    = color.Style{color.FgGreen, color.OpBold}
	styleDenied  = color.Style{color.FgRed, color.OpBold}
	styleWon     = color.Style{color.FgYellow, color.OpBold}
)

// Transcript prints the headless game to a writer.
type Transcript struct {
	w       io.Writer
	catalog *i18n.Catalog
}

func NewTranscript(w io.Writer, catalog *i18n.Catalog) *Transcript {
	return &Transcript{w: w, catalog: catalog}
}

func (t *Transcript) Message(msg string) {
	if msg == "" {
		return
	}
	fmt.Fprintln(t.w, styleMessage.Sprint(wordwrap.String(msg, Width)))
}

func (t *Transcript) Outcome(out engine.Outcome) {
	if out.Message == "" {
		return
	}
	switch out.Result {
	case engine.ResultRejected:
		fmt.Fprintln(t.w, styleDenied.Sprint(out.Message))
	case engine.ResultWon:
		fmt.Fprintln(t.w, styleWon.Sprint(out.Message))
	default:
		t.Message(out.Message)
	}
}

func (t *Transcript) Info(format string, args ...any) {
	fmt.Fprintln(t.w, styleSubtle.Sprintf(format, args...))
}

func (t *Transcript) Error(err error) {
	fmt.Fprintln(t.w, styleDenied.Sprintf("! %v", err))
}

// Inventory prints the full label list; it is re-read on every change.
func (t *Transcript) Inventory(items []string) {
	if len(items) == 0 {
		t.Info("%s: %s", t.catalog.Get(i18n.MsgInventory), t.catalog.Get(i18n.MsgInventoryEmpty))
		return
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = styleItem.Sprint(item)
	}
	fmt.Fprintf(t.w, "%s: %s\n", t.catalog.Get(i18n.MsgInventory), strings.Join(labels, ", "))
}
