package cli

import (
	"fmt"
	"io"

	"github.com/catchsup/catchsup/internal/cli/formatter"
	"github.com/catchsup/catchsup/internal/notifier"
)

// consolePorts renders notifier side effects onto a terminal. It
// stands in for the desktop shell when catchsup runs headless.
type consolePorts struct {
	out  io.Writer
	mute bool
}

func newConsolePorts(out io.Writer, mute bool) *consolePorts {
	return &consolePorts{out: out, mute: mute}
}

func (p *consolePorts) Notify(title, body string) {
	fmt.Fprintf(p.out, "%s %s\n", formatter.Bold(title), body)
}

func (p *consolePorts) SetTrayIcon(icon notifier.TrayIcon) {
	fmt.Fprintf(p.out, "%s\n", formatter.Dim(fmt.Sprintf("[tray: %s]", icon)))
}

func (p *consolePorts) RequestAttention(on bool) {
	if on {
		// BEL is the closest a terminal gets to bouncing a dock icon.
		fmt.Fprint(p.out, "\a")
	}
}

func (p *consolePorts) PlaySound(kind notifier.SoundKind, variant notifier.SoundVariant, volume float64) {
	if p.mute || volume <= 0 {
		return
	}
	fmt.Fprint(p.out, "\a")
}
