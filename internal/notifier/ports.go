// Package notifier drives the escalating notification behavior: a
// pre-session nagging loop while a due goal waits to be started, and a
// post-duration "stop now" loop while a session overruns. Desktop
// capabilities are consumed through the Ports interface; the package
// never touches the OS directly.
package notifier

// TrayIcon names the tray states the desktop shell can render.
type TrayIcon string

const (
	TrayDueNow   TrayIcon = "due-now"
	TrayDueLater TrayIcon = "due-later"
	TrayWasDue   TrayIcon = "was-due"
	TrayTimeUp   TrayIcon = "time-up"
	TrayOngoing  TrayIcon = "ongoing"
	TrayBlank    TrayIcon = "blank"
)

type SoundKind string

const (
	SoundPrompt SoundKind = "prompt"
	SoundReward SoundKind = "reward"
)

type SoundVariant string

const (
	SoundShort SoundVariant = "short"
	SoundLong  SoundVariant = "long"
)

// Ports are the abstract desktop capabilities the coordinator drives.
// All calls are fire-and-forget; no delivery guarantee is assumed and
// a failed call is simply not retried before the next cadence step.
type Ports interface {
	Notify(title, body string)
	SetTrayIcon(icon TrayIcon)
	RequestAttention(on bool)
	PlaySound(kind SoundKind, variant SoundVariant, volume float64)
}
