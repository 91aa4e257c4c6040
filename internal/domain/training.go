package domain

// ActiveTraining is the ephemeral record of an in-progress session.
// It exists only while a session runs and is cleared on finish/cancel.
type ActiveTraining struct {
	GoalID    int64         `json:"goalId"`
	StartTime UnixTimestamp `json:"startTime"`
	// TimeUp is stamped once the session's nominal duration has
	// elapsed; zero until then.
	TimeUp UnixTimestamp `json:"timeUp,omitempty"`
	// CooldownSec delays "stop now" nagging after TimeUp.
	CooldownSec         int  `json:"cooldownSec,omitempty"`
	SilenceNotification bool `json:"silenceNotification,omitempty"`
}

// TrainingLog is an append-only record of one completed session.
// Only Notes is ever edited after creation.
type TrainingLog struct {
	ID         string        `json:"id"`
	GoalID     int64         `json:"goalId"`
	StartTime  UnixTimestamp `json:"startTime"`
	ElapsedMin float64       `json:"elapsed"`
	Notes      string        `json:"notes,omitempty"`
}
