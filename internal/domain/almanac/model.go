package almanac

import (
	"context"

	"github.com/yanqian/ai-almanac/pkg/metrics"
)

// Locale selects the output language.
type Locale string

const (
	LocaleCN Locale = "cn"
	LocaleEN Locale = "en"
)

// TimeSlot is the coarse period of day the user was born in.
type TimeSlot string

const (
	SlotDawn      TimeSlot = "dawn"
	SlotMorning   TimeSlot = "morning"
	SlotNoon      TimeSlot = "noon"
	SlotAfternoon TimeSlot = "afternoon"
	SlotDusk      TimeSlot = "dusk"
	SlotNight     TimeSlot = "night"
	SlotUnknown   TimeSlot = "unknown"
)

// Mood is the user's self reported state of mind.
type Mood string

const (
	MoodCalm      Mood = "calm"
	MoodAnxious   Mood = "anxious"
	MoodImpulsive Mood = "impulsive"
	MoodFocused   Mood = "focused"
)

// Element is one of the five phases.
type Element int

const (
	Water Element = iota
	Wood
	Fire
	Earth
	Metal
)

// Polarity is the yin/yang classification.
type Polarity int

const (
	Yin Polarity = iota
	Yang
)

// Source records where the reading content came from.
type Source string

const (
	SourceProvider Source = "provider"
	SourcePartial  Source = "partial"
	SourceFallback Source = "fallback"
)

// Request is the payload accepted by the almanac endpoint. Field names
// follow the web client.
type Request struct {
	Name      string   `json:"name"`
	Nickname  string   `json:"nickname"`
	BirthDate string   `json:"birthdate"`
	BirthTime TimeSlot `json:"birthTime"`
	Mood      Mood     `json:"mood"`
	Locale    Locale   `json:"language"`
}

// TimeContext describes the energy associated with a birth time slot.
type TimeContext struct {
	Label  string
	Energy string
}

// Attributes are the symbolic values derived from a request.
type Attributes struct {
	Element     string
	Polarity    string
	TimeContext TimeContext
	MoodLabel   string

	// YearElement is the year based element, kept for diagnostics only.
	YearElement string
}

// Content is the advisory part of a reading, produced by the provider or
// by the fallback template.
type Content struct {
	Auspicious     string `json:"auspicious"`
	Avoid          string `json:"avoid"`
	LuckyDirection string `json:"luckyDirection"`
	LuckyColor     string `json:"luckyColor"`
	LuckyHour      string `json:"luckyHour"`
	Wisdom         string `json:"wisdom"`
}

// Reading is serialized back to API consumers.
type Reading struct {
	Element    string `json:"element"`
	Polarity   string `json:"polarity"`
	Auspicious string `json:"auspicious"`
	Avoid      string `json:"avoid"`
	Lucky      string `json:"lucky"`
	Wisdom     string `json:"wisdom"`

	Source Source `json:"-"`
}

// Completion is a successful provider response.
type Completion struct {
	Text  string
	Model string
	Usage metrics.TokenUsage
}

// Generator sends a single-turn prompt to a text generation provider.
// Implementations must not retry and must honour ctx cancellation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Completion, error)
}

// Config wires runtime knobs for the almanac domain.
type Config struct {
	Timezone string
}
