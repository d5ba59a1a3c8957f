package almanac

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/yanqian/ai-almanac/pkg/errors"
)

type localized struct {
	cn string
	en string
}

func (l localized) in(locale Locale) string {
	if locale == LocaleCN {
		return l.cn
	}
	return l.en
}

var elementLabels = [...]localized{
	Water: {cn: "水", en: "Water"},
	Wood:  {cn: "木", en: "Wood"},
	Fire:  {cn: "火", en: "Fire"},
	Earth: {cn: "土", en: "Earth"},
	Metal: {cn: "金", en: "Metal"},
}

var polarityLabels = [...]localized{
	Yin:  {cn: "阴", en: "Yin"},
	Yang: {cn: "阳", en: "Yang"},
}

type slotContext struct {
	label  localized
	energy string
}

var slotContexts = map[TimeSlot]slotContext{
	SlotDawn:      {label: localized{cn: "清晨", en: "dawn"}, energy: "fresh and new"},
	SlotMorning:   {label: localized{cn: "上午", en: "morning"}, energy: "active and energetic"},
	SlotNoon:      {label: localized{cn: "中午", en: "noon"}, energy: "balanced and clear"},
	SlotAfternoon: {label: localized{cn: "下午", en: "afternoon"}, energy: "reflective and mature"},
	SlotDusk:      {label: localized{cn: "傍晚", en: "dusk"}, energy: "transitional and introspective"},
	SlotNight:     {label: localized{cn: "夜间", en: "night"}, energy: "mysterious and deep"},
	SlotUnknown:   {label: localized{cn: "不确定", en: "unknown"}, energy: "balanced"},
}

var moodLabels = map[Mood]localized{
	MoodCalm:      {cn: "平静", en: "calm"},
	MoodAnxious:   {cn: "焦虑", en: "anxious"},
	MoodImpulsive: {cn: "冲动", en: "impulsive"},
	MoodFocused:   {cn: "专注", en: "focused"},
}

// DayElement maps the day of month onto the five phase cycle.
func DayElement(birth time.Time) Element {
	return Element(birth.Day() % 5)
}

// YearElement maps the final digit of the year onto the five phase cycle.
func YearElement(birth time.Time) Element {
	return Element((birth.Year() % 10) % 5)
}

// PolarityOf returns Yang for even years and Yin for odd ones.
func PolarityOf(birth time.Time) Polarity {
	if birth.Year()%2 == 0 {
		return Yang
	}
	return Yin
}

// Label returns the localized element name.
func (e Element) Label(locale Locale) string {
	if e < Water || e > Metal {
		return ""
	}
	return elementLabels[e].in(locale)
}

// Label returns the localized polarity name.
func (p Polarity) Label(locale Locale) string {
	if p != Yin && p != Yang {
		return ""
	}
	return polarityLabels[p].in(locale)
}

// ResolveTimeContext never fails: blank or unknown slots map to "unknown".
func ResolveTimeContext(slot TimeSlot, locale Locale) TimeContext {
	ctx, ok := slotContexts[TimeSlot(strings.ToLower(strings.TrimSpace(string(slot))))]
	if !ok {
		ctx = slotContexts[SlotUnknown]
	}
	return TimeContext{Label: ctx.label.in(locale), Energy: ctx.energy}
}

// DeriveAttributes computes the symbolic attributes for a birth date, time
// slot and mood. The reported element follows the day of month.
func DeriveAttributes(birth time.Time, slot TimeSlot, mood Mood, locale Locale) (Attributes, error) {
	if !locale.Valid() {
		return Attributes{}, apperrors.Wrap("unsupported_locale", fmt.Sprintf("unsupported locale %q", locale), nil)
	}
	moodLabel, ok := moodLabels[mood]
	if !ok {
		return Attributes{}, apperrors.Wrap("invalid_input", messageFor(locale, msgInvalidMood), nil)
	}
	return Attributes{
		Element:     DayElement(birth).Label(locale),
		Polarity:    PolarityOf(birth).Label(locale),
		TimeContext: ResolveTimeContext(slot, locale),
		MoodLabel:   moodLabel.in(locale),
		YearElement: YearElement(birth).Label(locale),
	}, nil
}

// Valid reports whether the locale is one of the supported languages.
func (l Locale) Valid() bool {
	return l == LocaleCN || l == LocaleEN
}

// Valid reports whether the mood is enumerated.
func (m Mood) Valid() bool {
	_, ok := moodLabels[m]
	return ok
}
