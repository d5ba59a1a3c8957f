package almanac

import (
	"strings"
	"time"

	apperrors "github.com/yanqian/ai-almanac/pkg/errors"
)

const birthDateLayout = "2006-01-02"

type messageKey int

const (
	msgMissingFields messageKey = iota
	msgInvalidMood
	msgInvalidBirthDate
)

var validationMessages = map[messageKey]localized{
	msgMissingFields:    {cn: "缺少必填字段", en: "Missing required fields"},
	msgInvalidMood:      {cn: "无效的心情", en: "Invalid mood"},
	msgInvalidBirthDate: {cn: "无效的出生日期", en: "Invalid birth date"},
}

func messageFor(locale Locale, key messageKey) string {
	return validationMessages[key].in(locale)
}

// Normalize trims the request and lower-cases the enumerated fields. A blank
// language defaults to English; an unrecognised one is left as is so the
// pipeline can reject it.
func (r Request) Normalize() Request {
	out := Request{
		Name:      strings.TrimSpace(r.Name),
		Nickname:  strings.TrimSpace(r.Nickname),
		BirthDate: strings.TrimSpace(r.BirthDate),
		BirthTime: TimeSlot(strings.ToLower(strings.TrimSpace(string(r.BirthTime)))),
		Mood:      Mood(strings.ToLower(strings.TrimSpace(string(r.Mood)))),
		Locale:    Locale(strings.ToLower(strings.TrimSpace(string(r.Locale)))),
	}
	if out.Locale == "" {
		out.Locale = LocaleEN
	}
	if out.BirthTime == "" {
		out.BirthTime = SlotUnknown
	}
	return out
}

// Validate checks the boundary invariants of a normalized request. Errors
// carry the invalid_input code and a message in the requested language.
func (r Request) Validate() error {
	if r.Name == "" || r.Nickname == "" || r.BirthDate == "" {
		return apperrors.Wrap("invalid_input", messageFor(r.Locale, msgMissingFields), nil)
	}
	if _, err := ParseBirthDate(r.BirthDate); err != nil {
		return apperrors.Wrap("invalid_input", messageFor(r.Locale, msgInvalidBirthDate), err)
	}
	if !r.Mood.Valid() {
		return apperrors.Wrap("invalid_input", messageFor(r.Locale, msgInvalidMood), nil)
	}
	return nil
}

// ParseBirthDate parses a YYYY-MM-DD calendar date.
func ParseBirthDate(value string) (time.Time, error) {
	return time.Parse(birthDateLayout, strings.TrimSpace(value))
}
