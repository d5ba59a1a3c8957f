package almanac

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const suggestionSeparator = " · "

var (
	errEmptyResponse  = errors.New("empty provider response")
	errNoUsableFields = errors.New("no usable reading fields")
)

// Extraction is the outcome of turning provider text into reading content.
// Content is always complete; Source tells whether it came from the
// provider, from a provider/fallback merge, or entirely from the fallback.
type Extraction struct {
	Content Content
	Source  Source
	// Missing lists the JSON fields that were replaced by fallback values.
	Missing []string
	// Err holds the parse failure, if any, for diagnostics.
	Err error
}

var fallbackContent = map[Locale]Content{
	LocaleEN: {
		Auspicious:     "Auspicious: Focus & Planning · Reflection · Meditation",
		Avoid:          "Avoid: Impulsive spending · Emotional decisions · Over-commitment",
		LuckyDirection: "East",
		LuckyColor:     "Gold",
		LuckyHour:      "09:00-11:00",
		Wisdom:         "\"Still waters run deep; the Way flows with nature.\"",
	},
	LocaleCN: {
		Auspicious:     "宜 专注计划 · 反思复盘 · 静心冥想",
		Avoid:          "忌 冲动消费 · 情绪化决策 · 过度承诺",
		LuckyDirection: "东方",
		LuckyColor:     "金色",
		LuckyHour:      "09:00-11:00",
		Wisdom:         "\"静水深流，道法自然。\"",
	},
}

// FallbackContent returns the fixed reading used when the provider output
// cannot be used. Unknown locales get the English template.
func FallbackContent(locale Locale) Content {
	if c, ok := fallbackContent[locale]; ok {
		return c
	}
	return fallbackContent[LocaleEN]
}

type contentField struct {
	name  string
	valid func(string) bool
	get   func(*Content) *string
}

var contentFields = []contentField{
	{name: "auspicious", get: func(c *Content) *string { return &c.Auspicious }},
	{name: "avoid", get: func(c *Content) *string { return &c.Avoid }},
	{name: "luckyDirection", valid: IsDirection, get: func(c *Content) *string { return &c.LuckyDirection }},
	{name: "luckyColor", get: func(c *Content) *string { return &c.LuckyColor }},
	{name: "luckyHour", valid: IsHourRange, get: func(c *Content) *string { return &c.LuckyHour }},
	{name: "wisdom", get: func(c *Content) *string { return &c.Wisdom }},
}

// ExtractContent parses raw provider text into Content. It never fails:
// malformed output yields the locale fallback, and a decodable object with
// missing or invalid fields has only those fields substituted.
func ExtractContent(raw string, locale Locale) Extraction {
	fallback := FallbackContent(locale)

	sanitized := stripCodeFence(raw)
	if sanitized == "" {
		return Extraction{Content: fallback, Source: SourceFallback, Missing: allFieldNames(), Err: errEmptyResponse}
	}

	fields, err := decodeObject(jsonSpan(sanitized))
	if err != nil {
		return Extraction{Content: fallback, Source: SourceFallback, Missing: allFieldNames(), Err: err}
	}

	content := fallback
	var missing []string
	for _, field := range contentFields {
		value, ok := fields[normalizeKey(field.name)]
		if !ok || value == "" || (field.valid != nil && !field.valid(value)) {
			missing = append(missing, field.name)
			continue
		}
		*field.get(&content) = value
	}

	switch len(missing) {
	case 0:
		return Extraction{Content: content, Source: SourceProvider}
	case len(contentFields):
		return Extraction{Content: fallback, Source: SourceFallback, Missing: missing, Err: errNoUsableFields}
	default:
		return Extraction{Content: content, Source: SourcePartial, Missing: missing}
	}
}

func allFieldNames() []string {
	names := make([]string, 0, len(contentFields))
	for _, f := range contentFields {
		names = append(names, f.name)
	}
	return names
}

func stripCodeFence(raw string) string {
	sanitized := strings.TrimSpace(raw)
	sanitized = strings.TrimPrefix(sanitized, "```json")
	sanitized = strings.TrimPrefix(sanitized, "```")
	sanitized = strings.TrimSuffix(sanitized, "```")
	return strings.TrimSpace(sanitized)
}

// jsonSpan returns the outermost curly braced span, or the input itself when
// there is none.
func jsonSpan(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return text
	}
	return text[start : end+1]
}

func decodeObject(candidate string) (map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return nil, fmt.Errorf("decode reading json: %w", err)
	}
	if raw == nil {
		return nil, errors.New("decode reading json: not an object")
	}
	// Keys that normalize to the same field collide, e.g. luckyDirection and
	// lucky_direction. The exact field name wins; among aliases the
	// lexically smallest key wins, so the result never depends on map order.
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ci, cj := isFieldName(keys[i]), isFieldName(keys[j])
		if ci != cj {
			return ci
		}
		return keys[i] < keys[j]
	})
	out := make(map[string]string, len(raw))
	for _, key := range keys {
		norm := normalizeKey(key)
		if _, seen := out[norm]; seen {
			continue
		}
		out[norm] = coerceText(raw[key])
	}
	return out, nil
}

func isFieldName(key string) bool {
	for _, f := range contentFields {
		if f.name == key {
			return true
		}
	}
	return false
}

// coerceText flattens a JSON value into display text. Arrays of strings are
// joined with the middle-dot separator the prompt asks for.
func coerceText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	switch raw[0] {
	case '"':
		var single string
		if err := json.Unmarshal(raw, &single); err != nil {
			return ""
		}
		return strings.TrimSpace(single)
	case '[':
		var many []json.RawMessage
		if err := json.Unmarshal(raw, &many); err != nil {
			return ""
		}
		parts := make([]string, 0, len(many))
		for _, item := range many {
			if text := coerceText(item); text != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, suggestionSeparator)
	case '{':
		return ""
	default:
		return string(raw)
	}
}

func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, "_", "")
	return strings.ReplaceAll(key, "-", "")
}

var directions = map[string]struct{}{
	"east": {}, "south": {}, "west": {}, "north": {}, "center": {}, "centre": {}, "central": {},
	"东": {}, "南": {}, "西": {}, "北": {}, "中": {}, "中央": {},
}

// IsDirection reports whether value names one of the five directions in
// either locale, e.g. "East", "东" or "东方".
func IsDirection(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if _, ok := directions[v]; ok {
		return true
	}
	_, ok := directions[strings.TrimSuffix(v, "方")]
	return ok
}

var hourRangePattern = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d\s*[-–~～]\s*([01]?\d|2[0-4]):[0-5]\d$`)

// IsHourRange reports whether value looks like HH:MM-HH:MM.
func IsHourRange(value string) bool {
	return hourRangePattern.MatchString(strings.TrimSpace(value))
}
