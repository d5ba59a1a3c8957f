package almanac

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuildPromptEnglish(t *testing.T) {
	attrs, err := DeriveAttributes(mustDate(t, "1990-06-15"), SlotMorning, MoodCalm, LocaleEN)
	require.NoError(t, err)

	in := PromptInput{
		Attributes: attrs,
		Name:       "A",
		Nickname:   "Bo",
		BirthDate:  "1990-06-15",
		Locale:     LocaleEN,
		Today:      time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC),
	}
	prompt := BuildPrompt(in)

	require.Contains(t, prompt, "Today is 3/5/2024.")
	require.Contains(t, prompt, "- Real Name: A (for analysis only, not public)")
	require.Contains(t, prompt, "- Nickname: Bo")
	require.Contains(t, prompt, "- Birth Date: 1990-06-15")
	require.Contains(t, prompt, "- Birth Time: morning (active and energetic)")
	require.Contains(t, prompt, "- Current Mood: calm")
	require.Contains(t, prompt, "- Today's Element: Water")
	require.Contains(t, prompt, "- Today's Polarity: Yang")
	for _, field := range []string{"auspicious", "avoid", "luckyDirection", "luckyColor", "luckyHour", "wisdom"} {
		require.Contains(t, prompt, `"`+field+`":`)
	}
	require.Contains(t, prompt, "3-5 specific suggestions, separated by ·")
	require.Contains(t, prompt, "Use English for all responses")
	require.Contains(t, prompt, "valid JSON only")

	require.Equal(t, prompt, BuildPrompt(in))
}

func TestBuildPromptChinese(t *testing.T) {
	attrs, err := DeriveAttributes(mustDate(t, "1991-06-01"), SlotNight, MoodFocused, LocaleCN)
	require.NoError(t, err)

	prompt := BuildPrompt(PromptInput{
		Attributes: attrs,
		Name:       "张三",
		Nickname:   "小张",
		BirthDate:  "1991-06-01",
		Locale:     LocaleCN,
		Today:      time.Date(2024, time.October, 15, 8, 0, 0, 0, time.UTC),
	})

	require.Contains(t, prompt, "今天是2024/10/15。")
	require.Contains(t, prompt, "- 真名：张三（仅用于分析，不会公开）")
	require.Contains(t, prompt, "- 出生时段：夜间")
	require.Contains(t, prompt, "- 当前心情：专注")
	require.Contains(t, prompt, "- 今日五行：木")
	require.Contains(t, prompt, "- 今日阴阳：阴")
	require.Contains(t, prompt, "3-5个具体建议，用·分隔")
	require.Contains(t, prompt, "体现木阴的能量和专注的心态")
	require.Contains(t, prompt, "回应要用简体中文")
}

func TestBuildPromptOnlyDateVaries(t *testing.T) {
	attrs, err := DeriveAttributes(mustDate(t, "1990-06-15"), SlotNoon, MoodImpulsive, LocaleEN)
	require.NoError(t, err)
	in := PromptInput{Attributes: attrs, Name: "A", Nickname: "Bo", BirthDate: "1990-06-15", Locale: LocaleEN}

	in.Today = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	first := BuildPrompt(in)
	in.Today = time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	second := BuildPrompt(in)

	require.NotEqual(t, first, second)
	require.Equal(t, first, strings.Replace(second, "1/2/2024", "1/1/2024", 1))
}

func TestFormatToday(t *testing.T) {
	day := time.Date(2026, time.October, 5, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "10/5/2026", FormatToday(day, LocaleEN))
	require.Equal(t, "2026/10/5", FormatToday(day, LocaleCN))
}

