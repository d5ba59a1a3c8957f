package almanac

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const completeJSON = `{"auspicious":"Focus","avoid":"Haste","luckyDirection":"East","luckyColor":"Gold","luckyHour":"09:00-11:00","wisdom":"Flow."}`

func TestExtractContentRoundTrip(t *testing.T) {
	want := Content{
		Auspicious:     "Focus",
		Avoid:          "Haste",
		LuckyDirection: "East",
		LuckyColor:     "Gold",
		LuckyHour:      "09:00-11:00",
		Wisdom:         "Flow.",
	}

	for name, raw := range map[string]string{
		"bare":       completeJSON,
		"with prose": "Here is your reading:\n" + completeJSON + "\nMay the Dao guide you.",
		"fenced":     "```json\n" + completeJSON + "\n```",
	} {
		raw := raw
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ext := ExtractContent(raw, LocaleEN)
			require.Equal(t, SourceProvider, ext.Source)
			require.NoError(t, ext.Err)
			require.Empty(t, ext.Missing)
			if diff := cmp.Diff(want, ext.Content); diff != "" {
				t.Fatalf("content mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractContentFallsBackCompletely(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		locale Locale
	}{
		{name: "plain prose", raw: "The stars are quiet today; rest and reflect.", locale: LocaleEN},
		{name: "trailing comma", raw: `{"auspicious":"Focus","avoid":"Haste",}`, locale: LocaleEN},
		{name: "empty", raw: "   ", locale: LocaleCN},
		{name: "array", raw: `["Focus","Haste"]`, locale: LocaleEN},
		{name: "unrelated object", raw: `{"message":"hello"}`, locale: LocaleCN},
		{name: "null", raw: "null", locale: LocaleEN},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ext := ExtractContent(tt.raw, tt.locale)
			require.Equal(t, SourceFallback, ext.Source)
			require.Error(t, ext.Err)
			require.Equal(t, FallbackContent(tt.locale), ext.Content)
			require.Len(t, ext.Missing, 6)
		})
	}
}

func TestExtractContentSubstitutesMissingFields(t *testing.T) {
	raw := `{"auspicious":"宜 读书 · 散步 · 早睡","avoid":"忌 熬夜","luckyDirection":"西北偏北","luckyColor":"青色","luckyHour":"morning","wisdom":""}`

	ext := ExtractContent(raw, LocaleCN)
	fallback := FallbackContent(LocaleCN)

	require.Equal(t, SourcePartial, ext.Source)
	require.NoError(t, ext.Err)
	require.Equal(t, []string{"luckyDirection", "luckyHour", "wisdom"}, ext.Missing)
	require.Equal(t, Content{
		Auspicious:     "宜 读书 · 散步 · 早睡",
		Avoid:          "忌 熬夜",
		LuckyDirection: fallback.LuckyDirection,
		LuckyColor:     "青色",
		LuckyHour:      fallback.LuckyHour,
		Wisdom:         fallback.Wisdom,
	}, ext.Content)
}

func TestExtractContentCoercesValues(t *testing.T) {
	raw := `{"auspicious":["Walk","Read","Rest"],"avoid":"Haste","lucky_direction":"north","LuckyColor":"Jade","luckyHour":"7:00 – 9:00","wisdom":42}`

	ext := ExtractContent(raw, LocaleEN)
	require.Equal(t, SourceProvider, ext.Source)
	require.Equal(t, "Walk · Read · Rest", ext.Content.Auspicious)
	require.Equal(t, "north", ext.Content.LuckyDirection)
	require.Equal(t, "Jade", ext.Content.LuckyColor)
	require.Equal(t, "7:00 – 9:00", ext.Content.LuckyHour)
	require.Equal(t, "42", ext.Content.Wisdom)
}

func TestIsDirection(t *testing.T) {
	for _, v := range []string{"East", "south", "WEST", "North", "Center", "centre", "东", "东方", "中央", "北方"} {
		require.True(t, IsDirection(v), v)
	}
	for _, v := range []string{"", "Northeast", "up", "东北"} {
		require.False(t, IsDirection(v), v)
	}
}

func TestIsHourRange(t *testing.T) {
	for _, v := range []string{"09:00-11:00", "9:00-11:00", "23:00 - 24:00", "07:30～09:30"} {
		require.True(t, IsHourRange(v), v)
	}
	for _, v := range []string{"", "morning", "9-11", "25:00-26:00"} {
		require.False(t, IsHourRange(v), v)
	}
}

func TestJSONSpan(t *testing.T) {
	require.Equal(t, `{"a":{"b":1}}`, jsonSpan(`noise {"a":{"b":1}} tail`))
	require.Equal(t, "no braces", jsonSpan("no braces"))
	require.Equal(t, "} reversed {", jsonSpan("} reversed {"))
}

func TestExtractContentResolvesCollidingKeysDeterministically(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "exact name beats alias",
			raw:  `{"lucky_direction":"West","luckyDirection":"East","luckyColor":"Gold","luckyHour":"09:00-11:00","auspicious":"Focus","avoid":"Haste","wisdom":"Flow."}`,
			want: "East",
		},
		{
			name: "exact name beats alias in either order",
			raw:  `{"luckyDirection":"East","lucky_direction":"West","luckyColor":"Gold","luckyHour":"09:00-11:00","auspicious":"Focus","avoid":"Haste","wisdom":"Flow."}`,
			want: "East",
		},
		{
			name: "smallest alias wins without exact name",
			raw:  `{"lucky_direction":"West","lucky-direction":"South","LuckyDirection":"North","luckyColor":"Gold","luckyHour":"09:00-11:00","auspicious":"Focus","avoid":"Haste","wisdom":"Flow."}`,
			want: "North",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			first := ExtractContent(tt.raw, LocaleEN)
			require.Equal(t, tt.want, first.Content.LuckyDirection)
			for i := 0; i < 200; i++ {
				if diff := cmp.Diff(first, ExtractContent(tt.raw, LocaleEN)); diff != "" {
					t.Fatalf("extraction changed between runs (-first +got):\n%s", diff)
				}
			}
		})
	}
}
