package almanac

import (
	"fmt"
	"strings"
	"time"
)

// PromptInput bundles everything the prompt mentions.
type PromptInput struct {
	Attributes Attributes
	Name       string
	Nickname   string
	BirthDate  string
	Locale     Locale
	Today      time.Time
}

// BuildPrompt renders the single user message sent to the provider. Output
// is byte-identical for identical input, including Today.
func BuildPrompt(in PromptInput) string {
	if in.Locale == LocaleCN {
		return buildChinesePrompt(in)
	}
	return buildEnglishPrompt(in)
}

// FormatToday renders the date the way each locale expects it in prose.
func FormatToday(t time.Time, locale Locale) string {
	if locale == LocaleCN {
		return fmt.Sprintf("%d/%d/%d", t.Year(), int(t.Month()), t.Day())
	}
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

func buildEnglishPrompt(in PromptInput) string {
	a := in.Attributes
	var b strings.Builder
	fmt.Fprintf(&b, "You are an ancient Taoist sage, expert in the I Ching, Five Elements, and divination. Today is %s.\n\n", FormatToday(in.Today, LocaleEN))
	b.WriteString("User Information:\n")
	fmt.Fprintf(&b, "- Real Name: %s (for analysis only, not public)\n", in.Name)
	fmt.Fprintf(&b, "- Nickname: %s\n", in.Nickname)
	fmt.Fprintf(&b, "- Birth Date: %s\n", in.BirthDate)
	fmt.Fprintf(&b, "- Birth Time: %s (%s)\n", a.TimeContext.Label, a.TimeContext.Energy)
	fmt.Fprintf(&b, "- Current Mood: %s\n", a.MoodLabel)
	fmt.Fprintf(&b, "- Today's Element: %s\n", a.Element)
	fmt.Fprintf(&b, "- Today's Polarity: %s\n\n", a.Polarity)
	fmt.Fprintf(&b, "Generate a personalized Dao Almanac reading for %s based on this information. Format requirements:\n\n", in.Nickname)
	b.WriteString("Return a JSON object with these fields:\n")
	b.WriteString("{\n")
	b.WriteString("  \"auspicious\": \"Auspicious: [3-5 specific suggestions, separated by ·]\",\n")
	b.WriteString("  \"avoid\": \"Avoid: [3-5 specific suggestions, separated by ·]\",\n")
	b.WriteString("  \"luckyDirection\": \"East/South/West/North/Center\",\n")
	b.WriteString("  \"luckyColor\": \"[a color]\",\n")
	b.WriteString("  \"luckyHour\": \"[a time slot, e.g., 09:00-11:00]\",\n")
	fmt.Fprintf(&b, "  \"wisdom\": \"A poetic wisdom saying that embodies the energy of %s %s and the mindset of %s\"\n", a.Element, a.Polarity, a.MoodLabel)
	b.WriteString("}\n\n")
	b.WriteString("Important notes:\n")
	fmt.Fprintf(&b, "1. The reading should resonate with %s's current mood\n", in.Nickname)
	b.WriteString("2. Suggestions should be inspiring and actionable\n")
	b.WriteString("3. Wisdom sayings should reflect Taoist and Zen philosophy\n")
	b.WriteString("4. Use English for all responses\n")
	b.WriteString("5. Respond with valid JSON only, no markdown or commentary\n")
	return b.String()
}

func buildChinesePrompt(in PromptInput) string {
	a := in.Attributes
	var b strings.Builder
	fmt.Fprintf(&b, "你是一位古老的道家智者，专精于周易、五行八卦和人生命理。今天是%s。\n\n", FormatToday(in.Today, LocaleCN))
	b.WriteString("用户信息：\n")
	fmt.Fprintf(&b, "- 真名：%s（仅用于分析，不会公开）\n", in.Name)
	fmt.Fprintf(&b, "- 昵称：%s\n", in.Nickname)
	fmt.Fprintf(&b, "- 生日：%s\n", in.BirthDate)
	fmt.Fprintf(&b, "- 出生时段：%s\n", a.TimeContext.Label)
	fmt.Fprintf(&b, "- 当前心情：%s\n", a.MoodLabel)
	fmt.Fprintf(&b, "- 今日五行：%s\n", a.Element)
	fmt.Fprintf(&b, "- 今日阴阳：%s\n\n", a.Polarity)
	fmt.Fprintf(&b, "请根据这些信息，为%s生成一份个性化的黄历签文。格式要求：\n\n", in.Nickname)
	b.WriteString("返回一个JSON对象，包含以下字段：\n")
	b.WriteString("{\n")
	b.WriteString("  \"auspicious\": \"宜 [3-5个具体建议，用·分隔]\",\n")
	b.WriteString("  \"avoid\": \"忌 [3-5个具体建议，用·分隔]\",\n")
	b.WriteString("  \"luckyDirection\": \"东/南/西/北/中央\",\n")
	b.WriteString("  \"luckyColor\": \"[一个颜色]\",\n")
	b.WriteString("  \"luckyHour\": \"[一个时间段，如09:00-11:00]\",\n")
	fmt.Fprintf(&b, "  \"wisdom\": \"一句诗意的智慧签文，体现%s%s的能量和%s的心态\"\n", a.Element, a.Polarity, a.MoodLabel)
	b.WriteString("}\n\n")
	b.WriteString("注意事项：\n")
	fmt.Fprintf(&b, "1. 签文要贴近%s的当前心情\n", in.Nickname)
	b.WriteString("2. 建议要具有指导性和启发性，既温暖又有力\n")
	b.WriteString("3. 智慧签文要富有哲理，可以引用道家、禅宗的思想\n")
	b.WriteString("4. 回应要用简体中文\n")
	b.WriteString("5. 只返回有效的JSON格式，不要附加其他文字\n")
	return b.String()
}
