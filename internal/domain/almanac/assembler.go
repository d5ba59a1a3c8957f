package almanac

import "fmt"

var luckyTemplates = map[Locale]string{
	LocaleEN: "Lucky Direction: %s · Lucky Color: %s · Lucky Hour: %s",
	LocaleCN: "幸运方向：%s · 幸运颜色：%s · 幸运时辰：%s",
}

// LuckyLine composes direction, colour and hour into one labelled line.
func LuckyLine(c Content, locale Locale) string {
	tmpl, ok := luckyTemplates[locale]
	if !ok {
		tmpl = luckyTemplates[LocaleEN]
	}
	return fmt.Sprintf(tmpl, c.LuckyDirection, c.LuckyColor, c.LuckyHour)
}

// Assemble merges the derived attributes with reading content.
func Assemble(attrs Attributes, ext Extraction, locale Locale) Reading {
	return Reading{
		Element:    attrs.Element,
		Polarity:   attrs.Polarity,
		Auspicious: ext.Content.Auspicious,
		Avoid:      ext.Content.Avoid,
		Lucky:      LuckyLine(ext.Content, locale),
		Wisdom:     ext.Content.Wisdom,
		Source:     ext.Source,
	}
}
