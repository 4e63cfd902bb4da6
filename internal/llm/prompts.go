package llm

import (
	"fmt"

	"git.home.luguber.info/inful/factpress/internal/config"
)

const (
	englishSystemPrompt = "You are a careful web writer."
	arabicSystemPrompt  = "اكتب بأسلوب عربي واضح وموثوق."
)

const englishPromptFormat = `You are a careful, factual writer. Create an original, SEO-friendly article (600-800 words) in English.
Topic: %s
Theme: %s
Structure:
- A punchy title (max 60 chars)
- 1-paragraph intro (40-60 words) with a clear hook
- 6-8 short sections, each with a bold heading and 2-3 sentences
- One "Myth vs Reality" section if relevant
- A final "Bottom line" summary (20-40 words)
Tone: authoritative but accessible. Avoid fluff. Use plain paragraphs and headings prefixed with '## '.`

const arabicPromptFormat = `اكتب مقالة أصلية ومناسبة للسيو باللغة العربية (٦٠٠–٨٠٠ كلمة).
الموضوع: %s
الثيمة: %s
البنية:
- عنوان جذاب (حتى ٦٠ حرفًا)
- مقدمة فقرة واحدة (٤٠–٦٠ كلمة) مع خطاف واضح
- ٦–٨ أقسام قصيرة، لكل منها عنوان بارز وفقرتان قصيرتان
- قسم "خرافة مقابل حقيقة" إن أمكن
- خاتمة "الخلاصة" (٢٠–٤٠ كلمة)
الأسلوب: موثوق وسلس. فقرات عادية وعناوين تبدأ بـ '## '.`

// EnglishPrompt is the user prompt for an English article.
func EnglishPrompt(theme, topic string) string {
	return fmt.Sprintf(englishPromptFormat, topic, theme)
}

// ArabicPrompt is the user prompt for an Arabic article.
func ArabicPrompt(theme, topic string) string {
	return fmt.Sprintf(arabicPromptFormat, topic, theme)
}

// SystemPrompt returns the system instruction for lang.
func SystemPrompt(lang config.Language) string {
	if lang == config.LanguageArabic {
		return arabicSystemPrompt
	}
	return englishSystemPrompt
}

// UserPrompt returns the article prompt for lang.
func UserPrompt(lang config.Language, theme, topic string) string {
	if lang == config.LanguageArabic {
		return ArabicPrompt(theme, topic)
	}
	return EnglishPrompt(theme, topic)
}
