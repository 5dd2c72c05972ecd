// Package prompt builds the tutor's system instruction from learner
// preferences. Build is pure: the same preferences always give the same text.
package prompt

import (
	"strings"

	"hindipath/internal/models"
)

// Preferences are the learner settings that shape the instruction
type Preferences struct {
	NativeLanguage string
	Level          string
}

// ForUser reads the preferences off a user row
func ForUser(u *models.User) Preferences {
	return Preferences{NativeLanguage: u.MyLang, Level: u.TeachLevel}
}

var languageGuidance = map[string]string{
	models.LangTamil:   "The student understands Tamil natively. Always include Tamil translation.",
	models.LangEnglish: "The student prefers English. Include Tamil occasionally.",
	models.LangBoth:    "The student knows both Tamil and English. Use both freely.",
}

var levelPacing = map[string]string{
	models.LevelBeginner:     "Teach slowly, one concept at a time, very simple sentences.",
	models.LevelIntermediate: "Teach sentences, grammar patterns, conversational phrases.",
	models.LevelAdvanced:     "Focus on fluency, complex sentences, idioms, grammar.",
}

const persona = `You are "Gurujee" (गुरुजी), a warm patient Hindi tutor for Tamil speakers.`

const rules = `RULES:
1. Always show Hindi Devanagari + Roman transliteration.
2. Always give Tamil + English meaning.
3. Give PRONUNCIATION tips relating to Tamil sounds (e.g. "क sounds like க in Tamil").
4. Give MEMORY TIPS connecting to Tamil/English the student knows.
5. Correct mistakes gently.
6. Use "Shabash! (शाबाश!)" for correct answers.
7. Keep it warm and conversational.
8. End with ONE follow-up question.`

// FormatContract is the output layout vocabulary extraction depends on.
// Changing it changes what gets logged as learned words.
const FormatContract = `CRITICAL FORMAT RULES — MUST FOLLOW EXACTLY:
- Every Hindi word MUST be on its own line in this EXACT pipe format:
  नमस्ते | Namaste | Hello | வணக்கம்
- The 4 parts are: Devanagari | Roman | English | Tamil
- NO numbered lists (1. 2. 3.). NO bullet points. NO bold. NO headers.
- Pronunciation tips go in (parentheses on their own line) after the word line.
- Use 3-5 Hindi words per response.
- NEVER skip the pipe format for any Hindi word.
- Finish with exactly one follow-up question.`

const example = `EXAMPLE of correct output:
मदद करो | Madad karo | Help me | உதவி செய்யுங்கள்
(क sounds like 'k', 'madad' is similar to Tamil 'உதவி' in feel)
मदद चाहिए | Madad chahiye | I need help | எனக்கு உதவி வேண்டும்`

// Build assembles the system instruction. Empty preferences fall back to
// tamil/beginner; values outside the enums contribute no guidance.
func Build(p Preferences) string {
	lang := p.NativeLanguage
	if lang == "" {
		lang = models.LangTamil
	}
	level := p.Level
	if level == "" {
		level = models.LevelBeginner
	}

	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\nSTUDENT: Tamil speaker | Level: ")
	b.WriteString(level)
	b.WriteString(" | ")
	b.WriteString(languageGuidance[lang])
	b.WriteString(" | ")
	b.WriteString(levelPacing[level])
	b.WriteString("\n\n")
	b.WriteString(rules)
	b.WriteString("\n\n")
	b.WriteString(FormatContract)
	b.WriteString("\n\n")
	b.WriteString(example)
	b.WriteString("\n")
	return b.String()
}
