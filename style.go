package korekta

import "strings"

// Style selects the instruction and system prompt sent to every provider.
type Style string

const (
	StyleNormal        Style = "normal"
	StyleProfessional  Style = "professional"
	StyleTranslateEN   Style = "translate_en"
	StyleTranslatePL   Style = "translate_pl"
	StyleChangeMeaning Style = "change_meaning"
	StyleSummary       Style = "summary"
	StylePrompt        Style = "prompt"
)

// Styles returns every style in menu order.
func Styles() []Style {
	return []Style{
		StyleNormal,
		StyleProfessional,
		StyleTranslateEN,
		StyleTranslatePL,
		StyleChangeMeaning,
		StyleSummary,
		StylePrompt,
	}
}

// ParseStyle parses a style name case-insensitively. Unknown names fall back
// to StyleNormal.
func ParseStyle(s string) Style {
	want := Style(strings.ToLower(strings.TrimSpace(s)))
	for _, st := range Styles() {
		if st == want {
			return st
		}
	}
	return StyleNormal
}

// Known reports whether s is one of the defined styles.
func (s Style) Known() bool {
	for _, st := range Styles() {
		if st == s {
			return true
		}
	}
	return false
}

// Title returns a short human-readable label.
func (s Style) Title() string {
	switch s {
	case StyleProfessional:
		return "Professional tone"
	case StyleTranslateEN:
		return "Translate to English"
	case StyleTranslatePL:
		return "Translate to Polish"
	case StyleChangeMeaning:
		return "Rewrite"
	case StyleSummary:
		return "Summary"
	case StylePrompt:
		return "Instruction"
	default:
		return "Correction"
	}
}

// Instruction returns the per-request instruction for s.
func (s Style) Instruction() string {
	if in, ok := instructions[s]; ok {
		return in
	}
	return instructions[StyleNormal]
}

// SystemPrompt returns the system prompt for s.
func (s Style) SystemPrompt() string {
	switch s {
	case StylePrompt:
		return promptSystemPrompt
	case StyleProfessional:
		return professionalSystemPrompt
	default:
		return defaultSystemPrompt
	}
}

var instructions = map[Style]string{
	StyleNormal: "Correct the following text, preserving its formatting (including all line breaks and paragraphs). " +
		"Return ONLY the corrected text, without any additional headers, separators, or comments.",
	StyleProfessional: "Rewrite the following text into a professional, formal register. " +
		"Preserve the original meaning and formatting (paragraphs, lists, line breaks). " +
		"Remove colloquialisms, emojis and exclamation-heavy rhetoric, standardize punctuation and capitalization, " +
		"and keep the phrasing clear, concise and courteous. Do not return the input unchanged.",
	StyleTranslateEN: "YOUR SOLE TASK IS TO TRANSLATE THE FOLLOWING TEXT INTO ENGLISH. " +
		"Preserve the original formatting (paragraphs, lists, etc.). Do not correct the text, only translate it.",
	StyleTranslatePL: "YOUR SOLE TASK IS TO TRANSLATE THE FOLLOWING TEXT INTO POLISH. " +
		"Preserve the original formatting (paragraphs, lists, etc.). Do not correct the text, only translate it.",
	StyleChangeMeaning: "Propose a completely new text based on the one below, preserving the formatting.",
	StyleSummary: "Create a concise summary of the main points from the following text, " +
		"preserving the formatting of lists, etc.",
	StylePrompt: "Transform the following text into a clear, concise instruction for immediate implementation. " +
		"The output should be a direct, actionable command without explanations, examples, or additional context. " +
		"If the text is already a clear instruction, return it as is.",
}

const defaultSystemPrompt = `You are a virtual editor specializing in proofreading technical texts for the IT industry. Follow these instructions meticulously:
1. Error correction: detect and correct ALL spelling, grammatical, punctuation, and stylistic errors.
2. Clarity: simplify complex sentences while preserving their technical meaning. Eliminate redundant words.
3. Terminology: preserve technical terms, proper names, acronyms, and code snippets unless they contain obvious spelling mistakes.
4. Tone: professional yet natural. Avoid colloquialisms and excessive formality.
5. Formatting: strictly preserve paragraphs, lists, indentation, Markdown emphasis, and line breaks.
6. Output: return ONLY the final processed text. Do not add comments, headers, explanations, or separators such as "---" or "` + "```" + `".
7. If the input is empty, return an empty string.

If the task is a translation, the output is only the translated text.`

const professionalSystemPrompt = `You are a senior editor transforming texts into a consistent, formal, business-appropriate register. Apply the following rules rigorously:
1. Tone: neutral, courteous, and professional; no colloquialisms or emojis.
2. Register: prefer impersonal constructions or formal address.
3. Clarity: shorter sentences where appropriate; remove filler words; keep the meaning intact.
4. Precision: prefer precise vocabulary; correct punctuation and typography.
5. Formatting: strictly preserve paragraphs, lists, and line breaks.
6. Output: return ONLY the final, restyled text with no comments or markers.`

const promptSystemPrompt = `You are an assistant that transforms user requests into direct, executable commands. Follow these rules:
1. Be direct: convert requests into simple, imperative statements.
2. No explanations: do not include any additional context or notes.
3. Preserve intent: maintain the original meaning while making it actionable.
4. Single action: focus on one clear action per instruction.
5. Be specific: include all necessary details for immediate execution.`
