package domain

import (
	"strings"
	"unicode/utf8"
)

// Platforms that AI generation produces prompts for.
const (
	PlatformChatGPT    = "ChatGPT"
	PlatformMidjourney = "Midjourney"
	PlatformClaude     = "Claude"
	PlatformGemini     = "Gemini"
)

// Fallback values applied to generated prompt fields the provider left out.
const (
	FallbackPlatform   = "Unknown"
	FallbackPromptType = "General"
	FallbackIcon       = "fas fa-robot"
	FallbackColor      = "blue"
)

const (
	// GeneratedPromptCount is the number of prompts every generation yields.
	GeneratedPromptCount = 4

	// PreviewLength is the number of characters of content kept in a derived preview.
	PreviewLength = 150

	// PreviewEllipsis marks a preview that was cut short.
	PreviewEllipsis = "..."

	// MaxUserInputLength bounds the generation input, in characters.
	MaxUserInputLength = 500
)

// GeneratedPlatforms lists the generated platforms in output order.
var GeneratedPlatforms = []string{
	PlatformChatGPT,
	PlatformMidjourney,
	PlatformClaude,
	PlatformGemini,
}

// PlatformStyle holds the display hints a platform uses by default.
type PlatformStyle struct {
	Icon  string
	Color string
}

var platformStyles = map[string]PlatformStyle{
	PlatformChatGPT:    {Icon: "fab fa-openai", Color: "green"},
	PlatformMidjourney: {Icon: "fas fa-palette", Color: "purple"},
	PlatformClaude:     {Icon: "fas fa-robot", Color: "orange"},
	PlatformGemini:     {Icon: "fas fa-gem", Color: "cyan"},
}

// StyleFor returns the canonical display hints for a generated platform.
// The second result is false if the platform is not one of GeneratedPlatforms.
func StyleFor(platform string) (PlatformStyle, bool) {
	style, ok := platformStyles[platform]
	return style, ok
}

// CanonicalPlatform matches name against GeneratedPlatforms ignoring case and
// surrounding whitespace, and returns the canonical spelling.
func CanonicalPlatform(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, p := range GeneratedPlatforms {
		if strings.EqualFold(p, name) {
			return p, true
		}
	}
	return "", false
}

// GeneratedPrompt is one platform-tailored prompt produced by AI generation.
type GeneratedPrompt struct {
	Platform string `json:"platform"`
	Type     string `json:"type"`
	Content  string `json:"content"`
	Preview  string `json:"preview"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
}

// PreviewOf derives display text from prompt content: the first PreviewLength
// characters followed by PreviewEllipsis when the content is longer.
func PreviewOf(content string) string {
	if utf8.RuneCountInString(content) <= PreviewLength {
		return content
	}
	runes := []rune(content)
	return string(runes[:PreviewLength]) + PreviewEllipsis
}
