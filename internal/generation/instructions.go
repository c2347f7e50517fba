package generation

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/promptnest/promptnest-api/internal/domain"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var promptTemplates = template.Must(template.ParseFS(promptFS, "prompts/*.tmpl"))

// platformBrief describes how prompts for one platform should be written.
type platformBrief struct {
	Name         string
	Focus        string
	TypeHint     string
	Instructions string
	Icon         string
	Color        string
}

var platformBriefs = map[string]platformBrief{
	domain.PlatformChatGPT: {
		Focus:        "Conversational, detailed instructions with clear role definition",
		TypeHint:     "Professional/Creative/Technical/etc",
		Instructions: "Create a conversational prompt with clear role definition and step-by-step instructions",
	},
	domain.PlatformMidjourney: {
		Focus:        "Visual description with artistic parameters and technical specs",
		TypeHint:     "Visual/Artistic/etc",
		Instructions: "Create a visual prompt with artistic style, composition, lighting, and technical parameters like --ar 16:9 --v 6",
	},
	domain.PlatformClaude: {
		Focus:        "Analytical, structured approach with clear reasoning steps",
		TypeHint:     "Analytical/Research/etc",
		Instructions: "Create an analytical prompt with structured reasoning and clear methodology",
	},
	domain.PlatformGemini: {
		Focus:        "Research-focused with comprehensive analysis requirements",
		TypeHint:     "Research/Analysis/etc",
		Instructions: "Create a research-focused prompt with comprehensive analysis requirements",
	},
}

// briefFor returns the brief for platform. Platforms without one are written
// the ChatGPT way.
func briefFor(platform string) platformBrief {
	brief, ok := platformBriefs[platform]
	if !ok {
		brief = platformBriefs[domain.PlatformChatGPT]
	}
	style, ok := domain.StyleFor(platform)
	if !ok {
		style, _ = domain.StyleFor(domain.PlatformChatGPT)
	}
	brief.Name = platform
	brief.Icon = style.Icon
	brief.Color = style.Color
	return brief
}

// SystemInstruction returns the fixed system message describing the
// four-platform JSON reply contract.
func SystemInstruction() string {
	briefs := make([]platformBrief, 0, len(domain.GeneratedPlatforms))
	for _, p := range domain.GeneratedPlatforms {
		briefs = append(briefs, briefFor(p))
	}
	return mustRender("generate_system.tmpl", struct{ Platforms []platformBrief }{briefs})
}

// UserMessage embeds the user's request in the message sent with SystemInstruction.
func UserMessage(userInput string) string {
	return fmt.Sprintf("Generate %d optimized AI prompts for: %s", domain.GeneratedPromptCount, userInput)
}

// SingleSystemInstruction returns the system message asking for one prompt
// tailored to platform.
func SingleSystemInstruction(platform string) string {
	return mustRender("single_system.tmpl", briefFor(platform))
}

// SingleUserMessage embeds the user's request in the message sent with SingleSystemInstruction.
func SingleUserMessage(userInput, platform string) string {
	return fmt.Sprintf("Create an optimized %s prompt for: %s", platform, userInput)
}

// mustRender executes one of the embedded templates. The templates and their
// data are fixed at build time, so a failure is a programming error.
func mustRender(name string, data any) string {
	var buf bytes.Buffer
	if err := promptTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		panic(fmt.Sprintf("render %s: %v", name, err))
	}
	return buf.String()
}
