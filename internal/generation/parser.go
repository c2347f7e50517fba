package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/promptnest/promptnest-api/internal/domain"
)

// Parse turns raw provider output into exactly domain.GeneratedPromptCount
// prompts. The whole text is decoded as JSON first; if that fails, the span
// from the first '[' to the last ']' is decoded instead. Missing or empty
// string fields are filled with the domain fallback values, and a missing
// preview is derived from the content.
//
// Parse does not look at which platforms the items name. AssignPlatforms
// settles platform order afterwards.
func Parse(raw string) ([]domain.GeneratedPrompt, error) {
	value, err := decodeLenient(raw, '[', ']')
	if err != nil {
		return nil, err
	}

	items, ok := value.([]any)
	if !ok {
		return nil, &ParseError{Err: ErrWrongItemCount, Detail: "not an array"}
	}
	if len(items) != domain.GeneratedPromptCount {
		return nil, &ParseError{
			Err:    ErrWrongItemCount,
			Detail: fmt.Sprintf("expected %d items, got %d", domain.GeneratedPromptCount, len(items)),
		}
	}

	prompts := make([]domain.GeneratedPrompt, 0, len(items))
	for _, item := range items {
		fields, _ := item.(map[string]any)
		prompts = append(prompts, promptFromFields(fields, domain.FallbackPlatform))
	}
	return prompts, nil
}

// ParseSingle turns raw provider output for a single-platform request into
// one prompt. The text is decoded as JSON, falling back to the span from the
// first '{' to the last '}'. The returned prompt always carries the display
// style of the requested platform.
func ParseSingle(raw, platform string) (*domain.GeneratedPrompt, error) {
	value, err := decodeLenient(raw, '{', '}')
	if err != nil {
		return nil, err
	}

	fields, ok := value.(map[string]any)
	if !ok {
		return nil, &ParseError{Err: ErrUnexpectedShape, Detail: "not an object"}
	}

	prompt := promptFromFields(fields, platform)
	style, ok := domain.StyleFor(platform)
	if !ok {
		style, _ = domain.StyleFor(domain.PlatformChatGPT)
	}
	prompt.Icon = style.Icon
	prompt.Color = style.Color
	return &prompt, nil
}

// AssignPlatforms orders prompts to match domain.GeneratedPlatforms, one per
// platform. An item naming a generated platform takes that platform's slot
// when it is still free; the rest fill the remaining slots in order and take
// on the slot's platform. Reassigned items that carry only fallback display
// hints get the slot platform's style. The input must hold exactly
// domain.GeneratedPromptCount prompts; it is not modified.
func AssignPlatforms(prompts []domain.GeneratedPrompt) []domain.GeneratedPrompt {
	slots := make([]*domain.GeneratedPrompt, len(domain.GeneratedPlatforms))
	slotIndex := make(map[string]int, len(domain.GeneratedPlatforms))
	for i, p := range domain.GeneratedPlatforms {
		slotIndex[p] = i
	}

	var unplaced []domain.GeneratedPrompt
	for _, prompt := range prompts {
		if name, ok := domain.CanonicalPlatform(prompt.Platform); ok {
			i := slotIndex[name]
			if slots[i] == nil {
				prompt.Platform = name
				slots[i] = &prompt
				continue
			}
		}
		unplaced = append(unplaced, prompt)
	}

	for i := range slots {
		if slots[i] != nil || len(unplaced) == 0 {
			continue
		}
		prompt := unplaced[0]
		unplaced = unplaced[1:]

		// Styles that came with the item's original label no longer apply.
		var named domain.PlatformStyle
		if canonical, ok := domain.CanonicalPlatform(prompt.Platform); ok {
			named, _ = domain.StyleFor(canonical)
		}

		name := domain.GeneratedPlatforms[i]
		prompt.Platform = name
		style, _ := domain.StyleFor(name)
		if prompt.Icon == domain.FallbackIcon || (named.Icon != "" && prompt.Icon == named.Icon) {
			prompt.Icon = style.Icon
		}
		if prompt.Color == domain.FallbackColor || (named.Color != "" && prompt.Color == named.Color) {
			prompt.Color = style.Color
		}
		slots[i] = &prompt
	}

	out := make([]domain.GeneratedPrompt, 0, len(slots))
	for _, s := range slots {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// decodeLenient decodes raw as JSON, or failing that the substring between
// the first open and the last close delimiter.
func decodeLenient(raw string, open, closing byte) (any, error) {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err == nil {
		return value, nil
	}

	start := strings.IndexByte(raw, open)
	end := strings.LastIndexByte(raw, closing)
	if start < 0 || end <= start {
		return nil, &ParseError{Err: ErrUnparseableOutput, Detail: "no JSON found in reply"}
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &value); err != nil {
		return nil, &ParseError{Err: ErrUnparseableOutput, Detail: err.Error()}
	}
	return value, nil
}

func promptFromFields(fields map[string]any, platform string) domain.GeneratedPrompt {
	content := stringField(fields, "content", "")
	preview := stringField(fields, "preview", "")
	if preview == "" {
		preview = domain.PreviewOf(content)
	}
	return domain.GeneratedPrompt{
		Platform: stringField(fields, "platform", platform),
		Type:     stringField(fields, "type", domain.FallbackPromptType),
		Content:  content,
		Preview:  preview,
		Icon:     stringField(fields, "icon", domain.FallbackIcon),
		Color:    stringField(fields, "color", domain.FallbackColor),
	}
}

// stringField returns fields[key] when it is a non-empty string, else fallback.
func stringField(fields map[string]any, key, fallback string) string {
	if s, ok := fields[key].(string); ok && s != "" {
		return s
	}
	return fallback
}
