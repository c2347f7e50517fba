package domain

import (
	"time"

	"github.com/google/uuid"
)

// Platform is an AI platform the catalog groups prompts by.
type Platform struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	PromptCount int       `json:"promptCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Category is a topical grouping of catalog prompts.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	PromptCount int       `json:"promptCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewPlatform creates a Platform with a fresh ID.
func NewPlatform(name, description, icon, color string) (*Platform, error) {
	p := &Platform{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Icon:        icon,
		Color:       color,
		CreatedAt:   time.Now().UTC(),
	}
	if err := validateGroup(p.ID, p.Name, p.Icon, p.Color); err != nil {
		return nil, err
	}
	return p, nil
}

// NewCategory creates a Category with a fresh ID.
func NewCategory(name, description, icon, color string) (*Category, error) {
	c := &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Icon:        icon,
		Color:       color,
		CreatedAt:   time.Now().UTC(),
	}
	if err := validateGroup(c.ID, c.Name, c.Icon, c.Color); err != nil {
		return nil, err
	}
	return c, nil
}

func validateGroup(id uuid.UUID, name, icon, color string) error {
	switch {
	case id == uuid.Nil:
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	case name == "":
		return NewValidationError("name", "cannot be empty", nil)
	case icon == "":
		return NewValidationError("icon", "cannot be empty", nil)
	case color == "":
		return NewValidationError("color", "cannot be empty", nil)
	}
	return nil
}

// Prompt is a curated catalog prompt. Platform and Category are populated
// on reads when the prompt references them.
type Prompt struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Preview     string     `json:"preview"`
	PlatformID  *uuid.UUID `json:"platformId,omitempty"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty"`
	Type        string     `json:"type"`
	Tags        []string   `json:"tags"`
	Views       int        `json:"views"`
	Copies      int        `json:"copies"`
	Rating      int        `json:"rating"`
	RatingCount int        `json:"ratingCount"`
	IsFeatured  bool       `json:"isFeatured"`
	IsTrending  bool       `json:"isTrending"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Platform *Platform `json:"platform,omitempty"`
	Category *Category `json:"category,omitempty"`
}

// DefaultPlatforms is the platform set seeded into an empty catalog.
var DefaultPlatforms = []Platform{
	{Name: "ChatGPT", Description: "OpenAI's conversational AI", Icon: "fab fa-openai", Color: "green"},
	{Name: "Midjourney", Description: "AI image generation", Icon: "fas fa-palette", Color: "purple"},
	{Name: "Claude", Description: "Anthropic's AI assistant", Icon: "fas fa-robot", Color: "orange"},
	{Name: "Gemini", Description: "Google's AI model", Icon: "fas fa-gem", Color: "cyan"},
	{Name: "DALL-E", Description: "OpenAI's image generator", Icon: "fas fa-image", Color: "blue"},
	{Name: "Veo3", Description: "Google's video AI", Icon: "fas fa-video", Color: "red"},
}

// DefaultCategories is the category set seeded into an empty catalog.
var DefaultCategories = []Category{
	{Name: "Business", Description: "Professional and business prompts", Icon: "fas fa-briefcase", Color: "blue"},
	{Name: "Creative", Description: "Art and creative prompts", Icon: "fas fa-paint-brush", Color: "purple"},
	{Name: "Programming", Description: "Coding and development", Icon: "fas fa-code", Color: "green"},
	{Name: "Writing", Description: "Content and copywriting", Icon: "fas fa-pen-fancy", Color: "pink"},
	{Name: "Marketing", Description: "Marketing and advertising", Icon: "fas fa-chart-line", Color: "cyan"},
	{Name: "Education", Description: "Learning and teaching", Icon: "fas fa-graduation-cap", Color: "yellow"},
	{Name: "SEO", Description: "Search optimization", Icon: "fas fa-search", Color: "orange"},
	{Name: "Research", Description: "Analysis and research", Icon: "fas fa-microscope", Color: "teal"},
}
