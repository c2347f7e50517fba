package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/promptnest/promptnest-api/internal/domain"
	"github.com/promptnest/promptnest-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockGenerationService is a mock implementation of service.GenerationService
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) Generate(ctx context.Context, userInput, sessionID string) (*service.GenerationResult, error) {
	args := m.Called(ctx, userInput, sessionID)
	result, _ := args.Get(0).(*service.GenerationResult)
	return result, args.Error(1)
}

func (m *MockGenerationService) GenerateSingle(ctx context.Context, userInput, platform string) (*domain.GeneratedPrompt, error) {
	args := m.Called(ctx, userInput, platform)
	prompt, _ := args.Get(0).(*domain.GeneratedPrompt)
	return prompt, args.Error(1)
}

func (m *MockGenerationService) RecentGenerations(ctx context.Context, limit int) ([]*domain.GenerationRecord, error) {
	args := m.Called(ctx, limit)
	records, _ := args.Get(0).([]*domain.GenerationRecord)
	return records, args.Error(1)
}

// MockCatalogService is a mock implementation of service.CatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]*domain.Category)
	return categories, args.Error(1)
}

func (m *MockCatalogService) ListPlatforms(ctx context.Context) ([]*domain.Platform, error) {
	args := m.Called(ctx)
	platforms, _ := args.Get(0).([]*domain.Platform)
	return platforms, args.Error(1)
}

func (m *MockCatalogService) ListPrompts(ctx context.Context, limit, offset int) ([]*domain.Prompt, error) {
	args := m.Called(ctx, limit, offset)
	return promptsArg(args)
}

func (m *MockCatalogService) TrendingPrompts(ctx context.Context, limit int) ([]*domain.Prompt, error) {
	return promptsArg(m.Called(ctx, limit))
}

func (m *MockCatalogService) FeaturedPrompts(ctx context.Context, limit int) ([]*domain.Prompt, error) {
	return promptsArg(m.Called(ctx, limit))
}

func (m *MockCatalogService) PromptsByPlatform(ctx context.Context, platformID uuid.UUID, limit int) ([]*domain.Prompt, error) {
	return promptsArg(m.Called(ctx, platformID, limit))
}

func (m *MockCatalogService) PromptsByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]*domain.Prompt, error) {
	return promptsArg(m.Called(ctx, categoryID, limit))
}

func (m *MockCatalogService) SearchPrompts(ctx context.Context, query string, limit int) ([]*domain.Prompt, error) {
	return promptsArg(m.Called(ctx, query, limit))
}

func (m *MockCatalogService) GetPrompt(ctx context.Context, id uuid.UUID, visitor service.Visitor) (*domain.Prompt, error) {
	args := m.Called(ctx, id, visitor)
	prompt, _ := args.Get(0).(*domain.Prompt)
	return prompt, args.Error(1)
}

func (m *MockCatalogService) RecordAction(ctx context.Context, promptID uuid.UUID, action domain.ActionType, visitor service.Visitor) error {
	return m.Called(ctx, promptID, action, visitor).Error(0)
}

func (m *MockCatalogService) Stats(ctx context.Context) (*service.CatalogStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*service.CatalogStats)
	return stats, args.Error(1)
}

func (m *MockCatalogService) SeedDefaults(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func promptsArg(args mock.Arguments) ([]*domain.Prompt, error) {
	prompts, _ := args.Get(0).([]*domain.Prompt)
	return prompts, args.Error(1)
}
