package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/wealthpath/expenses/internal/apperror"
	"github.com/wealthpath/expenses/internal/model"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CategoryRepositoryInterface defines the contract for category data access.
type CategoryRepositoryInterface interface {
	Create(ctx context.Context, c *model.Category) error
	GetByID(ctx context.Context, id string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id string) error
}

// CategoryService manages expense categories.
// Expenses and budget caps may outlive their category; reports fall back to the raw id.
type CategoryService struct {
	repo CategoryRepositoryInterface
}

func NewCategoryService(repo CategoryRepositoryInterface) *CategoryService {
	return &CategoryService{repo: repo}
}

type CategoryInput struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Create persists a category. A missing id is generated; a missing color gets the neutral default.
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*model.Category, error) {
	c, err := input.toCategory()
	if err != nil {
		return nil, err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	return c, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting category %s: %w", id, err)
	}
	return c, nil
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, input CategoryInput) (*model.Category, error) {
	c, err := input.toCategory()
	if err != nil {
		return nil, err
	}
	c.ID = id

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("updating category %s: %w", id, err)
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting category %s: %w", id, err)
	}
	return nil
}

func (in CategoryInput) toCategory() (*model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.ValidationError("name", "name is required")
	}
	if len(name) > 100 {
		return nil, apperror.ValidationError("name", "name must be at most 100 characters")
	}

	color := strings.TrimSpace(in.Color)
	if color == "" {
		color = DefaultCategoryColor
	}
	if !hexColor.MatchString(color) {
		return nil, apperror.ValidationError("color", "color must be #RRGGBB")
	}

	return &model.Category{
		ID:    strings.TrimSpace(in.ID),
		Name:  name,
		Color: strings.ToUpper(color),
	}, nil
}
