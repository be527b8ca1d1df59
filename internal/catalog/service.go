package catalog

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name            string
	Price           float64
	DurationMinutes int
	Active          bool
}

type UpdateRequest struct {
	Name            *string
	Price           *float64
	DurationMinutes *int
	Active          *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	ListActive(ctx context.Context) ([]*Item, error)
	ListAll(ctx context.Context) ([]*Item, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Item, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Item, error) {
	item := &Item{
		Name:            strings.TrimSpace(req.Name),
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Active:          req.Active,
	}
	if err := validate(item); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListActive(ctx context.Context) ([]*Item, error) {
	return s.repo.List(ctx, Filter{ActiveOnly: true})
}

func (s *service) ListAll(ctx context.Context) ([]*Item, error) {
	return s.repo.List(ctx, Filter{})
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		item.DurationMinutes = *req.DurationMinutes
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	if err := validate(item); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func validate(item *Item) error {
	if item.Name == "" {
		return ErrEmptyName
	}
	if item.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if item.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}
