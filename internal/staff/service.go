package staff

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name   string
	Email  string
	Active bool
}

type UpdateRequest struct {
	Name   *string
	Email  *string
	Active *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Staff, error)
	GetByID(ctx context.Context, id string) (*Staff, error)
	ListActive(ctx context.Context) ([]*Staff, error)
	ListAll(ctx context.Context) ([]*Staff, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Staff, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Staff, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	st := &Staff{
		Name:   name,
		Email:  strings.ToLower(strings.TrimSpace(req.Email)),
		Active: req.Active,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Staff, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListActive(ctx context.Context) ([]*Staff, error) {
	return s.repo.List(ctx, true)
}

func (s *service) ListAll(ctx context.Context) ([]*Staff, error) {
	return s.repo.List(ctx, false)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Staff, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		st.Name = name
	}
	if req.Email != nil {
		st.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Active != nil {
		st.Active = *req.Active
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}
