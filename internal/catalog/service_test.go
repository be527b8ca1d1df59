package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	items map[string]*Item
	seq   int
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[string]*Item{}}
}

func (m *memRepo) Create(_ context.Context, item *Item) error {
	m.seq++
	item.ID = string(rune('a' + m.seq))
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Item, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (m *memRepo) List(_ context.Context, filter Filter) ([]*Item, error) {
	var out []*Item
	for _, it := range m.items {
		if filter.ActiveOnly && !it.Active {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (m *memRepo) Update(_ context.Context, item *Item) error {
	if _, ok := m.items[item.ID]; !ok {
		return ErrNotFound
	}
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "  ", DurationMinutes: 30})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.Create(ctx, CreateRequest{Name: "Skin fade", DurationMinutes: 0})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = svc.Create(ctx, CreateRequest{Name: "Skin fade", DurationMinutes: 45, Price: -1})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	item, err := svc.Create(ctx, CreateRequest{Name: " Skin fade ", DurationMinutes: 45, Price: 22, Active: true})
	require.NoError(t, err)
	assert.Equal(t, "Skin fade", item.Name)
	assert.NotEmpty(t, item.ID)
}

func TestListActiveAndUpdate(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	cut, err := svc.Create(ctx, CreateRequest{Name: "Classic cut", DurationMinutes: 30, Price: 18, Active: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{Name: "Hot towel shave", DurationMinutes: 45, Price: 25})
	require.NoError(t, err)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Classic cut", active[0].Name)

	zero := 0
	_, err = svc.Update(ctx, cut.ID, UpdateRequest{DurationMinutes: &zero})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	off := false
	updated, err := svc.Update(ctx, cut.ID, UpdateRequest{Active: &off})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	_, err = svc.Update(ctx, "missing", UpdateRequest{Active: &off})
	assert.ErrorIs(t, err, ErrNotFound)
}
