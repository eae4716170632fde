package usecase

import (
	"context"
	"sync"

	"catalog-service/internal/core/domain"

	"github.com/google/uuid"
)

type fakeSource struct {
	records []domain.RawRecord
	err     error
	calls   int
}

func (f *fakeSource) FetchRecords(context.Context) ([]domain.RawRecord, error) {
	f.calls++
	return f.records, f.err
}

type fakeFavoritesRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID][]string
	err   error
}

func newFakeFavoritesRepo() *fakeFavoritesRepo {
	return &fakeFavoritesRepo{items: make(map[uuid.UUID][]string)}
}

func (f *fakeFavoritesRepo) Add(_ context.Context, userID uuid.UUID, propertyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, id := range f.items[userID] {
		if id == propertyID {
			return nil
		}
	}
	// newest first
	f.items[userID] = append([]string{propertyID}, f.items[userID]...)
	return nil
}

func (f *fakeFavoritesRepo) Remove(_ context.Context, userID uuid.UUID, propertyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	kept := f.items[userID][:0]
	for _, id := range f.items[userID] {
		if id != propertyID {
			kept = append(kept, id)
		}
	}
	f.items[userID] = kept
	return nil
}

func (f *fakeFavoritesRepo) FindPaginatedByUser(_ context.Context, userID uuid.UUID, limit, offset int) (*domain.PaginatedFavoriteIDs, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	all := f.items[userID]
	page := []string{}
	if offset < len(all) {
		page = all[offset:min(offset+limit, len(all))]
	}
	return &domain.PaginatedFavoriteIDs{
		PropertyIDs:  page,
		TotalCount:   int64(len(all)),
		CurrentPage:  offset/limit + 1,
		ItemsPerPage: limit,
	}, nil
}

func (f *fakeFavoritesRepo) FindFavoriteIDsByUser(_ context.Context, userID uuid.UUID) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]string(nil), f.items[userID]...), nil
}

type fakeEvents struct {
	events []domain.FavoriteEvent
	err    error
}

func (f *fakeEvents) PublishFavoriteEvent(_ context.Context, event domain.FavoriteEvent) error {
	f.events = append(f.events, event)
	return f.err
}

func catalogRaws() []domain.RawRecord {
	return []domain.RawRecord{
		{ID: domain.Str("1"), Titulo: domain.Str("Casa no Centro"), Slug: &domain.RawSlug{Current: "casa-centro"},
			Preco: domain.Num(500000), TipoImovel: domain.Str("casa"), Bairro: domain.Str("Centro"),
			Cidade: domain.Str("Guararema"), Dormitorios: domain.Num(3), Finalidade: domain.Str("Venda")},
		{ID: domain.Str("2"), Titulo: domain.Str("Apartamento"), Preco: domain.Num(300000),
			TipoImovel: domain.Str("apartamento"), Bairro: domain.Str("Jardim"), Cidade: domain.Str("Mogi"),
			Dormitorios: domain.Num(2), Finalidade: domain.Str("Venda")},
		{Titulo: domain.Str("sem id")},
		{ID: domain.Str("3"), Titulo: domain.Str("Sala"), Preco: domain.Num(2500), TipoImovel: domain.Str("comercial"),
			Bairro: domain.Str("Centro"), Cidade: domain.Str("Mogi"), Finalidade: domain.Str("Aluguel")},
		{ID: domain.Str("4"), Titulo: domain.Str("Terreno"), TipoImovel: domain.Str("terreno"), Bairro: domain.Str("Itapema")},
	}
}
