package usecase

import (
	"context"
	"errors"
	"testing"

	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/listing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndRemoveFavorites_PublishEvents(t *testing.T) {
	repo := newFakeFavoritesRepo()
	events := &fakeEvents{}
	userID := uuid.New()
	ctx := context.Background()

	require.NoError(t, NewAddToFavoritesUseCase(repo, events).Execute(ctx, userID, "1"))
	require.NoError(t, NewRemoveFromFavoritesUseCase(repo, events).Execute(ctx, userID, "1"))

	require.Len(t, events.events, 2)
	assert.Equal(t, domain.FavoriteAdded, events.events[0].Type)
	assert.Equal(t, domain.FavoriteRemoved, events.events[1].Type)
	assert.Equal(t, userID, events.events[0].UserID)
	assert.Equal(t, "1", events.events[1].PropertyID)
	assert.False(t, events.events[0].OccurredAt.IsZero())
}

func TestAddToFavorites_PublishFailureIsNotReturned(t *testing.T) {
	repo := newFakeFavoritesRepo()
	userID := uuid.New()

	err := NewAddToFavoritesUseCase(repo, &fakeEvents{err: errors.New("broker down")}).
		Execute(context.Background(), userID, "7")

	require.NoError(t, err)
	ids, _ := repo.FindFavoriteIDsByUser(context.Background(), userID)
	assert.Equal(t, []string{"7"}, ids)
}

func TestAddToFavorites_Errors(t *testing.T) {
	repoErr := errors.New("db down")
	repo := newFakeFavoritesRepo()
	repo.err = repoErr
	events := &fakeEvents{}

	err := NewAddToFavoritesUseCase(repo, events).Execute(context.Background(), uuid.New(), "1")
	assert.ErrorIs(t, err, repoErr)
	assert.Empty(t, events.events)

	err = NewAddToFavoritesUseCase(newFakeFavoritesRepo(), nil).Execute(context.Background(), uuid.New(), "  ")
	assert.ErrorIs(t, err, domain.ErrMissingID)
}

func TestGetUserFavorites_KeepsFavoriteOrder(t *testing.T) {
	repo := newFakeFavoritesRepo()
	userID := uuid.New()
	ctx := context.Background()
	add := NewAddToFavoritesUseCase(repo, nil)
	for _, id := range []string{"1", "gone", "3", "2"} {
		require.NoError(t, add.Execute(ctx, userID, id))
	}

	uc := NewGetUserFavoritesUseCase(repo, &fakeSource{records: catalogRaws()}, listing.NewPresenter(listing.PresenterOptions{}))
	res, err := uc.Execute(ctx, userID, 3, 0)

	require.NoError(t, err)
	assert.EqualValues(t, 4, res.TotalCount)
	assert.Equal(t, 1, res.CurrentPage)
	assert.Equal(t, 3, res.ItemsPerPage)
	require.Len(t, res.Cards, 2)
	assert.Equal(t, "2", res.Cards[0].ID)
	assert.Equal(t, "3", res.Cards[1].ID)
	assert.Equal(t, "R$ 2.500/mês", res.Cards[1].PriceLabel)
}

func TestGetUserFavorites_EmptyPageSkipsSource(t *testing.T) {
	source := &fakeSource{records: catalogRaws()}
	uc := NewGetUserFavoritesUseCase(newFakeFavoritesRepo(), source, listing.NewPresenter(listing.PresenterOptions{}))

	res, err := uc.Execute(context.Background(), uuid.New(), 10, 20)

	require.NoError(t, err)
	assert.NotNil(t, res.Cards)
	assert.Empty(t, res.Cards)
	assert.Equal(t, 3, res.CurrentPage)
	assert.Zero(t, source.calls)
}

func TestGetUserFavoriteIDs(t *testing.T) {
	repo := newFakeFavoritesRepo()
	userID := uuid.New()

	ids, err := NewGetUserFavoriteIDsUseCase(repo).Execute(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, ids)

	require.NoError(t, repo.Add(context.Background(), userID, "9"))
	ids, err = NewGetUserFavoriteIDsUseCase(repo).Execute(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"9"}, ids)
}

func TestGetUserFavorites_DuplicateIDResolvesLikeDetails(t *testing.T) {
	raws := []domain.RawRecord{
		{ID: domain.Str("1"), Titulo: domain.Str("Primeira")},
		{ID: domain.Str("1"), Titulo: domain.Str("Segunda")},
	}
	presenter := listing.NewPresenter(listing.PresenterOptions{})
	repo := newFakeFavoritesRepo()
	userID := uuid.New()
	require.NoError(t, repo.Add(context.Background(), userID, "1"))

	favs, err := NewGetUserFavoritesUseCase(repo, &fakeSource{records: raws}, presenter).Execute(context.Background(), userID, 10, 0)
	require.NoError(t, err)
	details, err := NewGetPropertyDetailsUseCase(&fakeSource{records: raws}, presenter).Execute(context.Background(), "1")
	require.NoError(t, err)

	require.Len(t, favs.Cards, 1)
	assert.Equal(t, "Primeira", favs.Cards[0].Title)
	assert.Equal(t, "Primeira", details.Card.Title)
}
