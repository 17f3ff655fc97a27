package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/notify"
	"github.com/estadio/stadium-api/internal/repository"
)

var (
	ErrStadiumNotFound = repository.ErrStadiumNotFound
	ErrGameNotFound    = repository.ErrGameNotFound
)

type CatalogRepository interface {
	CreateStadium(ctx context.Context, stadium domain.Stadium) (domain.Stadium, error)
	FindStadiumByID(ctx context.Context, id uint) (domain.Stadium, error)
	FindStadiums(ctx context.Context, page domain.Pagination) ([]domain.Stadium, int64, error)
	UpdateStadium(ctx context.Context, id uint, name *string, sectors []domain.Sector) (domain.Stadium, error)
	CreateGame(ctx context.Context, game domain.Game) (domain.Game, error)
	FindGameByID(ctx context.Context, id uint) (domain.Game, error)
	FindGames(ctx context.Context, page domain.Pagination) ([]domain.Game, int64, error)
	UpdateGame(ctx context.Context, id uint, patch domain.GamePatch) (domain.Game, error)
}

type CatalogService struct {
	repo     CatalogRepository
	notifier notify.Notifier
}

func NewCatalogService(repo CatalogRepository, notifier notify.Notifier) *CatalogService {
	return &CatalogService{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *CatalogService) CreateStadium(ctx context.Context, stadium domain.Stadium) (domain.Stadium, error) {
	created, err := s.repo.CreateStadium(ctx, stadium)
	if err != nil {
		return domain.Stadium{}, fmt.Errorf("s.repo.CreateStadium -> %w", err)
	}

	return created, nil
}

func (s *CatalogService) GetStadium(ctx context.Context, id uint) (domain.Stadium, error) {
	stadium, err := s.repo.FindStadiumByID(ctx, id)
	if err != nil {
		return domain.Stadium{}, fmt.Errorf("s.repo.FindStadiumByID -> %w", err)
	}

	return stadium, nil
}

func (s *CatalogService) ListStadiums(ctx context.Context, page domain.Pagination) ([]domain.Stadium, domain.PageInfo, error) {
	stadiums, total, err := s.repo.FindStadiums(ctx, page)
	if err != nil {
		return nil, domain.PageInfo{}, fmt.Errorf("s.repo.FindStadiums -> %w", err)
	}

	return stadiums, domain.NewPageInfo(page, total), nil
}

func (s *CatalogService) UpdateStadium(ctx context.Context, id uint, name *string, sectors []domain.Sector) (domain.Stadium, error) {
	stadium, err := s.repo.UpdateStadium(ctx, id, name, sectors)
	if err != nil {
		return domain.Stadium{}, fmt.Errorf("s.repo.UpdateStadium -> %w", err)
	}

	return stadium, nil
}

// CreateGame stores the game and broadcasts game:created.
func (s *CatalogService) CreateGame(ctx context.Context, game domain.Game) (domain.Game, error) {
	if err := s.checkStadium(ctx, game.StadiumID); err != nil {
		return domain.Game{}, err
	}

	created, err := s.repo.CreateGame(ctx, game)
	if err != nil {
		return domain.Game{}, fmt.Errorf("s.repo.CreateGame -> %w", err)
	}

	s.notifier.Emit(ctx, notify.NewEvent(
		domain.EventGameCreated,
		fmt.Sprintf("New game created: %s", created.Name),
		map[string]interface{}{"game": created},
	))

	return created, nil
}

func (s *CatalogService) GetGame(ctx context.Context, id uint) (domain.Game, error) {
	game, err := s.repo.FindGameByID(ctx, id)
	if err != nil {
		return domain.Game{}, fmt.Errorf("s.repo.FindGameByID -> %w", err)
	}

	return game, nil
}

func (s *CatalogService) ListGames(ctx context.Context, page domain.Pagination) ([]domain.Game, domain.PageInfo, error) {
	games, total, err := s.repo.FindGames(ctx, page)
	if err != nil {
		return nil, domain.PageInfo{}, fmt.Errorf("s.repo.FindGames -> %w", err)
	}

	return games, domain.NewPageInfo(page, total), nil
}

func (s *CatalogService) UpdateGame(ctx context.Context, id uint, patch domain.GamePatch) (domain.Game, error) {
	if err := s.checkStadium(ctx, patch.StadiumID); err != nil {
		return domain.Game{}, err
	}

	game, err := s.repo.UpdateGame(ctx, id, patch)
	if err != nil {
		return domain.Game{}, fmt.Errorf("s.repo.UpdateGame -> %w", err)
	}

	return game, nil
}

func (s *CatalogService) checkStadium(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}

	if _, err := s.repo.FindStadiumByID(ctx, *id); err != nil {
		if errors.Is(err, repository.ErrStadiumNotFound) {
			return ErrStadiumNotFound
		}
		return fmt.Errorf("s.repo.FindStadiumByID -> %w", err)
	}

	return nil
}
