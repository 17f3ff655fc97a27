package repository

import (
	"context"
	"fmt"

	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/repository/dao"
)

var (
	ErrStadiumNotFound = dao.ErrStadiumNotFound
	ErrGameNotFound    = dao.ErrGameNotFound
)

type StadiumDAO interface {
	Insert(ctx context.Context, stadium dao.Stadium) (dao.Stadium, error)
	FindByID(ctx context.Context, id uint) (dao.Stadium, error)
	FindAll(ctx context.Context, limit, skip int) ([]dao.Stadium, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id uint, name *string, sectors []dao.Sector) (dao.Stadium, error)
}

type GameDAO interface {
	Insert(ctx context.Context, game dao.Game) (dao.Game, error)
	FindByID(ctx context.Context, id uint) (dao.Game, error)
	FindAll(ctx context.Context, limit, skip int) ([]dao.Game, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (dao.Game, error)
}

// CatalogRepository serves stadiums and the games played in them.
type CatalogRepository struct {
	stadiumDAO StadiumDAO
	gameDAO    GameDAO
}

func NewCatalogRepository(stadiumDAO StadiumDAO, gameDAO GameDAO) *CatalogRepository {
	return &CatalogRepository{
		stadiumDAO: stadiumDAO,
		gameDAO:    gameDAO,
	}
}

func (r *CatalogRepository) CreateStadium(ctx context.Context, stadium domain.Stadium) (domain.Stadium, error) {
	created, err := r.stadiumDAO.Insert(ctx, dao.Stadium{
		Name:    stadium.Name,
		Sectors: sectorsToDAO(stadium.Sectors),
	})
	if err != nil {
		return domain.Stadium{}, fmt.Errorf("r.stadiumDAO.Insert -> %w", err)
	}

	return stadiumToDomain(created), nil
}

func (r *CatalogRepository) FindStadiumByID(ctx context.Context, id uint) (domain.Stadium, error) {
	found, err := r.stadiumDAO.FindByID(ctx, id)
	if err != nil {
		return domain.Stadium{}, fmt.Errorf("r.stadiumDAO.FindByID -> %w", err)
	}

	return stadiumToDomain(found), nil
}

func (r *CatalogRepository) FindStadiums(ctx context.Context, page domain.Pagination) ([]domain.Stadium, int64, error) {
	found, err := r.stadiumDAO.FindAll(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, 0, fmt.Errorf("r.stadiumDAO.FindAll -> %w", err)
	}

	total, err := r.stadiumDAO.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("r.stadiumDAO.Count -> %w", err)
	}

	stadiums := make([]domain.Stadium, 0, len(found))
	for _, s := range found {
		stadiums = append(stadiums, stadiumToDomain(s))
	}

	return stadiums, total, nil
}

// UpdateStadium renames the stadium and replaces its sectors when sectors is non-nil.
func (r *CatalogRepository) UpdateStadium(ctx context.Context, id uint, name *string, sectors []domain.Sector) (domain.Stadium, error) {
	updated, err := r.stadiumDAO.Update(ctx, id, name, sectorsToDAO(sectors))
	if err != nil {
		return domain.Stadium{}, fmt.Errorf("r.stadiumDAO.Update -> %w", err)
	}

	return stadiumToDomain(updated), nil
}

func (r *CatalogRepository) CreateGame(ctx context.Context, game domain.Game) (domain.Game, error) {
	created, err := r.gameDAO.Insert(ctx, dao.Game{
		Name:      game.Name,
		Date:      game.Date,
		StadiumID: game.StadiumID,
		Image:     game.Image,
	})
	if err != nil {
		return domain.Game{}, fmt.Errorf("r.gameDAO.Insert -> %w", err)
	}

	return gameToDomain(created), nil
}

func (r *CatalogRepository) FindGameByID(ctx context.Context, id uint) (domain.Game, error) {
	found, err := r.gameDAO.FindByID(ctx, id)
	if err != nil {
		return domain.Game{}, fmt.Errorf("r.gameDAO.FindByID -> %w", err)
	}

	return gameToDomain(found), nil
}

func (r *CatalogRepository) FindGames(ctx context.Context, page domain.Pagination) ([]domain.Game, int64, error) {
	found, err := r.gameDAO.FindAll(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, 0, fmt.Errorf("r.gameDAO.FindAll -> %w", err)
	}

	total, err := r.gameDAO.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("r.gameDAO.Count -> %w", err)
	}

	games := make([]domain.Game, 0, len(found))
	for _, g := range found {
		games = append(games, gameToDomain(g))
	}

	return games, total, nil
}

func (r *CatalogRepository) UpdateGame(ctx context.Context, id uint, patch domain.GamePatch) (domain.Game, error) {
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Date != nil {
		fields["date"] = *patch.Date
	}
	if patch.StadiumID != nil {
		fields["stadium_id"] = *patch.StadiumID
	}
	if patch.Image != nil {
		fields["image"] = *patch.Image
	}

	updated, err := r.gameDAO.Update(ctx, id, fields)
	if err != nil {
		return domain.Game{}, fmt.Errorf("r.gameDAO.Update -> %w", err)
	}

	return gameToDomain(updated), nil
}
