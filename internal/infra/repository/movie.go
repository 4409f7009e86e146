package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/filmapi/internal/domain"
	"github.com/totegamma/filmapi/internal/infra/database/models"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) FindAll(ctx context.Context) ([]domain.Movie, error) {
	var rows []models.Movie
	err := conn(ctx, r.db).Order("id").Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "MovieRepository.FindAll")
	}
	return r.attach(ctx, rows)
}

func (r *MovieRepository) FindByID(ctx context.Context, id int64) (domain.Movie, error) {
	var row models.Movie
	err := conn(ctx, r.db).Take(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Movie{}, domain.NotFoundError{Kind: domain.KindMovie, ID: id}
		}
		return domain.Movie{}, errors.Wrap(err, "MovieRepository.FindByID")
	}

	result, err := r.attach(ctx, []models.Movie{row})
	if err != nil {
		return domain.Movie{}, err
	}
	return result[0], nil
}

func (r *MovieRepository) Insert(ctx context.Context, m domain.Movie) (domain.Movie, error) {
	row := models.Movie{
		Title:       m.Title,
		Genre:       m.Genre,
		ReleaseYear: m.ReleaseYear,
		Director:    m.Director,
		PictureURL:  m.PictureURL,
		TrailerURL:  m.TrailerURL,
		FranchiseID: m.FranchiseID,
	}
	err := conn(ctx, r.db).Omit(clause.Associations).Create(&row).Error
	if err != nil {
		return domain.Movie{}, errors.Wrap(err, "MovieRepository.Insert")
	}
	return toMovie(row, []int64{}), nil
}

// UpdateScalars never touches franchise_id.
func (r *MovieRepository) UpdateScalars(ctx context.Context, id int64, m domain.Movie) error {
	err := conn(ctx, r.db).
		Model(&models.Movie{ID: id}).
		Select("title", "genre", "release_year", "director", "picture_url", "trailer_url").
		Updates(models.Movie{
			Title:       m.Title,
			Genre:       m.Genre,
			ReleaseYear: m.ReleaseYear,
			Director:    m.Director,
			PictureURL:  m.PictureURL,
			TrailerURL:  m.TrailerURL,
		}).Error
	if err != nil {
		return errors.Wrap(err, "MovieRepository.UpdateScalars")
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	err := conn(ctx, r.db).Delete(&models.Movie{}, id).Error
	if err != nil {
		return errors.Wrap(err, "MovieRepository.Delete")
	}
	return nil
}

func (r *MovieRepository) FindByFranchise(ctx context.Context, franchiseID int64) ([]domain.Movie, error) {
	var rows []models.Movie
	err := conn(ctx, r.db).Where("franchise_id = ?", franchiseID).Order("id").Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "MovieRepository.FindByFranchise")
	}
	return r.attach(ctx, rows)
}

func (r *MovieRepository) attach(ctx context.Context, rows []models.Movie) ([]domain.Movie, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	characters := make(map[int64][]int64, len(rows))
	if len(ids) > 0 {
		var edges []models.CharacterMovie
		err := conn(ctx, r.db).
			Where("movie_id IN ?", ids).
			Order("character_id").
			Find(&edges).Error
		if err != nil {
			return nil, errors.Wrap(err, "MovieRepository.attach")
		}
		for _, edge := range edges {
			characters[edge.MovieID] = append(characters[edge.MovieID], edge.CharacterID)
		}
	}

	result := make([]domain.Movie, 0, len(rows))
	for _, row := range rows {
		result = append(result, toMovie(row, characters[row.ID]))
	}
	return result, nil
}

func toMovie(row models.Movie, characters []int64) domain.Movie {
	if characters == nil {
		characters = []int64{}
	}
	return domain.Movie{
		ID:          row.ID,
		Title:       row.Title,
		Genre:       row.Genre,
		ReleaseYear: row.ReleaseYear,
		Director:    row.Director,
		PictureURL:  row.PictureURL,
		TrailerURL:  row.TrailerURL,
		FranchiseID: row.FranchiseID,
		Characters:  characters,
	}
}
