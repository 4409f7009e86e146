package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/filmapi/internal/domain"
	"github.com/totegamma/filmapi/internal/infra/database/models"
)

type CharacterRepository struct {
	db *gorm.DB
}

func NewCharacterRepository(db *gorm.DB) *CharacterRepository {
	return &CharacterRepository{db: db}
}

func (r *CharacterRepository) FindAll(ctx context.Context) ([]domain.Character, error) {
	var rows []models.Character
	err := conn(ctx, r.db).Order("id").Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "CharacterRepository.FindAll")
	}
	return r.attach(ctx, rows)
}

func (r *CharacterRepository) FindByID(ctx context.Context, id int64) (domain.Character, error) {
	var row models.Character
	err := conn(ctx, r.db).Take(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Character{}, domain.NotFoundError{Kind: domain.KindCharacter, ID: id}
		}
		return domain.Character{}, errors.Wrap(err, "CharacterRepository.FindByID")
	}

	result, err := r.attach(ctx, []models.Character{row})
	if err != nil {
		return domain.Character{}, err
	}
	return result[0], nil
}

func (r *CharacterRepository) Insert(ctx context.Context, c domain.Character) (domain.Character, error) {
	row := models.Character{
		FullName:   c.FullName,
		Alias:      c.Alias,
		Gender:     c.Gender,
		PictureURL: c.PictureURL,
	}
	err := conn(ctx, r.db).Omit(clause.Associations).Create(&row).Error
	if err != nil {
		return domain.Character{}, errors.Wrap(err, "CharacterRepository.Insert")
	}
	return toCharacter(row, []int64{}), nil
}

func (r *CharacterRepository) UpdateScalars(ctx context.Context, id int64, c domain.Character) error {
	err := conn(ctx, r.db).
		Model(&models.Character{ID: id}).
		Select("full_name", "alias", "gender", "picture_url").
		Updates(models.Character{
			FullName:   c.FullName,
			Alias:      c.Alias,
			Gender:     c.Gender,
			PictureURL: c.PictureURL,
		}).Error
	if err != nil {
		return errors.Wrap(err, "CharacterRepository.UpdateScalars")
	}
	return nil
}

func (r *CharacterRepository) Delete(ctx context.Context, id int64) error {
	err := conn(ctx, r.db).Delete(&models.Character{}, id).Error
	if err != nil {
		return errors.Wrap(err, "CharacterRepository.Delete")
	}
	return nil
}

func (r *CharacterRepository) FindByMovie(ctx context.Context, movieID int64) ([]domain.Character, error) {
	var rows []models.Character
	err := conn(ctx, r.db).
		Joins("JOIN character_movies ON character_movies.character_id = characters.id").
		Where("character_movies.movie_id = ?", movieID).
		Order("characters.id").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "CharacterRepository.FindByMovie")
	}
	return r.attach(ctx, rows)
}

// FindByFranchise returns the distinct characters appearing in any movie of the
// franchise.
func (r *CharacterRepository) FindByFranchise(ctx context.Context, franchiseID int64) ([]domain.Character, error) {
	db := conn(ctx, r.db)
	appearing := db.Model(&models.CharacterMovie{}).
		Select("character_movies.character_id").
		Joins("JOIN movies ON movies.id = character_movies.movie_id").
		Where("movies.franchise_id = ?", franchiseID)

	var rows []models.Character
	err := db.Where("id IN (?)", appearing).Order("id").Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "CharacterRepository.FindByFranchise")
	}
	return r.attach(ctx, rows)
}

// attach loads the movie ids of every row in one query.
func (r *CharacterRepository) attach(ctx context.Context, rows []models.Character) ([]domain.Character, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	movies := make(map[int64][]int64, len(rows))
	if len(ids) > 0 {
		var edges []models.CharacterMovie
		err := conn(ctx, r.db).
			Where("character_id IN ?", ids).
			Order("movie_id").
			Find(&edges).Error
		if err != nil {
			return nil, errors.Wrap(err, "CharacterRepository.attach")
		}
		for _, edge := range edges {
			movies[edge.CharacterID] = append(movies[edge.CharacterID], edge.MovieID)
		}
	}

	result := make([]domain.Character, 0, len(rows))
	for _, row := range rows {
		result = append(result, toCharacter(row, movies[row.ID]))
	}
	return result, nil
}

func toCharacter(row models.Character, movies []int64) domain.Character {
	if movies == nil {
		movies = []int64{}
	}
	return domain.Character{
		ID:         row.ID,
		FullName:   row.FullName,
		Alias:      row.Alias,
		Gender:     row.Gender,
		PictureURL: row.PictureURL,
		Movies:     movies,
	}
}
