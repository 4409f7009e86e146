package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/totegamma/filmapi/internal/domain"
	"github.com/totegamma/filmapi/internal/infra/database/models"
)

type FranchiseRepository struct {
	db *gorm.DB
}

func NewFranchiseRepository(db *gorm.DB) *FranchiseRepository {
	return &FranchiseRepository{db: db}
}

func (r *FranchiseRepository) FindAll(ctx context.Context) ([]domain.Franchise, error) {
	var rows []models.Franchise
	err := conn(ctx, r.db).Order("id").Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "FranchiseRepository.FindAll")
	}
	return r.attach(ctx, rows)
}

func (r *FranchiseRepository) FindByID(ctx context.Context, id int64) (domain.Franchise, error) {
	var row models.Franchise
	err := conn(ctx, r.db).Take(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Franchise{}, domain.NotFoundError{Kind: domain.KindFranchise, ID: id}
		}
		return domain.Franchise{}, errors.Wrap(err, "FranchiseRepository.FindByID")
	}

	result, err := r.attach(ctx, []models.Franchise{row})
	if err != nil {
		return domain.Franchise{}, err
	}
	return result[0], nil
}

func (r *FranchiseRepository) Insert(ctx context.Context, f domain.Franchise) (domain.Franchise, error) {
	row := models.Franchise{
		Name:        f.Name,
		Description: f.Description,
	}
	err := conn(ctx, r.db).Create(&row).Error
	if err != nil {
		return domain.Franchise{}, errors.Wrap(err, "FranchiseRepository.Insert")
	}
	return toFranchise(row, []int64{}), nil
}

func (r *FranchiseRepository) UpdateScalars(ctx context.Context, id int64, f domain.Franchise) error {
	err := conn(ctx, r.db).
		Model(&models.Franchise{ID: id}).
		Select("name", "description").
		Updates(models.Franchise{
			Name:        f.Name,
			Description: f.Description,
		}).Error
	if err != nil {
		return errors.Wrap(err, "FranchiseRepository.UpdateScalars")
	}
	return nil
}

func (r *FranchiseRepository) Delete(ctx context.Context, id int64) error {
	err := conn(ctx, r.db).Delete(&models.Franchise{}, id).Error
	if err != nil {
		return errors.Wrap(err, "FranchiseRepository.Delete")
	}
	return nil
}

func (r *FranchiseRepository) attach(ctx context.Context, rows []models.Franchise) ([]domain.Franchise, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	movies := make(map[int64][]int64, len(rows))
	if len(ids) > 0 {
		var members []models.Movie
		err := conn(ctx, r.db).
			Select("id", "franchise_id").
			Where("franchise_id IN ?", ids).
			Order("id").
			Find(&members).Error
		if err != nil {
			return nil, errors.Wrap(err, "FranchiseRepository.attach")
		}
		for _, m := range members {
			movies[*m.FranchiseID] = append(movies[*m.FranchiseID], m.ID)
		}
	}

	result := make([]domain.Franchise, 0, len(rows))
	for _, row := range rows {
		result = append(result, toFranchise(row, movies[row.ID]))
	}
	return result, nil
}

func toFranchise(row models.Franchise, movies []int64) domain.Franchise {
	if movies == nil {
		movies = []int64{}
	}
	return domain.Franchise{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Movies:      movies,
	}
}
