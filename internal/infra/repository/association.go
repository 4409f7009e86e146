package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/filmapi/internal/domain"
	"github.com/totegamma/filmapi/internal/infra/database/models"
)

// AssociationRepository stores every relationship. Character/movie edges live in
// the character_movies join table, franchise membership in movies.franchise_id.
type AssociationRepository struct {
	db *gorm.DB
}

func NewAssociationRepository(db *gorm.DB) *AssociationRepository {
	return &AssociationRepository{db: db}
}

// Replace makes targetIDs the exact related set of ownerID. Targets are expected
// to exist and be unique.
func (r *AssociationRepository) Replace(ctx context.Context, rel domain.Relationship, ownerID int64, targetIDs []int64) error {
	return runInTransaction(ctx, r.db, func(ctx context.Context) error {
		tx := conn(ctx, r.db)
		switch rel.Name {
		case domain.CharacterMovies.Name:
			return r.replaceEdges(tx, "character_id", ownerID, targetIDs, func(id int64) models.CharacterMovie {
				return models.CharacterMovie{CharacterID: ownerID, MovieID: id}
			})
		case domain.MovieCharacters.Name:
			return r.replaceEdges(tx, "movie_id", ownerID, targetIDs, func(id int64) models.CharacterMovie {
				return models.CharacterMovie{CharacterID: id, MovieID: ownerID}
			})
		case domain.FranchiseMovies.Name:
			return r.replaceFranchise(tx, ownerID, targetIDs)
		default:
			return errors.Errorf("AssociationRepository.Replace: unknown relationship %q", rel.Name)
		}
	})
}

func (r *AssociationRepository) replaceEdges(tx *gorm.DB, ownerColumn string, ownerID int64, targetIDs []int64, edge func(int64) models.CharacterMovie) error {
	err := tx.Where(ownerColumn+" = ?", ownerID).Delete(&models.CharacterMovie{}).Error
	if err != nil {
		return errors.Wrap(err, "AssociationRepository.replaceEdges: clear")
	}

	if len(targetIDs) == 0 {
		return nil
	}

	rows := make([]models.CharacterMovie, 0, len(targetIDs))
	for _, id := range targetIDs {
		rows = append(rows, edge(id))
	}

	err = tx.Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&rows).Error
	if err != nil {
		return errors.Wrap(err, "AssociationRepository.replaceEdges: insert")
	}
	return nil
}

func (r *AssociationRepository) replaceFranchise(tx *gorm.DB, franchiseID int64, movieIDs []int64) error {
	err := tx.Model(&models.Movie{}).
		Where("franchise_id = ?", franchiseID).
		Update("franchise_id", nil).Error
	if err != nil {
		return errors.Wrap(err, "AssociationRepository.replaceFranchise: clear")
	}

	if len(movieIDs) == 0 {
		return nil
	}

	err = tx.Model(&models.Movie{}).
		Where("id IN ?", movieIDs).
		Update("franchise_id", franchiseID).Error
	if err != nil {
		return errors.Wrap(err, "AssociationRepository.replaceFranchise: assign")
	}
	return nil
}
