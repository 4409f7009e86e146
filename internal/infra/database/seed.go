package database

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/filmapi/internal/infra/database/models"
)

func ptr[T any](v T) *T {
	return &v
}

// Seed fills an empty catalog with a small sample set. It does nothing when any
// character already exists.
func Seed(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Character{}).Count(&count).Error; err != nil {
			return errors.Wrap(err, "Seed: count characters")
		}
		if count > 0 {
			log.Debug("catalog already populated, skipping seed", zap.Int64("characters", count))
			return nil
		}

		characters := []models.Character{
			{FullName: "John Smith", Alias: ptr("Captain Hero"), Gender: "Male", PictureURL: "https://example.com/john_smith.jpg"},
			{FullName: "Jane Doe", Alias: ptr("Wonder Woman"), Gender: "Female", PictureURL: "https://example.com/jane_doe.jpg"},
			{FullName: "David Johnson", Alias: ptr("Spider-Man"), Gender: "Male", PictureURL: "https://example.com/david_johnson.jpg"},
		}
		if err := tx.Create(&characters).Error; err != nil {
			return errors.Wrap(err, "Seed: create characters")
		}

		franchises := []models.Franchise{
			{Name: "Marvel Cinematic Universe", Description: "A series of superhero films produced by Marvel Studios."},
			{Name: "Wonder Woman", Description: "A superhero film franchise based on the DC Comics character Wonder Woman."},
		}
		if err := tx.Create(&franchises).Error; err != nil {
			return errors.Wrap(err, "Seed: create franchises")
		}

		mcu, ww := franchises[0].ID, franchises[1].ID
		movies := []models.Movie{
			{
				Title:       "Avengers: Endgame",
				Genre:       "Action, Adventure, Sci-Fi",
				ReleaseYear: 2019,
				Director:    "Anthony Russo, Joe Russo",
				PictureURL:  "https://example.com/avengers_endgame.jpg",
				TrailerURL:  "https://www.youtube.com/watch?v=TcMBFSGVi1c",
				FranchiseID: &mcu,
			},
			{
				Title:       "Wonder Woman 1984",
				Genre:       "Action, Adventure, Fantasy",
				ReleaseYear: 2020,
				Director:    "Patty Jenkins",
				PictureURL:  "https://example.com/wonder_woman_1984.jpg",
				TrailerURL:  "https://www.youtube.com/watch?v=sfM7_JLk-84",
				FranchiseID: &ww,
			},
			{
				Title:       "Spider-Man: No Way Home",
				Genre:       "Action, Adventure, Fantasy",
				ReleaseYear: 2021,
				Director:    "Jon Watts",
				PictureURL:  "https://example.com/spiderman_no_way_home.jpg",
				TrailerURL:  "https://www.youtube.com/watch?v=JfVOs4VSpmA",
				FranchiseID: &mcu,
			},
		}
		if err := tx.Omit(clause.Associations).Create(&movies).Error; err != nil {
			return errors.Wrap(err, "Seed: create movies")
		}

		edges := []models.CharacterMovie{
			{CharacterID: characters[0].ID, MovieID: movies[0].ID},
			{CharacterID: characters[1].ID, MovieID: movies[0].ID},
			{CharacterID: characters[1].ID, MovieID: movies[1].ID},
			{CharacterID: characters[2].ID, MovieID: movies[2].ID},
		}
		if err := tx.Omit(clause.Associations).Create(&edges).Error; err != nil {
			return errors.Wrap(err, "Seed: create character movies")
		}

		log.Info("seeded catalog",
			zap.Int("characters", len(characters)),
			zap.Int("franchises", len(franchises)),
			zap.Int("movies", len(movies)),
		)
		return nil
	})
}
