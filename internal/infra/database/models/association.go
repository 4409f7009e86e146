package models

// CharacterMovie is one edge of the character/movie many-to-many relationship.
type CharacterMovie struct {
	CharacterID int64     `json:"characterID" gorm:"primaryKey;autoIncrement:false"`
	Character   Character `json:"-" gorm:"foreignKey:CharacterID;references:ID;constraint:OnDelete:CASCADE;"`
	MovieID     int64     `json:"movieID" gorm:"primaryKey;autoIncrement:false;index"`
	Movie       Movie     `json:"-" gorm:"foreignKey:MovieID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (CharacterMovie) TableName() string {
	return "character_movies"
}
