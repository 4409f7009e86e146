package models

import (
	"time"
)

type Character struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FullName   string    `json:"fullName" gorm:"type:varchar(50);not null"`
	Alias      *string   `json:"alias" gorm:"type:varchar(50)"`
	Gender     string    `json:"gender" gorm:"type:varchar(50)"`
	PictureURL string    `json:"pictureUrl" gorm:"type:varchar(100)"`
	CDate      time.Time `json:"cdate" gorm:"autoCreateTime"`
	MDate      time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

type Franchise struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"type:varchar(50);not null"`
	Description string    `json:"description" gorm:"type:varchar(100)"`
	CDate       time.Time `json:"cdate" gorm:"autoCreateTime"`
	MDate       time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

type Movie struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string     `json:"title" gorm:"type:varchar(50);not null"`
	Genre       string     `json:"genre" gorm:"type:varchar(50)"`
	ReleaseYear int        `json:"releaseYear"`
	Director    string     `json:"director" gorm:"type:varchar(50)"`
	PictureURL  string     `json:"pictureUrl" gorm:"type:varchar(100)"`
	TrailerURL  string     `json:"trailerUrl" gorm:"type:varchar(100)"`
	FranchiseID *int64     `json:"franchiseId" gorm:"index"`
	Franchise   *Franchise `json:"-" gorm:"foreignKey:FranchiseID;references:ID;constraint:OnDelete:SET NULL;"`
	CDate       time.Time  `json:"cdate" gorm:"autoCreateTime"`
	MDate       time.Time  `json:"mdate" gorm:"autoUpdateTime"`
}
