package models

import (
	"mymdb/proj/internal/storage/postgres"
)

type Models struct {
	Movie  *MovieModel
	Person *PersonModel
	Vote   *VoteModel
	Image  *ImageModel
}

func New(db *postgres.Storage) *Models {
	return &Models{
		Movie:  &MovieModel{db.Conn},
		Person: &PersonModel{db.Conn},
		Vote:   &VoteModel{db.Conn},
		Image:  &ImageModel{db.Conn},
	}
}
