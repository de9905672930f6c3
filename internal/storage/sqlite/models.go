package sqlite

import "gorm.io/gorm"

type Models struct {
	Movie  *MovieModel
	Person *PersonModel
	Vote   *VoteModel
	Image  *ImageModel
}

func NewModels(s *Storage) *Models {
	return &Models{
		Movie:  &MovieModel{s.DB},
		Person: &PersonModel{s.DB},
		Vote:   &VoteModel{s.DB},
		Image:  &ImageModel{s.DB},
	}
}

type MovieModel struct {
	DB *gorm.DB
}

type PersonModel struct {
	DB *gorm.DB
}

type VoteModel struct {
	DB *gorm.DB
}

type ImageModel struct {
	DB *gorm.DB
}
