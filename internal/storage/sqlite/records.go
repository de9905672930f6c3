package sqlite

import (
	"mymdb/proj/internal/domain/fields"
	"mymdb/proj/internal/domain/models"
	"time"
)

type personRecord struct {
	ID        int64 `gorm:"primaryKey"`
	FirstName string
	LastName  string
	Born      time.Time
	Died      *time.Time
}

func (personRecord) TableName() string { return "persons" }

func (r personRecord) toModel() models.Person {
	return models.Person{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName, Born: r.Born, Died: r.Died}
}

type movieRecord struct {
	ID         int64 `gorm:"primaryKey"`
	Title      string
	Plot       string
	Year       int32
	Rating     int16
	Runtime    int32
	Website    string
	DirectorID *int64
}

func (movieRecord) TableName() string { return "movies" }

func newMovieRecord(m *models.Movie) movieRecord {
	return movieRecord{
		ID:         m.ID,
		Title:      m.Title,
		Plot:       m.Plot,
		Year:       m.Year,
		Rating:     int16(m.Rating),
		Runtime:    int32(m.Runtime),
		Website:    m.Website,
		DirectorID: m.DirectorID,
	}
}

func (r movieRecord) toModel() models.Movie {
	return models.Movie{
		ID:         r.ID,
		Title:      r.Title,
		Plot:       r.Plot,
		Year:       r.Year,
		Rating:     fields.Rating(r.Rating),
		Runtime:    fields.MovieRuntime(r.Runtime),
		Website:    r.Website,
		DirectorID: r.DirectorID,
	}
}

type movieWriterRecord struct {
	MovieID  int64
	PersonID int64
}

func (movieWriterRecord) TableName() string { return "movie_writers" }

type roleRecord struct {
	ID       int64 `gorm:"primaryKey"`
	MovieID  int64
	PersonID int64
	Name     string
}

func (roleRecord) TableName() string { return "roles" }

type voteRecord struct {
	ID      int64 `gorm:"primaryKey"`
	UserID  int64
	MovieID int64
	Value   int16
	VotedOn time.Time
}

func (voteRecord) TableName() string { return "votes" }

func (r voteRecord) toModel() models.Vote {
	return models.Vote{ID: r.ID, UserID: r.UserID, MovieID: r.MovieID, Value: models.VoteValue(r.Value), VotedOn: &r.VotedOn}
}

type imageRecord struct {
	ID       int64 `gorm:"primaryKey"`
	MovieID  int64
	UserID   int64
	Image    string
	Uploaded time.Time
}

func (imageRecord) TableName() string { return "movie_images" }

func (r imageRecord) toModel() models.MovieImage {
	return models.MovieImage{ID: r.ID, MovieID: r.MovieID, UserID: r.UserID, Image: r.Image, Uploaded: r.Uploaded}
}

// movieDetailRow is a movie joined with its (optional) director and score.
type movieDetailRow struct {
	Movie      movieRecord `gorm:"embedded"`
	DID        *int64      `gorm:"column:d_id"`
	DFirstName *string     `gorm:"column:d_first_name"`
	DLastName  *string     `gorm:"column:d_last_name"`
	DBorn      *time.Time  `gorm:"column:d_born"`
	DDied      *time.Time  `gorm:"column:d_died"`
	Score      int64       `gorm:"column:score"`
}

func (r movieDetailRow) director() *models.Person {
	if r.DID == nil {
		return nil
	}
	return &models.Person{ID: *r.DID, FirstName: *r.DFirstName, LastName: *r.DLastName, Born: *r.DBorn, Died: r.DDied}
}

type actorRow struct {
	Person   personRecord `gorm:"embedded"`
	RoleName string       `gorm:"column:role_name"`
}

type creditRow struct {
	Movie    movieRecord `gorm:"embedded"`
	RoleName string      `gorm:"column:role_name"`
}

type movieScoreRow struct {
	Movie movieRecord `gorm:"embedded"`
	Score int64       `gorm:"column:score"`
}
