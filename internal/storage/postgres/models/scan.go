package models

import (
	"mymdb/proj/internal/domain/fields"
	"mymdb/proj/internal/domain/models"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	movieColumns  = "m.id, m.title, m.plot, m.year, m.rating, m.runtime, m.website, m.director_id"
	personColumns = "p.id, p.first_name, p.last_name, p.born, p.died"
)

type movieRow struct {
	models.Movie
	rating  int16
	runtime int32
}

func (r *movieRow) dest() []any {
	return []any{
		&r.ID, &r.Title, &r.Plot, &r.Year, &r.rating, &r.runtime, &r.Website, &r.DirectorID,
	}
}

func (r *movieRow) movie() models.Movie {
	m := r.Movie
	m.Rating = fields.Rating(r.rating)
	m.Runtime = fields.MovieRuntime(r.runtime)
	return m
}

func scanMovie(row pgx.CollectableRow) (models.Movie, error) {
	var r movieRow
	err := row.Scan(r.dest()...)
	return r.movie(), err
}

func scanPerson(row pgx.CollectableRow) (models.Person, error) {
	var p models.Person
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Born, &p.Died)
	return p, err
}

func scanActor(row pgx.CollectableRow) (models.Actor, error) {
	var a models.Actor
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Born, &a.Died, &a.Role)
	return a, err
}

func scanCredit(row pgx.CollectableRow) (models.Credit, error) {
	var r movieRow
	var role string
	err := row.Scan(append(r.dest(), &role)...)
	return models.Credit{Movie: r.movie(), Role: role}, err
}

func scanMovieScore(row pgx.CollectableRow) (models.MovieScore, error) {
	var r movieRow
	var score int64
	err := row.Scan(append(r.dest(), &score)...)
	return models.MovieScore{Movie: r.movie(), Score: int(score)}, err
}

func scanImage(row pgx.CollectableRow) (models.MovieImage, error) {
	var img models.MovieImage
	err := row.Scan(&img.ID, &img.MovieID, &img.UserID, &img.Image, &img.Uploaded)
	return img, err
}

func scanVote(row pgx.CollectableRow) (models.Vote, error) {
	var v models.Vote
	var value int16
	err := row.Scan(&v.ID, &v.UserID, &v.MovieID, &value, &v.VotedOn)
	v.Value = models.VoteValue(value)
	return v, err
}

// nullablePerson scans the LEFT JOINed director columns.
type nullablePerson struct {
	id        *int64
	firstName *string
	lastName  *string
	born      *time.Time
	died      *time.Time
}

func (n *nullablePerson) dest() []any {
	return []any{&n.id, &n.firstName, &n.lastName, &n.born, &n.died}
}

func (n *nullablePerson) person() *models.Person {
	if n.id == nil {
		return nil
	}
	return &models.Person{
		ID:        *n.id,
		FirstName: *n.firstName,
		LastName:  *n.lastName,
		Born:      *n.born,
		Died:      n.died,
	}
}
