package models

import (
	"fmt"
	"mymdb/proj/internal/domain/fields"
	"time"
)

type Person struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Born      time.Time  `json:"born"`
	Died      *time.Time `json:"died,omitempty"`
}

func (p Person) String() string {
	const layout = "2006-01-02"
	if p.Died != nil {
		return fmt.Sprintf("%s, %s (%s-%s)", p.LastName, p.FirstName, p.Born.Format(layout), p.Died.Format(layout))
	}
	return fmt.Sprintf("%s, %s (%s)", p.LastName, p.FirstName, p.Born.Format(layout))
}

type Movie struct {
	ID         int64               `json:"id"`
	Title      string              `json:"title"`
	Plot       string              `json:"plot"`
	Year       int32               `json:"year"`
	Rating     fields.Rating       `json:"rating"`
	Runtime    fields.MovieRuntime `json:"runtime"`
	Website    string              `json:"website,omitempty"`
	DirectorID *int64              `json:"director_id,omitempty"`
}

func (m Movie) String() string {
	return fmt.Sprintf("%s (%d)", m.Title, m.Year)
}

// Role is a credited acting part: Person played Name in Movie.
type Role struct {
	ID       int64  `json:"id"`
	MovieID  int64  `json:"movie_id"`
	PersonID int64  `json:"person_id"`
	Name     string `json:"name"`
}

type VoteValue int8

const (
	VoteBlank VoteValue = 0
	VoteUp    VoteValue = 1
	VoteDown  VoteValue = -1
)

func (v VoteValue) Valid() bool {
	return v == VoteUp || v == VoteDown
}

type Vote struct {
	ID      int64      `json:"id,omitempty"`
	UserID  int64      `json:"user_id"`
	MovieID int64      `json:"movie_id"`
	Value   VoteValue  `json:"value"`
	VotedOn *time.Time `json:"voted_on,omitempty"`
}

// IsSaved reports whether the vote has been persisted.
func (v *Vote) IsSaved() bool {
	return v.ID != 0
}

func (v *Vote) IsOwnedBy(userID int64) bool {
	return v.UserID == userID
}

type MovieImage struct {
	ID       int64     `json:"id"`
	MovieID  int64     `json:"movie_id"`
	UserID   int64     `json:"user_id"`
	Image    string    `json:"image"`
	Uploaded time.Time `json:"uploaded"`
}

// Actor is a cast member of a movie together with the character played.
type Actor struct {
	Person
	Role string `json:"role"`
}

// MovieDetail is a movie with its related people, images and current score
// resolved eagerly.
type MovieDetail struct {
	Movie
	Director *Person      `json:"director,omitempty"`
	Writers  []Person     `json:"writers"`
	Actors   []Actor      `json:"actors"`
	Images   []MovieImage `json:"images"`
	Score    int          `json:"score"`
}

// Credit is a movie a person acted in together with the character played.
type Credit struct {
	Movie
	Role string `json:"role"`
}

type PersonDetail struct {
	Person
	Directed       []Movie  `json:"directed"`
	WritingCredits []Movie  `json:"writing_credits"`
	ActingCredits  []Credit `json:"acting_credits"`
}

type MovieScore struct {
	Movie
	Score int `json:"score"`
}

type User struct {
	ID           int64
	Username     string
	PasswordHash []byte
	Email        string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const RoleAdmin = "admin"

var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == nil || u == AnonymousUser
}

func (u *User) IsAdmin() bool {
	return !u.IsAnonymous() && u.Role == RoleAdmin
}
