package models

import (
	"context"
	"mymdb/proj/internal/domain/models"
	"mymdb/proj/internal/storage"
	"mymdb/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PersonModel struct {
	DB *pgxpool.Pool
}

func (m *PersonModel) Insert(ctx context.Context, person *models.Person) error {
	err := m.DB.QueryRow(
		ctx,
		`INSERT INTO persons (first_name, last_name, born, died) VALUES ($1, $2, $3, $4) RETURNING id`,
		person.FirstName,
		person.LastName,
		person.Born,
		person.Died,
	).Scan(&person.ID)
	return postgres.ClassifyError(err)
}

// GetWithCredits loads a person with everything they directed, wrote and
// acted in, batched into a single round trip.
func (m *PersonModel) GetWithCredits(ctx context.Context, id int64) (*models.PersonDetail, error) {
	batch := &pgx.Batch{}
	batch.Queue(`SELECT `+personColumns+` FROM persons p WHERE p.id = $1`, id)
	batch.Queue(
		`SELECT `+movieColumns+` FROM movies m
		WHERE m.director_id = $1
		ORDER BY m.year DESC, m.title ASC`,
		id,
	)
	batch.Queue(
		`SELECT `+movieColumns+` FROM movies m
		JOIN movie_writers w ON w.movie_id = m.id
		WHERE w.person_id = $1
		ORDER BY m.year DESC, m.title ASC`,
		id,
	)
	batch.Queue(
		`SELECT `+movieColumns+`, r.name FROM roles r
		JOIN movies m ON m.id = r.movie_id
		WHERE r.person_id = $1
		ORDER BY m.year DESC, m.title ASC, r.id`,
		id,
	)
	results := m.DB.SendBatch(ctx, batch)
	defer results.Close()

	rows, err := results.Query()
	if err != nil {
		return nil, err
	}
	person, err := pgx.CollectOneRow(rows, scanPerson)
	if err != nil {
		return nil, postgres.ClassifyError(err)
	}
	detail := &models.PersonDetail{Person: person}
	if rows, err = results.Query(); err != nil {
		return nil, err
	}
	if detail.Directed, err = pgx.CollectRows(rows, scanMovie); err != nil {
		return nil, err
	}
	if rows, err = results.Query(); err != nil {
		return nil, err
	}
	if detail.WritingCredits, err = pgx.CollectRows(rows, scanMovie); err != nil {
		return nil, err
	}
	if rows, err = results.Query(); err != nil {
		return nil, err
	}
	if detail.ActingCredits, err = pgx.CollectRows(rows, scanCredit); err != nil {
		return nil, err
	}
	return detail, nil
}

func (m *PersonModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM persons WHERE id = $1", id)
	if err != nil {
		return postgres.ClassifyError(err)
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
