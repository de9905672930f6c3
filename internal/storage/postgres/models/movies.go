package models

import (
	"context"
	"mymdb/proj/internal/domain/filters"
	"mymdb/proj/internal/domain/models"
	"mymdb/proj/internal/storage"
	"mymdb/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MovieModel struct {
	DB *pgxpool.Pool
}

func (m *MovieModel) Get(ctx context.Context, id int64) (*models.Movie, error) {
	rows, err := m.DB.Query(ctx, `SELECT `+movieColumns+` FROM movies m WHERE m.id = $1`, id)
	if err != nil {
		return nil, err
	}
	movie, err := pgx.CollectOneRow(rows, scanMovie)
	if err != nil {
		return nil, postgres.ClassifyError(err)
	}
	return &movie, nil
}

func (m *MovieModel) List(ctx context.Context, filters filters.Filters) ([]models.Movie, int, error) {
	rows, err := m.DB.Query(
		ctx,
		`SELECT count(*) OVER(), `+movieColumns+` FROM movies m
		ORDER BY m.year DESC, m.title ASC, m.id ASC
		LIMIT $1 OFFSET $2`,
		filters.Limit(),
		filters.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	totalRecords := 0
	movies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Movie, error) {
		var r movieRow
		err := row.Scan(append([]any{&totalRecords}, r.dest()...)...)
		return r.movie(), err
	})
	if err != nil {
		return nil, 0, err
	}
	return movies, totalRecords, nil
}

func (m *MovieModel) Count(ctx context.Context) (int, error) {
	var count int
	if err := m.DB.QueryRow(ctx, `SELECT count(*) FROM movies`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// GetWithRelated loads a movie with its director, writers, cast, images and
// score. All statements go out in a single batch, so the number of round
// trips does not depend on how many people are credited.
func (m *MovieModel) GetWithRelated(ctx context.Context, id int64) (*models.MovieDetail, error) {
	batch := &pgx.Batch{}
	batch.Queue(
		`SELECT `+movieColumns+`, d.id, d.first_name, d.last_name, d.born, d.died,
		COALESCE((SELECT sum(v.value) FROM votes v WHERE v.movie_id = m.id), 0)
		FROM movies m LEFT JOIN persons d ON d.id = m.director_id
		WHERE m.id = $1`,
		id,
	)
	batch.Queue(
		`SELECT `+personColumns+` FROM persons p
		JOIN movie_writers w ON w.person_id = p.id
		WHERE w.movie_id = $1
		ORDER BY p.last_name, p.first_name, p.id`,
		id,
	)
	batch.Queue(
		`SELECT `+personColumns+`, r.name FROM roles r
		JOIN persons p ON p.id = r.person_id
		WHERE r.movie_id = $1
		ORDER BY r.id`,
		id,
	)
	batch.Queue(
		`SELECT id, movie_id, user_id, image, uploaded FROM movie_images
		WHERE movie_id = $1
		ORDER BY uploaded DESC, id DESC`,
		id,
	)
	results := m.DB.SendBatch(ctx, batch)
	defer results.Close()

	rows, err := results.Query()
	if err != nil {
		return nil, err
	}
	detail, err := pgx.CollectOneRow(rows, func(row pgx.CollectableRow) (models.MovieDetail, error) {
		var r movieRow
		var director nullablePerson
		var score int64
		dest := append(r.dest(), director.dest()...)
		err := row.Scan(append(dest, &score)...)
		return models.MovieDetail{Movie: r.movie(), Director: director.person(), Score: int(score)}, err
	})
	if err != nil {
		return nil, postgres.ClassifyError(err)
	}
	if rows, err = results.Query(); err != nil {
		return nil, err
	}
	if detail.Writers, err = pgx.CollectRows(rows, scanPerson); err != nil {
		return nil, err
	}
	if rows, err = results.Query(); err != nil {
		return nil, err
	}
	if detail.Actors, err = pgx.CollectRows(rows, scanActor); err != nil {
		return nil, err
	}
	if rows, err = results.Query(); err != nil {
		return nil, err
	}
	if detail.Images, err = pgx.CollectRows(rows, scanImage); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (m *MovieModel) Top(ctx context.Context, limit int) ([]models.MovieScore, error) {
	rows, err := m.DB.Query(
		ctx,
		`SELECT `+movieColumns+`, sum(v.value) AS score
		FROM movies m JOIN votes v ON v.movie_id = m.id
		GROUP BY m.id
		ORDER BY score DESC, m.title ASC, m.id ASC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanMovieScore)
}

// Insert stores the movie together with its writing credits and cast in one
// transaction.
func (m *MovieModel) Insert(ctx context.Context, movie *models.Movie, writerIDs []int64, roles []models.Role) error {
	err := pgx.BeginFunc(ctx, m.DB, func(tx pgx.Tx) error {
		err := tx.QueryRow(
			ctx,
			`INSERT INTO movies (title, plot, year, rating, runtime, website, director_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			movie.Title,
			movie.Plot,
			movie.Year,
			int16(movie.Rating),
			int32(movie.Runtime),
			movie.Website,
			movie.DirectorID,
		).Scan(&movie.ID)
		if err != nil {
			return err
		}
		batch := &pgx.Batch{}
		for _, writerID := range writerIDs {
			batch.Queue(`INSERT INTO movie_writers (movie_id, person_id) VALUES ($1, $2)`, movie.ID, writerID)
		}
		for i := range roles {
			roles[i].MovieID = movie.ID
			batch.Queue(
				`INSERT INTO roles (movie_id, person_id, name) VALUES ($1, $2, $3) RETURNING id`,
				movie.ID, roles[i].PersonID, roles[i].Name,
			).QueryRow(func(row pgx.Row) error {
				return row.Scan(&roles[i].ID)
			})
		}
		if batch.Len() == 0 {
			return nil
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	return postgres.ClassifyError(err)
}

func (m *MovieModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM movies WHERE id = $1", id)
	if err != nil {
		return postgres.ClassifyError(err)
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
