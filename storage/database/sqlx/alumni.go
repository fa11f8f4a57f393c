package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/alumni/core"
	"github.com/trezcool/alumni/core/alumni"
)

const alumniColumns = `id, first_name, last_name, middle_name, email_address, phone_number, graduated_year,
previous_job, current_job, location_or_country, supervisor, advice, social, created_at`

type alumniRow struct {
	ID                string    `db:"id"`
	FirstName         string    `db:"first_name"`
	LastName          string    `db:"last_name"`
	MiddleName        string    `db:"middle_name"`
	EmailAddress      string    `db:"email_address"`
	PhoneNumber       string    `db:"phone_number"`
	GraduatedYear     string    `db:"graduated_year"`
	PreviousJob       string    `db:"previous_job"`
	CurrentJob        string    `db:"current_job"`
	LocationOrCountry string    `db:"location_or_country"`
	Supervisor        string    `db:"supervisor"`
	Advice            string    `db:"advice"`
	Social            string    `db:"social"`
	CreatedAt         time.Time `db:"created_at"`
}

func (row alumniRow) record() alumni.Record {
	return alumni.Record{
		ID:                row.ID,
		FirstName:         row.FirstName,
		LastName:          row.LastName,
		MiddleName:        row.MiddleName,
		EmailAddress:      row.EmailAddress,
		PhoneNumber:       row.PhoneNumber,
		GraduatedYear:     row.GraduatedYear,
		PreviousJob:       row.PreviousJob,
		CurrentJob:        row.CurrentJob,
		LocationOrCountry: row.LocationOrCountry,
		Supervisor:        row.Supervisor,
		Advice:            row.Advice,
		Social:            row.Social,
		CreatedAt:         row.CreatedAt.UTC(),
	}
}

type alumniRepository struct {
	baseRepository
}

var _ alumni.Repository = (*alumniRepository)(nil) // interface compliance check

func NewAlumniRepository(db *sqlx.DB) alumni.Repository {
	return &alumniRepository{baseRepository{exec: db}}
}

func (repo alumniRepository) CreateRecord(ctx context.Context, rec alumni.Record, exec ...core.DBExecutor) (alumni.Record, error) {
	rec.ID = uuid.New().String()
	rec.CreatedAt = rec.CreatedAt.UTC()

	q := `INSERT INTO alumni (` + alumniColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := repo.getExec(exec).ExecContext(ctx, q,
		rec.ID, rec.FirstName, rec.LastName, rec.MiddleName, rec.EmailAddress, rec.PhoneNumber, rec.GraduatedYear,
		rec.PreviousJob, rec.CurrentJob, rec.LocationOrCountry, rec.Supervisor, rec.Advice, rec.Social, rec.CreatedAt)
	if err != nil {
		return alumni.Record{}, errors.Wrap(err, "inserting record")
	}
	return rec, nil
}

func (repo alumniRepository) QueryRecords(ctx context.Context, filter *alumni.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]alumni.Record, error) {
	var args []interface{}
	q := `SELECT ` + alumniColumns + ` FROM alumni`

	// records with FirstName or LastName containing the search term
	if !filter.IsEmpty() {
		q += ` WHERE first_name ILIKE $1 OR last_name ILIKE $1`
		args = append(args, containsPattern(filter.Search))
	}
	q += orderBy(ordering, "created_at ASC, id ASC")

	var rows []alumniRow
	if err := sqlx.SelectContext(ctx, repo.getExec(exec), &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying records")
	}

	recs := make([]alumni.Record, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, row.record())
	}
	return recs, nil
}

func (repo alumniRepository) GetRecord(ctx context.Context, id string, exec ...core.DBExecutor) (alumni.Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return alumni.Record{}, alumni.ErrNotFound
	}

	var row alumniRow
	q := `SELECT ` + alumniColumns + ` FROM alumni WHERE id = $1`
	if err := sqlx.GetContext(ctx, repo.getExec(exec), &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return alumni.Record{}, alumni.ErrNotFound
		}
		return alumni.Record{}, errors.Wrap(err, "finding record")
	}
	return row.record(), nil
}
