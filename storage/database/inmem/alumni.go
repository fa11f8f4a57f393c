package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/trezcool/alumni/core"
	"github.com/trezcool/alumni/core/alumni"
)

type alumniRepository struct {
	db *alumniTable
}

var _ alumni.Repository = (*alumniRepository)(nil) // interface compliance check

func NewAlumniRepository(db *DB) alumni.Repository {
	return &alumniRepository{db: db.alumni}
}

func (repo *alumniRepository) CreateRecord(_ context.Context, rec alumni.Record, _ ...core.DBExecutor) (alumni.Record, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	rec.ID = uuid.New().String()
	repo.db.table = append(repo.db.table, rec)
	return rec, nil
}

func (repo *alumniRepository) QueryRecords(_ context.Context, filter *alumni.QueryFilter, ordering []core.DBOrdering, _ ...core.DBExecutor) ([]alumni.Record, error) {
	repo.db.mu.RLock()
	var recs []alumni.Record
	if filter.IsEmpty() {
		recs = append(make([]alumni.Record, 0, len(repo.db.table)), repo.db.table...)
	} else {
		recs = alumni.Filter(repo.db.table, filter.Search)
	}
	repo.db.mu.RUnlock()

	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "created_at", Ascending: true}}
	}
	sort.SliceStable(recs, func(i, j int) bool {
		for _, ord := range ordering {
			if c := compare(recs[i], recs[j], ord.Field); c != 0 {
				return (c < 0) == ord.Ascending
			}
		}
		return false
	})
	return recs, nil
}

func (repo *alumniRepository) GetRecord(_ context.Context, id string, _ ...core.DBExecutor) (alumni.Record, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, rec := range repo.db.table {
		if rec.ID == id {
			return rec, nil
		}
	}
	return alumni.Record{}, alumni.ErrNotFound
}

// compare compares a and b on the given column; unknown columns compare equal.
func compare(a, b alumni.Record, column string) int {
	switch column {
	case "first_name":
		return strings.Compare(strings.ToLower(a.FirstName), strings.ToLower(b.FirstName))
	case "last_name":
		return strings.Compare(strings.ToLower(a.LastName), strings.ToLower(b.LastName))
	case "graduated_year":
		return strings.Compare(a.GraduatedYear, b.GraduatedYear)
	case "location_or_country":
		return strings.Compare(strings.ToLower(a.LocationOrCountry), strings.ToLower(b.LocationOrCountry))
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	}
	return 0
}
