package dashboard

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/trezcool/alumni/core"
	"github.com/trezcool/alumni/core/alumni"
)

// Table is the tabular view of the alumni records: the collection as loaded, the rows filtered
// down by a search term, the suggestions for the term and the record opened in the detail view.
// Rows is always an ordered subsequence of the collection.
type Table struct {
	store  *Store
	logger core.Logger

	mu          sync.RWMutex
	records     []alumni.Record
	rows        []alumni.Record
	suggestions []alumni.Record
	term        string
	selected    *alumni.Record
	loading     int
	err         error
	closed      bool
	unsubscribe func()
}

// NewTable returns a Table showing the Store's collection, kept up to date until Close.
func NewTable(store *Store, logger core.Logger) *Table {
	t := &Table{store: store, logger: logger}
	if recs, ok := store.Records(); ok {
		t.replace(recs)
	}
	t.unsubscribe = store.Subscribe(t.replace)
	return t
}

// replace swaps the collection and resets the search.
func (t *Table) replace(recs []alumni.Record) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.records = recs
	t.rows = copyRecords(recs)
	t.term = ""
	t.suggestions = nil
	t.err = nil
}

// Load reads the collection through the Store. On failure the previous state is kept and the
// error is logged and exposed by Err until the next successful load.
func (t *Table) Load(ctx context.Context) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	t.loading++
	t.mu.Unlock()

	// on success the Store notifies t.replace before returning
	_, err := t.store.Load(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.loading--
	if t.closed {
		return ErrClosed
	}
	if err != nil {
		t.err = err
		t.logger.Error(fmt.Sprintf("dashboard.Table.Load: %v", err), err)
		return err
	}
	// t.err is cleared by replace, unless the result was superseded by a later load
	return nil
}

// SetSearchTerm filters the rows down to the records whose first or last name contains term,
// ignoring case. The matches are also the suggestions. An empty term shows every record.
func (t *Table) SetSearchTerm(term string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.term = term
	if term == "" {
		t.rows = copyRecords(t.records)
		t.suggestions = nil
		return
	}
	t.rows = alumni.Filter(t.records, term)
	t.suggestions = copyRecords(t.rows)
}

// SelectSuggestion narrows the rows down to rec alone and sets the term to its full name.
// A rec that is not part of the collection is ignored.
func (t *Table) SelectSuggestion(rec alumni.Record) {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := -1
	for i := range t.records {
		if t.records[i].ID == rec.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	rec = t.records[idx]
	t.term = rec.FullName()
	t.rows = []alumni.Record{rec}
	t.suggestions = nil
}

// SelectRow opens the detail view of rec.
func (t *Table) SelectRow(rec alumni.Record) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = &rec
}

func (t *Table) CloseDetail() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = nil
}

// Export writes the rows, not the whole collection, as CSV.
func (t *Table) Export(w io.Writer) error {
	return alumni.WriteCSV(w, t.Rows())
}

// ExportXLSX writes the rows as a spreadsheet with the same columns as Export.
func (t *Table) ExportXLSX(w io.Writer) error {
	return alumni.WriteXLSX(w, t.Rows())
}

func (t *Table) ExportFilename() string { return alumni.ExportFilename }

// Close detaches the Table from the Store; loads still in flight are discarded.
func (t *Table) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	t.unsubscribe()
}

func (t *Table) Records() []alumni.Record {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return copyRecords(t.records)
}

func (t *Table) Rows() []alumni.Record {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return copyRecords(t.rows)
}

func (t *Table) Suggestions() []alumni.Record {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return copyRecords(t.suggestions)
}

func (t *Table) SearchTerm() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.term
}

// Selected returns the record of the detail view, if open.
func (t *Table) Selected() (alumni.Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.selected == nil {
		return alumni.Record{}, false
	}
	return *t.selected, true
}

func (t *Table) DetailOpen() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selected != nil
}

// Loading is true while a Load is in flight.
func (t *Table) Loading() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.loading > 0
}

func (t *Table) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.err
}
