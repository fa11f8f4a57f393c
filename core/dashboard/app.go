package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/trezcool/alumni/core"
	"github.com/trezcool/alumni/core/alumni"
)

// AppState is the dashboard application state, built once and handed to the components.
// Start loads the records; Shutdown stops every in-flight load and detaches the tables.
type AppState struct {
	client Client
	logger core.Logger
	store  *Store
	Modals *Modals

	mu     sync.Mutex
	tables []*Table
}

func NewAppState(client Client, logger core.Logger) *AppState {
	return &AppState{
		client: client,
		logger: logger,
		store:  NewStore(client, logger),
		Modals: NewModals(),
	}
}

// Start performs the initial load. A failure is logged and kept in Err; the state stays usable.
func (app *AppState) Start(ctx context.Context) error {
	if _, err := app.store.Load(ctx); err != nil {
		app.logger.Error(fmt.Sprintf("dashboard.AppState.Start: %v", err), err)
		return err
	}
	return nil
}

func (app *AppState) Shutdown() {
	app.store.Close()

	app.mu.Lock()
	tables := app.tables
	app.tables = nil
	app.mu.Unlock()
	for _, t := range tables {
		t.Close()
	}
	app.Modals.CloseAll()
}

// Records returns the records of the last successful load.
func (app *AppState) Records() []alumni.Record {
	recs, _ := app.store.Records()
	return recs
}

func (app *AppState) Err() error { return app.store.Err() }

func (app *AppState) Store() *Store { return app.store }

func (app *AppState) NewTable() *Table {
	t := NewTable(app.store, app.logger)
	app.mu.Lock()
	app.tables = append(app.tables, t)
	app.mu.Unlock()
	return t
}

func (app *AppState) NewSubmissionForm() *SubmissionForm {
	return NewSubmissionForm(app.client, app.logger)
}

func (app *AppState) NewPasswordResetForm() *PasswordResetForm {
	return NewPasswordResetForm(app.client, app.logger)
}
