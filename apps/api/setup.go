package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/alumni/core"
	"github.com/trezcool/alumni/storage/database"
)

func setUpDB(ctx context.Context, conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(ctx, conf); err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(ctx, db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type stopper interface {
	Shutdown(ctx context.Context) error
	Close() error
}

// shutdown stops server, forcing it closed if it cannot drain before ctx is done,
// then waits for the emails queued by the last requests.
func shutdown(ctx context.Context, server stopper, mailSvc core.EmailService, logger core.Logger) error {
	// asking listener to shutdown and shed load
	if err := server.Shutdown(ctx); err != nil {
		logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

		if err = server.Close(); err != nil {
			return errors.Wrap(err, "could not force stop server")
		}
	}
	mailSvc.Wait()
	return nil
}
