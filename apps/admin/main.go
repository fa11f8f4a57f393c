package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/alumni/core"
	"github.com/trezcool/alumni/core/alumni"
	"github.com/trezcool/alumni/core/dashboard"
	"github.com/trezcool/alumni/core/user"
	appfs "github.com/trezcool/alumni/fs"
	emailsvc "github.com/trezcool/alumni/services/email"
	logsvc "github.com/trezcool/alumni/services/logger"
	registrysvc "github.com/trezcool/alumni/services/registry"
	"github.com/trezcool/alumni/storage/database"
	inmemdb "github.com/trezcool/alumni/storage/database/inmem"
	sqlxrepos "github.com/trezcool/alumni/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	alumni.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	core.ParseEmailTemplates(appfs.FS, conf, logger)

	var mailSvc core.EmailService
	if conf.Debug || conf.SendgridApiKey == "" {
		mailSvc = emailsvc.NewConsoleService(log.New(os.Stdout, "EMAIL : ", log.LstdFlags), conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	cli := &commandLine{
		conf:       conf,
		logger:     logger,
		translator: translator,
		mailSvc:    mailSvc,
		newClient: func(baseURL string) dashboard.Client {
			regConf := conf.Registry
			regConf.BaseURL = baseURL
			return registrysvc.NewClient(regConf)
		},
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	cli.connect = func(ctx context.Context) error {
		if conf.Database.Engine == "memory" {
			cli.usrSvc = user.NewService(inmemdb.NewUserRepository(inmemdb.Open()), validate, mailSvc, conf)
			return nil
		}
		db, err := database.Open(ctx, conf)
		if err != nil {
			return err
		}
		cli.db = db.DB
		cli.usrSvc = user.NewService(sqlxrepos.NewUserRepository(db), validate, mailSvc, conf)
		return nil
	}

	err := cli.run(context.Background(), os.Args[1:])
	mailSvc.Wait()
	if cli.db != nil {
		_ = cli.db.Close()
	}
	logger.Close()
	if err != nil {
		if !errors.Is(err, errHelp) {
			_, _ = fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
