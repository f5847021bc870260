package journal

import (
	"database/sql"
	"fmt"

	"source.hodakov.me/hdkv/vid2audio/internal/application"
	"source.hodakov.me/hdkv/vid2audio/internal/domains"
)

var (
	_ domains.Journal = new(Journal)
	_ domains.Domain  = new(Journal)
	_ domains.Stopper = new(Journal)
)

// Journal keeps the history of batch runs in a SQLite database. A disabled
// journal, or one whose database could not be opened, accepts records and
// forgets them.
type Journal struct {
	app *application.App

	enabled bool
	path    string
	db      *sql.DB
}

func New(app *application.App) *Journal {
	return &Journal{
		app:     app,
		enabled: app.Config().Journal.Enabled,
		path:    app.Config().Journal.Path,
	}
}

func (j *Journal) ConnectDependencies() error {
	return nil
}

func (j *Journal) Start() error {
	if !j.enabled {
		j.app.Logger().Debug("Run journal is disabled")

		return nil
	}

	err := j.open()
	if err != nil {
		j.app.Logger().WithError(fmt.Errorf("%w: %w (%w)", ErrJournal, ErrFailedToOpenDatabase, err)).
			WithField("path", j.path).Warn("Run journal is unavailable, history will not be recorded")

		j.enabled = false

		return nil
	}

	j.app.Logger().WithField("path", j.path).Debug("Run journal opened")

	return nil
}

func (j *Journal) Stop() error {
	if j.db == nil {
		return nil
	}

	err := j.db.Close()
	if err != nil {
		return fmt.Errorf("%w: %w (%w)", ErrJournal, ErrFailedToCloseDatabase, err)
	}

	j.db = nil

	return nil
}
