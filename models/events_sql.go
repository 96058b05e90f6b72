package models

import (
	"database/sql"
	"time"

	"clubapi/apperr"
)

type sqlEventRepo struct{ db *sql.DB }

func NewSQLEventRepository(db *sql.DB) EventRepository {
	return &sqlEventRepo{db}
}

func scanEvent(row interface{ Scan(...any) error }) (Event, error) {
	var e Event
	var date time.Time
	if err := row.Scan(&e.ID, &e.TypeID, &e.Name, &date); err != nil {
		return Event{}, err
	}
	e.Date = date.Format("2006-01-02")
	return e, nil
}

func (r *sqlEventRepo) GetAll() ([]Event, error) {
	rows, err := r.db.Query(`SELECT id, type_id, name, date FROM events ORDER BY id`)
	if err != nil {
		return nil, normalize(err)
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, normalize(err)
		}
		out = append(out, e)
	}
	return out, normalize(rows.Err())
}

func (r *sqlEventRepo) GetByID(id int64) (Event, error) {
	e, err := scanEvent(r.db.QueryRow(`SELECT id, type_id, name, date FROM events WHERE id=$1`, id))
	if err == sql.ErrNoRows {
		return Event{}, apperr.NotFound("Event not found.")
	}
	if err != nil {
		return Event{}, normalize(err)
	}
	return e, nil
}

func (r *sqlEventRepo) Create(e *Event) error {
	return withTx(r.db, func(tx *sql.Tx) error {
		ok, err := rowExists(tx, `SELECT 1 FROM event_types WHERE id=$1`, e.TypeID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Validation("Unknown event type.")
		}
		return tx.QueryRow(
			`INSERT INTO events(type_id, name, date) VALUES ($1,$2,$3::date) RETURNING id`,
			e.TypeID, e.Name, e.Date,
		).Scan(&e.ID)
	})
}

func (r *sqlEventRepo) Update(e *Event) error {
	return withTx(r.db, func(tx *sql.Tx) error {
		// Existence first, so a missing event reads as 404 even when the
		// incoming fields are also invalid.
		ok, err := rowExists(tx, `SELECT 1 FROM events WHERE id=$1`, e.ID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("Event not found.")
		}
		ok, err = rowExists(tx, `SELECT 1 FROM event_types WHERE id=$1`, e.TypeID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Validation("Unknown event type.")
		}
		_, err = tx.Exec(
			`UPDATE events SET type_id=$1, name=$2, date=$3::date, updated_at=now() WHERE id=$4`,
			e.TypeID, e.Name, e.Date, e.ID,
		)
		return err
	})
}

// Delete refuses while registrations still point at the event.
func (r *sqlEventRepo) Delete(id int64) (int64, error) {
	var deleted int64
	err := withTx(r.db, func(tx *sql.Tx) error {
		ok, err := rowExists(tx, `SELECT 1 FROM events WHERE id=$1`, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("Event not found.")
		}

		n, err := countRows(tx, `SELECT COUNT(*) FROM member_events WHERE event_id=$1`, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("Event has active registrations.")
		}

		res, err := tx.Exec(`DELETE FROM events WHERE id=$1`, id)
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
