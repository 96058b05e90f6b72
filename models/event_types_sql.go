package models

import (
	"database/sql"

	"clubapi/apperr"
)

type sqlEventTypeRepo struct{ db *sql.DB }

func NewSQLEventTypeRepository(db *sql.DB) EventTypeRepository {
	return &sqlEventTypeRepo{db}
}

func (r *sqlEventTypeRepo) GetAll() ([]EventType, error) {
	rows, err := r.db.Query(`SELECT id, name FROM event_types ORDER BY id`)
	if err != nil {
		return nil, normalize(err)
	}
	defer rows.Close()

	out := []EventType{}
	for rows.Next() {
		var t EventType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, normalize(err)
		}
		out = append(out, t)
	}
	return out, normalize(rows.Err())
}

func (r *sqlEventTypeRepo) GetByID(id int64) (EventType, error) {
	var t EventType
	err := r.db.QueryRow(`SELECT id, name FROM event_types WHERE id=$1`, id).
		Scan(&t.ID, &t.Name)
	if err == sql.ErrNoRows {
		return EventType{}, apperr.NotFound("Event type not found.")
	}
	if err != nil {
		return EventType{}, normalize(err)
	}
	return t, nil
}

func (r *sqlEventTypeRepo) Create(t *EventType) error {
	err := r.db.QueryRow(`INSERT INTO event_types(name) VALUES ($1) RETURNING id`, t.Name).
		Scan(&t.ID)
	if isUniqueViolation(err) {
		return apperr.Conflict("An event type with this name already exists.")
	}
	return normalize(err)
}

func (r *sqlEventTypeRepo) Update(t *EventType) error {
	return withTx(r.db, func(tx *sql.Tx) error {
		ok, err := rowExists(tx, `SELECT 1 FROM event_types WHERE id=$1`, t.ID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("Event type not found.")
		}
		_, err = tx.Exec(`UPDATE event_types SET name=$1, updated_at=now() WHERE id=$2`, t.Name, t.ID)
		if isUniqueViolation(err) {
			return apperr.Conflict("An event type with this name already exists.")
		}
		return err
	})
}

// Delete treats the type as a referential hazard: other rows point into it,
// so deletion is refused while any event or member preference depends on it.
func (r *sqlEventTypeRepo) Delete(id int64) (int64, error) {
	var deleted int64
	err := withTx(r.db, func(tx *sql.Tx) error {
		ok, err := rowExists(tx, `SELECT 1 FROM event_types WHERE id=$1`, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("Event type not found.")
		}

		n, err := countRows(tx, `SELECT COUNT(*) FROM events WHERE type_id=$1`, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("Event type is in use by one or more events.")
		}
		n, err = countRows(tx, `SELECT COUNT(*) FROM member_event_types WHERE type_id=$1`, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("Event type is preferred by one or more members.")
		}

		res, err := tx.Exec(`DELETE FROM event_types WHERE id=$1`, id)
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
