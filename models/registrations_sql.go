package models

import (
	"database/sql"

	"clubapi/apperr"
)

type sqlRegistrationRepo struct{ db *sql.DB }

func NewSQLRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &sqlRegistrationRepo{db}
}

func (r *sqlRegistrationRepo) AddPreference(memberID, typeID int64) error {
	return withTx(r.db, func(tx *sql.Tx) error {
		ok, err := rowExists(tx, `SELECT 1 FROM members WHERE id=$1`, memberID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("Member not found.")
		}
		ok, err = rowExists(tx, `SELECT 1 FROM event_types WHERE id=$1`, typeID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("Event type not found.")
		}
		// The composite primary key rejects duplicates; never ignore them.
		_, err = tx.Exec(`INSERT INTO member_event_types(member_id, type_id) VALUES ($1,$2)`, memberID, typeID)
		if isUniqueViolation(err) {
			return apperr.Conflict("Preference already exists.")
		}
		return err
	})
}

func (r *sqlRegistrationRepo) RemovePreference(memberID, typeID int64) error {
	res, err := r.db.Exec(`DELETE FROM member_event_types WHERE member_id=$1 AND type_id=$2`, memberID, typeID)
	if err != nil {
		return normalize(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return normalize(err)
	}
	if n == 0 {
		return apperr.NotFound("Preference not found.")
	}
	return nil
}

// Register runs the four-step check in one transaction so a concurrent
// preference removal cannot slip between the check and the insert.
func (r *sqlRegistrationRepo) Register(memberID, eventID int64) error {
	return withTx(r.db, func(tx *sql.Tx) error {
		ok, err := rowExists(tx, `SELECT 1 FROM members WHERE id=$1`, memberID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("Member not found.")
		}

		var typeID int64
		err = tx.QueryRow(`SELECT type_id FROM events WHERE id=$1`, eventID).Scan(&typeID)
		if err == sql.ErrNoRows {
			return apperr.NotFound("Event not found.")
		}
		if err != nil {
			return err
		}

		ok, err = rowExists(tx, `SELECT 1 FROM member_event_types WHERE member_id=$1 AND type_id=$2`, memberID, typeID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Conflict("Member does not prefer this event's type.")
		}

		_, err = tx.Exec(`INSERT INTO member_events(member_id, event_id) VALUES ($1,$2)`, memberID, eventID)
		if isUniqueViolation(err) {
			return apperr.Conflict("Already registered for this event.")
		}
		return err
	})
}

func (r *sqlRegistrationRepo) Cancel(memberID, eventID int64) error {
	res, err := r.db.Exec(`DELETE FROM member_events WHERE member_id=$1 AND event_id=$2`, memberID, eventID)
	if err != nil {
		return normalize(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return normalize(err)
	}
	if n == 0 {
		return apperr.NotFound("Registration not found.")
	}
	return nil
}
