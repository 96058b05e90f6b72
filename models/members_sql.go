package models

import (
	"database/sql"

	"github.com/lib/pq"

	"clubapi/apperr"
)

type sqlMemberRepo struct{ db *sql.DB }

func NewSQLMemberRepository(db *sql.DB) MemberRepository {
	return &sqlMemberRepo{db}
}

const memberSelect = `
SELECT m.id, m.name,
       COALESCE(array_agg(p.type_id ORDER BY p.type_id) FILTER (WHERE p.type_id IS NOT NULL), '{}')
FROM members m
LEFT JOIN member_event_types p ON p.member_id = m.id`

func (r *sqlMemberRepo) GetAll() ([]Member, error) {
	rows, err := r.db.Query(memberSelect + ` GROUP BY m.id, m.name ORDER BY m.id`)
	if err != nil {
		return nil, normalize(err)
	}
	defer rows.Close()

	out := []Member{}
	for rows.Next() {
		var m Member
		var prefs pq.Int64Array
		if err := rows.Scan(&m.ID, &m.Name, &prefs); err != nil {
			return nil, normalize(err)
		}
		m.PreferredEventTypes = []int64(prefs)
		out = append(out, m)
	}
	return out, normalize(rows.Err())
}

func (r *sqlMemberRepo) GetByID(id int64) (Member, error) {
	var m Member
	var prefs pq.Int64Array
	err := r.db.QueryRow(memberSelect+` WHERE m.id=$1 GROUP BY m.id, m.name`, id).
		Scan(&m.ID, &m.Name, &prefs)
	if err == sql.ErrNoRows {
		return Member{}, apperr.NotFound("Member not found.")
	}
	if err != nil {
		return Member{}, normalize(err)
	}
	m.PreferredEventTypes = []int64(prefs)
	return m, nil
}

func (r *sqlMemberRepo) Create(m *Member) error {
	return withTx(r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRow(`INSERT INTO members(name) VALUES ($1) RETURNING id`, m.Name).
			Scan(&m.ID); err != nil {
			return err
		}
		return insertPreferences(tx, m.ID, m.PreferredEventTypes)
	})
}

// Update replaces the preference set wholesale: old rows go, the incoming
// list comes in, all inside the same transaction as the name change.
func (r *sqlMemberRepo) Update(m *Member) error {
	return withTx(r.db, func(tx *sql.Tx) error {
		ok, err := rowExists(tx, `SELECT 1 FROM members WHERE id=$1`, m.ID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("Member not found.")
		}
		if _, err := tx.Exec(`UPDATE members SET name=$1, updated_at=now() WHERE id=$2`, m.Name, m.ID); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM member_event_types WHERE member_id=$1`, m.ID); err != nil {
			return err
		}
		return insertPreferences(tx, m.ID, m.PreferredEventTypes)
	})
}

// Delete is the owning-side cascade: the member owns its registrations and
// preferences, so both junction tables are cleared before the member row.
func (r *sqlMemberRepo) Delete(id int64) error {
	return withTx(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM member_events WHERE member_id=$1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM member_event_types WHERE member_id=$1`, id); err != nil {
			return err
		}
		res, err := tx.Exec(`DELETE FROM members WHERE id=$1`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound("Member not found.")
		}
		return nil
	})
}

func insertPreferences(tx *sql.Tx, memberID int64, typeIDs []int64) error {
	if len(typeIDs) == 0 {
		return nil
	}
	n, err := countRows(tx, `SELECT COUNT(*) FROM event_types WHERE id = ANY($1)`, pq.Array(typeIDs))
	if err != nil {
		return err
	}
	if int(n) != len(uniqueIDs(typeIDs)) {
		return apperr.Validation("Unknown event type in preferences.")
	}
	for _, typeID := range uniqueIDs(typeIDs) {
		if _, err := tx.Exec(
			`INSERT INTO member_event_types(member_id, type_id) VALUES ($1,$2)`,
			memberID, typeID,
		); err != nil {
			return err
		}
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
