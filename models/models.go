package models

type EventType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Event struct {
	ID     int64  `json:"id"`
	TypeID int64  `json:"type_id"`
	Name   string `json:"name"`
	Date   string `json:"date"` // YYYY-MM-DD
}

type Member struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	PreferredEventTypes []int64 `json:"preferredEventTypes"`
}

// ===== Event types =====
type EventTypeRepository interface {
	GetAll() ([]EventType, error)
	GetByID(id int64) (EventType, error)
	Create(t *EventType) error
	Update(t *EventType) error
	// Delete refuses (Conflict) while any event or member preference
	// references the type. Returns the number of rows removed.
	Delete(id int64) (int64, error)
}

// ===== Events =====
type EventRepository interface {
	GetAll() ([]Event, error)
	GetByID(id int64) (Event, error)
	Create(e *Event) error
	Update(e *Event) error
	// Delete refuses (Conflict) while any registration references the event.
	Delete(id int64) (int64, error)
}

// ===== Members =====
type MemberRepository interface {
	GetAll() ([]Member, error)
	GetByID(id int64) (Member, error)
	Create(m *Member) error
	// Update replaces the preference set wholesale when provided.
	Update(m *Member) error
	// Delete cascades: registrations and preferences go first, then the row.
	Delete(id int64) error
}

// ===== Preferences & registrations =====
type RegistrationRepository interface {
	AddPreference(memberID, typeID int64) error
	RemovePreference(memberID, typeID int64) error
	// Register enforces the preference-matching rule: the member must prefer
	// the event's type before a registration row may exist.
	Register(memberID, eventID int64) error
	Cancel(memberID, eventID int64) error
}
