package routes

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"clubapi/apperr"
	"clubapi/models"
)

// memStore backs the mock repositories with the same association semantics
// the SQL implementations enforce, so handler tests exercise real outcomes.
type memStore struct {
	types   map[int64]models.EventType
	events  map[int64]models.Event
	members map[int64]string
	prefs   map[[2]int64]bool // member, type
	regs    map[[2]int64]bool // member, event

	typeSeq, eventSeq, memberSeq int64
}

func newMemStore() *memStore {
	return &memStore{
		types:   map[int64]models.EventType{},
		events:  map[int64]models.Event{},
		members: map[int64]string{},
		prefs:   map[[2]int64]bool{},
		regs:    map[[2]int64]bool{},
	}
}

/* ---------- event types ---------- */

type mockTypeRepo struct{ s *memStore }

func (m *mockTypeRepo) GetAll() ([]models.EventType, error) {
	out := []models.EventType{}
	for id := int64(1); id <= m.s.typeSeq; id++ {
		if t, ok := m.s.types[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTypeRepo) GetByID(id int64) (models.EventType, error) {
	t, ok := m.s.types[id]
	if !ok {
		return models.EventType{}, apperr.NotFound("Event type not found.")
	}
	return t, nil
}

func (m *mockTypeRepo) Create(t *models.EventType) error {
	for _, existing := range m.s.types {
		if existing.Name == t.Name {
			return apperr.Conflict("An event type with this name already exists.")
		}
	}
	m.s.typeSeq++
	t.ID = m.s.typeSeq
	m.s.types[t.ID] = *t
	return nil
}

func (m *mockTypeRepo) Update(t *models.EventType) error {
	if _, ok := m.s.types[t.ID]; !ok {
		return apperr.NotFound("Event type not found.")
	}
	m.s.types[t.ID] = *t
	return nil
}

func (m *mockTypeRepo) Delete(id int64) (int64, error) {
	if _, ok := m.s.types[id]; !ok {
		return 0, apperr.NotFound("Event type not found.")
	}
	for _, e := range m.s.events {
		if e.TypeID == id {
			return 0, apperr.Conflict("Event type is in use by one or more events.")
		}
	}
	for key := range m.s.prefs {
		if key[1] == id {
			return 0, apperr.Conflict("Event type is preferred by one or more members.")
		}
	}
	delete(m.s.types, id)
	return 1, nil
}

/* ---------- events ---------- */

type mockEventRepo struct{ s *memStore }

func (m *mockEventRepo) GetAll() ([]models.Event, error) {
	out := []models.Event{}
	for id := int64(1); id <= m.s.eventSeq; id++ {
		if e, ok := m.s.events[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEventRepo) GetByID(id int64) (models.Event, error) {
	e, ok := m.s.events[id]
	if !ok {
		return models.Event{}, apperr.NotFound("Event not found.")
	}
	return e, nil
}

func (m *mockEventRepo) Create(e *models.Event) error {
	if _, ok := m.s.types[e.TypeID]; !ok {
		return apperr.Validation("Unknown event type.")
	}
	m.s.eventSeq++
	e.ID = m.s.eventSeq
	m.s.events[e.ID] = *e
	return nil
}

func (m *mockEventRepo) Update(e *models.Event) error {
	if _, ok := m.s.events[e.ID]; !ok {
		return apperr.NotFound("Event not found.")
	}
	if _, ok := m.s.types[e.TypeID]; !ok {
		return apperr.Validation("Unknown event type.")
	}
	m.s.events[e.ID] = *e
	return nil
}

func (m *mockEventRepo) Delete(id int64) (int64, error) {
	if _, ok := m.s.events[id]; !ok {
		return 0, apperr.NotFound("Event not found.")
	}
	for key := range m.s.regs {
		if key[1] == id {
			return 0, apperr.Conflict("Event has active registrations.")
		}
	}
	delete(m.s.events, id)
	return 1, nil
}

/* ---------- members ---------- */

type mockMemberRepo struct{ s *memStore }

func (m *mockMemberRepo) memberAt(id int64) models.Member {
	out := models.Member{ID: id, Name: m.s.members[id], PreferredEventTypes: []int64{}}
	for typeID := int64(1); typeID <= m.s.typeSeq; typeID++ {
		if m.s.prefs[[2]int64{id, typeID}] {
			out.PreferredEventTypes = append(out.PreferredEventTypes, typeID)
		}
	}
	return out
}

func (m *mockMemberRepo) GetAll() ([]models.Member, error) {
	out := []models.Member{}
	for id := int64(1); id <= m.s.memberSeq; id++ {
		if _, ok := m.s.members[id]; ok {
			out = append(out, m.memberAt(id))
		}
	}
	return out, nil
}

func (m *mockMemberRepo) GetByID(id int64) (models.Member, error) {
	if _, ok := m.s.members[id]; !ok {
		return models.Member{}, apperr.NotFound("Member not found.")
	}
	return m.memberAt(id), nil
}

func (m *mockMemberRepo) setPrefs(id int64, typeIDs []int64) error {
	for _, typeID := range typeIDs {
		if _, ok := m.s.types[typeID]; !ok {
			return apperr.Validation("Unknown event type in preferences.")
		}
	}
	for key := range m.s.prefs {
		if key[0] == id {
			delete(m.s.prefs, key)
		}
	}
	for _, typeID := range typeIDs {
		m.s.prefs[[2]int64{id, typeID}] = true
	}
	return nil
}

func (m *mockMemberRepo) Create(mem *models.Member) error {
	m.s.memberSeq++
	mem.ID = m.s.memberSeq
	m.s.members[mem.ID] = mem.Name
	if err := m.setPrefs(mem.ID, mem.PreferredEventTypes); err != nil {
		delete(m.s.members, mem.ID)
		return err
	}
	return nil
}

func (m *mockMemberRepo) Update(mem *models.Member) error {
	if _, ok := m.s.members[mem.ID]; !ok {
		return apperr.NotFound("Member not found.")
	}
	m.s.members[mem.ID] = mem.Name
	return m.setPrefs(mem.ID, mem.PreferredEventTypes)
}

func (m *mockMemberRepo) Delete(id int64) error {
	if _, ok := m.s.members[id]; !ok {
		return apperr.NotFound("Member not found.")
	}
	for key := range m.s.regs {
		if key[0] == id {
			delete(m.s.regs, key)
		}
	}
	for key := range m.s.prefs {
		if key[0] == id {
			delete(m.s.prefs, key)
		}
	}
	delete(m.s.members, id)
	return nil
}

/* ---------- preferences & registrations ---------- */

type mockRegRepo struct{ s *memStore }

func (m *mockRegRepo) AddPreference(memberID, typeID int64) error {
	if _, ok := m.s.members[memberID]; !ok {
		return apperr.NotFound("Member not found.")
	}
	if _, ok := m.s.types[typeID]; !ok {
		return apperr.NotFound("Event type not found.")
	}
	key := [2]int64{memberID, typeID}
	if m.s.prefs[key] {
		return apperr.Conflict("Preference already exists.")
	}
	m.s.prefs[key] = true
	return nil
}

func (m *mockRegRepo) RemovePreference(memberID, typeID int64) error {
	key := [2]int64{memberID, typeID}
	if !m.s.prefs[key] {
		return apperr.NotFound("Preference not found.")
	}
	delete(m.s.prefs, key)
	return nil
}

func (m *mockRegRepo) Register(memberID, eventID int64) error {
	if _, ok := m.s.members[memberID]; !ok {
		return apperr.NotFound("Member not found.")
	}
	e, ok := m.s.events[eventID]
	if !ok {
		return apperr.NotFound("Event not found.")
	}
	if !m.s.prefs[[2]int64{memberID, e.TypeID}] {
		return apperr.Conflict("Member does not prefer this event's type.")
	}
	key := [2]int64{memberID, eventID}
	if m.s.regs[key] {
		return apperr.Conflict("Already registered for this event.")
	}
	m.s.regs[key] = true
	return nil
}

func (m *mockRegRepo) Cancel(memberID, eventID int64) error {
	key := [2]int64{memberID, eventID}
	if !m.s.regs[key] {
		return apperr.NotFound("Registration not found.")
	}
	delete(m.s.regs, key)
	return nil
}

/* ---------- helpers ---------- */

func newTestServer(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := newMemStore()
	srv := gin.New()
	RegisterRoutes(srv, &mockTypeRepo{s}, &mockEventRepo{s}, &mockMemberRepo{s}, &mockRegRepo{s}, nil)
	return srv, s
}

func doJSON(t *testing.T, srv *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("want %d, got %d body=%s", want, w.Code, w.Body.String())
	}
}
