package services

import (
	"context"
	"time"

	"github.com/tbourn/mission-control/internal/domain"
	"github.com/tbourn/mission-control/internal/store"
)

// ----- In-memory store -----

// memStore is a minimal Store backed by maps. Errors can be injected per
// operation through the fail map (keyed by op name).
type memStore struct {
	missions  map[string]*domain.Mission
	incidents map[string]*domain.Incident
	users     map[string]*domain.User
	idem      map[string]*domain.Idempotency

	missionOrder  []string
	incidentOrder []string
	userOrder     []string

	fail map[string]error

	appended []string
}

func newMemStore() *memStore {
	return &memStore{
		missions:  map[string]*domain.Mission{},
		incidents: map[string]*domain.Incident{},
		users:     map[string]*domain.User{},
		idem:      map[string]*domain.Idempotency{},
		fail:      map[string]error{},
	}
}

func (s *memStore) check(op, id string) error {
	if err := s.fail[op]; err != nil {
		return err
	}
	if id != "" && !store.ValidID(id) {
		return store.E(op, store.KindMalformedID, nil)
	}
	return nil
}

func (s *memStore) CreateMission(_ context.Context, m *domain.Mission) (*domain.Mission, error) {
	const op = "missions.create"
	if err := s.check(op, ""); err != nil {
		return nil, err
	}
	for _, other := range s.missions {
		if other.Name == m.Name {
			return nil, store.E(op, store.KindDuplicateKey, nil)
		}
	}
	rec := *m
	rec.ID = store.NewID()
	if rec.Incidents == nil {
		rec.Incidents = []string{}
	}
	s.missions[rec.ID] = &rec
	s.missionOrder = append(s.missionOrder, rec.ID)
	cp := rec
	return &cp, nil
}

func (s *memStore) ListMissions(context.Context) ([]domain.Mission, error) {
	if err := s.check("missions.list", ""); err != nil {
		return nil, err
	}
	out := []domain.Mission{}
	for _, id := range s.missionOrder {
		if m, ok := s.missions[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *memStore) GetMission(_ context.Context, id string) (*domain.Mission, error) {
	const op = "missions.get"
	if err := s.check(op, id); err != nil {
		return nil, err
	}
	m, ok := s.missions[id]
	if !ok {
		return nil, store.NotFound(op)
	}
	cp := *m
	return &cp, nil
}

func (s *memStore) UpdateMission(_ context.Context, id string, m *domain.Mission) (*domain.Mission, error) {
	const op = "missions.update"
	if err := s.check(op, id); err != nil {
		return nil, err
	}
	cur, ok := s.missions[id]
	if !ok {
		return nil, store.NotFound(op)
	}
	for oid, other := range s.missions {
		if oid != id && other.Name == m.Name {
			return nil, store.E(op, store.KindDuplicateKey, nil)
		}
	}
	cur.Name, cur.Description, cur.Status, cur.Commander = m.Name, m.Description, m.Status, m.Commander
	cp := *cur
	return &cp, nil
}

func (s *memStore) DeleteMission(_ context.Context, id string) error {
	const op = "missions.delete"
	if err := s.check(op, id); err != nil {
		return err
	}
	if _, ok := s.missions[id]; !ok {
		return store.NotFound(op)
	}
	delete(s.missions, id)
	return nil
}

func (s *memStore) AppendMissionIncident(_ context.Context, missionID, incidentID string) error {
	const op = "missions.append_incident"
	if err := s.check(op, missionID); err != nil {
		return err
	}
	m, ok := s.missions[missionID]
	if !ok {
		return store.NotFound(op)
	}
	m.Incidents = append(m.Incidents, incidentID)
	s.appended = append(s.appended, incidentID)
	return nil
}

func (s *memStore) MissionsStats(context.Context) (int64, *time.Time, error) {
	if err := s.check("missions.stats", ""); err != nil {
		return 0, nil, err
	}
	return int64(len(s.missions)), nil, nil
}

func (s *memStore) CreateIncident(_ context.Context, i *domain.Incident) (*domain.Incident, error) {
	if err := s.check("incidents.create", ""); err != nil {
		return nil, err
	}
	rec := *i
	rec.ID = store.NewID()
	s.incidents[rec.ID] = &rec
	s.incidentOrder = append(s.incidentOrder, rec.ID)
	cp := rec
	return &cp, nil
}

func (s *memStore) ListIncidentsByMission(_ context.Context, missionID string) ([]domain.Incident, error) {
	if err := s.check("incidents.list", missionID); err != nil {
		return nil, err
	}
	out := []domain.Incident{}
	for _, id := range s.incidentOrder {
		if i, ok := s.incidents[id]; ok && i.MissionID == missionID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (s *memStore) GetIncident(_ context.Context, id string) (*domain.Incident, error) {
	const op = "incidents.get"
	if err := s.check(op, id); err != nil {
		return nil, err
	}
	i, ok := s.incidents[id]
	if !ok {
		return nil, store.NotFound(op)
	}
	cp := *i
	return &cp, nil
}

func (s *memStore) UpdateIncident(_ context.Context, id string, i *domain.Incident) (*domain.Incident, error) {
	const op = "incidents.update"
	if err := s.check(op, id); err != nil {
		return nil, err
	}
	cur, ok := s.incidents[id]
	if !ok {
		return nil, store.NotFound(op)
	}
	cur.Title, cur.Description, cur.Status = i.Title, i.Description, i.Status
	cp := *cur
	return &cp, nil
}

func (s *memStore) DeleteIncident(_ context.Context, id string) error {
	const op = "incidents.delete"
	if err := s.check(op, id); err != nil {
		return err
	}
	if _, ok := s.incidents[id]; !ok {
		return store.NotFound(op)
	}
	delete(s.incidents, id)
	return nil
}

func (s *memStore) CreateUser(_ context.Context, u *domain.User) (*domain.User, error) {
	if err := s.check("users.create", ""); err != nil {
		return nil, err
	}
	rec := *u
	rec.ID = store.NewID()
	s.users[rec.ID] = &rec
	s.userOrder = append(s.userOrder, rec.ID)
	cp := rec
	return &cp, nil
}

func (s *memStore) ListUsers(context.Context) ([]domain.User, error) {
	if err := s.check("users.list", ""); err != nil {
		return nil, err
	}
	out := []domain.User{}
	for _, id := range s.userOrder {
		if u, ok := s.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *memStore) GetUser(_ context.Context, id string) (*domain.User, error) {
	const op = "users.get"
	if err := s.check(op, id); err != nil {
		return nil, err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, store.NotFound(op)
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) UpdateUser(_ context.Context, id string, u *domain.User) (*domain.User, error) {
	const op = "users.update"
	if err := s.check(op, id); err != nil {
		return nil, err
	}
	cur, ok := s.users[id]
	if !ok {
		return nil, store.NotFound(op)
	}
	cur.Name, cur.Email, cur.Password = u.Name, u.Email, u.Password
	cp := *cur
	return &cp, nil
}

func (s *memStore) DeleteUser(_ context.Context, id string) error {
	const op = "users.delete"
	if err := s.check(op, id); err != nil {
		return err
	}
	if _, ok := s.users[id]; !ok {
		return store.NotFound(op)
	}
	delete(s.users, id)
	return nil
}

func (s *memStore) UsersStats(context.Context) (int64, *time.Time, error) {
	return int64(len(s.users)), nil, nil
}

func (s *memStore) GetIdempotency(_ context.Context, key, scope string, now time.Time) (*domain.Idempotency, error) {
	const op = "idempotency.get"
	if err := s.check(op, ""); err != nil {
		return nil, err
	}
	rec, ok := s.idem[key+"|"+scope]
	if !ok || !rec.ExpiresAt.After(now) {
		return nil, store.NotFound(op)
	}
	cp := *rec
	return &cp, nil
}

func (s *memStore) CreateIdempotency(_ context.Context, key, scope, resourceID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	const op = "idempotency.create"
	if err := s.check(op, ""); err != nil {
		return nil, err
	}
	k := key + "|" + scope
	if _, ok := s.idem[k]; ok {
		return nil, store.E(op, store.KindDuplicateKey, nil)
	}
	now := time.Now().UTC()
	rec := &domain.Idempotency{ID: store.NewID(), Key: key, Scope: scope, ResourceID: resourceID, Status: status, CreatedAt: now, ExpiresAt: now.Add(ttl)}
	s.idem[k] = rec
	return rec, nil
}

func (s *memStore) PurgeExpiredIdempotency(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for k, rec := range s.idem {
		if !rec.ExpiresAt.After(now) {
			delete(s.idem, k)
			n++
		}
	}
	return n, nil
}

func (s *memStore) Ping(context.Context) error  { return s.check("ping", "") }
func (s *memStore) Close(context.Context) error { return nil }

var _ Store = (*memStore)(nil)
