// Package memory is an in-process implementation of store. It enforces the same
// unique keys as the mongo indexes.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"hackathon-backend/entity"
	"hackathon-backend/store"
)

type DB struct {
	mu sync.Mutex

	users    map[primitive.ObjectID]*entity.User
	statuses map[primitive.ObjectID]*entity.Status
	settings *entity.Settings
	projects map[primitive.ObjectID]*entity.Project
	prizes   map[primitive.ObjectID]*entity.Prize
	teams    map[primitive.ObjectID]*entity.Team
	events   map[primitive.ObjectID]*entity.Event
	items    map[primitive.ObjectID]*entity.CheckinItem
	records  []*entity.CheckinRecord
}

func New() *DB {
	return &DB{
		users:    map[primitive.ObjectID]*entity.User{},
		statuses: map[primitive.ObjectID]*entity.Status{},
		projects: map[primitive.ObjectID]*entity.Project{},
		prizes:   map[primitive.ObjectID]*entity.Prize{},
		teams:    map[primitive.ObjectID]*entity.Team{},
		events:   map[primitive.ObjectID]*entity.Event{},
		items:    map[primitive.ObjectID]*entity.CheckinItem{},
	}
}

// Store returns the collections backed by db.
func (db *DB) Store() *store.Store {
	return &store.Store{
		Users:    users{db},
		Statuses: statuses{db},
		Settings: settings{db},
		Projects: projects{db},
		Prizes:   prizes{db},
		Teams:    teams{db},
		Events:   events{db},
		Checkins: checkins{db},
	}
}

// AddTeam inserts a team. Teams are managed outside this service.
func (db *DB) AddTeam(t *entity.Team) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	c := copyTeam(t)
	db.teams[t.ID] = c
}

// CountUsers returns the number of users registered with email.
func (db *DB) CountUsers(email string) int {
	db.mu.Lock()
	defer db.mu.Unlock()

	n := 0
	for _, u := range db.users {
		if u.Email == email {
			n++
		}
	}
	return n
}

// CountProjects returns the number of projects of team in event.
func (db *DB) CountProjects(team, event primitive.ObjectID) int {
	db.mu.Lock()
	defer db.mu.Unlock()

	n := 0
	for _, p := range db.projects {
		if p.Team == team && p.Event == event {
			n++
		}
	}
	return n
}

// Records returns a copy of every check-in.
func (db *DB) Records() []entity.CheckinRecord {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]entity.CheckinRecord, 0, len(db.records))
	for _, r := range db.records {
		out = append(out, *r)
	}
	return out
}

func copyProject(p *entity.Project) *entity.Project {
	c := *p
	c.Prizes = append([]primitive.ObjectID{}, p.Prizes...)
	return &c
}

func copyTeam(t *entity.Team) *entity.Team {
	c := *t
	c.Members = append([]primitive.ObjectID{}, t.Members...)
	return &c
}

func copySettings(s *entity.Settings) *entity.Settings {
	c := *s
	if s.Params != nil {
		c.Params = make(map[string]interface{}, len(s.Params))
		for k, v := range s.Params {
			c.Params[k] = v
		}
	}
	return &c
}

type users struct{ db *DB }

func (s users) Create(_ context.Context, u *entity.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, v := range s.db.users {
		if v.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	c := *u
	s.db.users[u.ID] = &c
	return nil
}

func (s users) ByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (s users) byEmail(email string) *entity.User {
	for _, u := range s.db.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (s users) ByEmail(_ context.Context, email string) (*entity.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u := s.byEmail(email)
	if u == nil {
		return nil, store.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (s users) List(context.Context) ([]*entity.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	out := make([]*entity.User, 0, len(s.db.users))
	for _, u := range s.db.users {
		c := *u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (s users) SetPassword(_ context.Context, email, hash string) (*entity.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u := s.byEmail(email)
	if u == nil {
		return nil, store.ErrNotFound
	}
	u.Password = hash
	c := *u
	return &c, nil
}

func (s users) SetAdmin(_ context.Context, email string, admin bool) (*entity.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u := s.byEmail(email)
	if u == nil {
		return nil, store.ErrNotFound
	}
	u.Admin = admin
	c := *u
	return &c, nil
}

type statuses struct{ db *DB }

func (s statuses) Create(_ context.Context, st *entity.Status) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.statuses[st.User]; ok {
		return store.ErrDuplicate
	}
	if st.ID.IsZero() {
		st.ID = primitive.NewObjectID()
	}
	c := *st
	s.db.statuses[st.User] = &c
	return nil
}

func (s statuses) ByUser(_ context.Context, user primitive.ObjectID) (*entity.Status, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	st, ok := s.db.statuses[user]
	if !ok {
		return nil, store.ErrNotFound
	}
	c := *st
	return &c, nil
}

// upsert returns the stored status of user, creating it when absent. Callers hold the lock.
func (s statuses) upsert(user primitive.ObjectID) *entity.Status {
	st, ok := s.db.statuses[user]
	if !ok {
		st = &entity.Status{ID: primitive.NewObjectID(), User: user}
		s.db.statuses[user] = st
	}
	return st
}

func (s statuses) SetVerified(_ context.Context, user primitive.ObjectID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.upsert(user).Verified = true
	return nil
}

func (s statuses) SetAdmitted(_ context.Context, user, admitter primitive.ObjectID, admitted bool) (*entity.Status, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	st := s.upsert(user)
	st.Admitted = &admitted
	st.AdmittedBy = &admitter
	c := *st
	return &c, nil
}

func (s statuses) SetConfirmed(_ context.Context, user primitive.ObjectID) (*entity.Status, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	st, ok := s.db.statuses[user]
	if !ok {
		return nil, store.ErrNotFound
	}
	st.Confirmed = true
	c := *st
	return &c, nil
}

type settings struct{ db *DB }

func (s settings) Get(context.Context) (*entity.Settings, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.db.settings == nil {
		return nil, store.ErrNotFound
	}
	return copySettings(s.db.settings), nil
}

func (s settings) Create(_ context.Context, st *entity.Settings) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.db.settings != nil {
		return store.ErrDuplicate
	}
	if st.ID.IsZero() {
		st.ID = primitive.NewObjectID()
	}
	s.db.settings = copySettings(st)
	return nil
}

func (s settings) Update(_ context.Context, p *entity.SettingsPatch) (*entity.Settings, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.db.settings == nil {
		return nil, store.ErrNotFound
	}
	p.Apply(s.db.settings)
	return copySettings(s.db.settings), nil
}

type projects struct{ db *DB }

func (s projects) Create(_ context.Context, p *entity.Project) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, v := range s.db.projects {
		if v.Team == p.Team && v.Event == p.Event {
			return store.ErrDuplicate
		}
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Prizes == nil {
		p.Prizes = []primitive.ObjectID{}
	}
	s.db.projects[p.ID] = copyProject(p)
	return nil
}

func (s projects) ByID(_ context.Context, id primitive.ObjectID) (*entity.Project, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyProject(p), nil
}

func (s projects) ByTeamAndEvent(_ context.Context, team, event primitive.ObjectID) (*entity.Project, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, p := range s.db.projects {
		if p.Team == team && p.Event == event {
			return copyProject(p), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s projects) List(context.Context) ([]*entity.Project, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	out := make([]*entity.Project, 0, len(s.db.projects))
	for _, p := range s.db.projects {
		out = append(out, copyProject(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (s projects) Update(_ context.Context, id primitive.ObjectID, patch *entity.ProjectPatch) (*entity.Project, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	patch.Apply(p)
	return copyProject(p), nil
}

func (s projects) Delete(_ context.Context, id primitive.ObjectID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.projects[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.db.projects, id)
	return nil
}

func (s projects) AddPrize(_ context.Context, id, prize primitive.ObjectID) (*entity.Project, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	p.Prizes = append(p.Prizes, prize)
	return copyProject(p), nil
}

type prizes struct{ db *DB }

func (s prizes) Create(_ context.Context, p *entity.Prize) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	c := *p
	s.db.prizes[p.ID] = &c
	return nil
}

func (s prizes) ByID(_ context.Context, id primitive.ObjectID) (*entity.Prize, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.prizes[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (s prizes) List(context.Context) ([]*entity.Prize, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	out := make([]*entity.Prize, 0, len(s.db.prizes))
	for _, p := range s.db.prizes {
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (s prizes) Update(_ context.Context, id primitive.ObjectID, patch *entity.PrizePatch) (*entity.Prize, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.prizes[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	patch.Apply(p)
	c := *p
	return &c, nil
}

func (s prizes) Delete(_ context.Context, id primitive.ObjectID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.prizes[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.db.prizes, id)
	return nil
}

type teams struct{ db *DB }

func (s teams) ByID(_ context.Context, id primitive.ObjectID) (*entity.Team, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t, ok := s.db.teams[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyTeam(t), nil
}

func (s teams) ByMember(_ context.Context, user primitive.ObjectID) (*entity.Team, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, t := range s.db.teams {
		if t.HasMember(user) {
			return copyTeam(t), nil
		}
	}
	return nil, store.ErrNotFound
}

type events struct{ db *DB }

func (s events) ByName(_ context.Context, name string) (*entity.Event, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, e := range s.db.events {
		if e.Name == name {
			c := *e
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s events) Create(_ context.Context, e *entity.Event) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, v := range s.db.events {
		if v.Name == e.Name {
			return store.ErrDuplicate
		}
	}
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	c := *e
	s.db.events[e.ID] = &c
	return nil
}

type checkins struct{ db *DB }

func (s checkins) CreateItem(_ context.Context, item *entity.CheckinItem) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	c := *item
	s.db.items[item.ID] = &c
	return nil
}

func (s checkins) ItemByID(_ context.Context, id primitive.ObjectID) (*entity.CheckinItem, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	item, ok := s.db.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c := *item
	return &c, nil
}

func (s checkins) Items(context.Context) ([]*entity.CheckinItem, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	out := make([]*entity.CheckinItem, 0, len(s.db.items))
	for _, item := range s.db.items {
		c := *item
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s checkins) Record(_ context.Context, r *entity.CheckinRecord) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, v := range s.db.records {
		if v.User == r.User && v.Item == r.Item {
			return store.ErrDuplicate
		}
	}
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	c := *r
	s.db.records = append(s.db.records, &c)
	return nil
}
