package service

import (
	"context"
	"sort"

	"carecircle/internal/domain"
	"carecircle/internal/repository"
)

// In-memory repository fakes for service tests.

type fakePersons struct {
	nextID int64
	people map[int64]*domain.Person
}

func newFakePersons() *fakePersons {
	return &fakePersons{people: map[int64]*domain.Person{}}
}

func (f *fakePersons) add(role, name string) *domain.Person {
	f.nextID++
	p := &domain.Person{ID: f.nextID, Role: role, Name: name}
	f.people[p.ID] = p
	return p
}

func (f *fakePersons) GetPerson(ctx context.Context, id int64) (*domain.Person, error) {
	p, ok := f.people[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakePersons) GetPersons(ctx context.Context, ids []int64) (map[int64]*domain.Person, error) {
	result := map[int64]*domain.Person{}
	for _, id := range ids {
		if p, ok := f.people[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (f *fakePersons) GetPersonByEmail(ctx context.Context, email string) (*domain.Person, error) {
	for _, p := range f.people {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePersons) CreatePerson(ctx context.Context, p *domain.Person) (int64, error) {
	f.nextID++
	p.ID = f.nextID
	f.people[p.ID] = p
	return p.ID, nil
}

type fakeCircle struct {
	nextID int64
	links  map[[2]int64]*domain.CircleLink
}

func newFakeCircle() *fakeCircle {
	return &fakeCircle{links: map[[2]int64]*domain.CircleLink{}}
}

func (f *fakeCircle) sorted() []*domain.CircleLink {
	all := make([]*domain.CircleLink, 0, len(f.links))
	for _, l := range f.links {
		all = append(all, l)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

func (f *fakeCircle) LinksByMember(ctx context.Context, memberID int64, roles []string) ([]*domain.CircleLink, error) {
	result := make([]*domain.CircleLink, 0)
	for _, l := range f.sorted() {
		if l.MemberID == memberID && containsRole(roles, l.Role) {
			result = append(result, l)
		}
	}
	return result, nil
}

func (f *fakeCircle) LinksByClient(ctx context.Context, clientID int64, roles []string, excludeMemberID int64) ([]*domain.CircleLink, error) {
	result := make([]*domain.CircleLink, 0)
	for _, l := range f.sorted() {
		if l.ClientID == clientID && l.MemberID != excludeMemberID && containsRole(roles, l.Role) {
			result = append(result, l)
		}
	}
	return result, nil
}

func (f *fakeCircle) GetLink(ctx context.Context, clientID, memberID int64) (*domain.CircleLink, error) {
	l, ok := f.links[[2]int64{clientID, memberID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return l, nil
}

func (f *fakeCircle) UpsertLink(ctx context.Context, link *domain.CircleLink) error {
	key := [2]int64{link.ClientID, link.MemberID}
	if existing, ok := f.links[key]; ok {
		link.ID = existing.ID
		link.CreatedAt = existing.CreatedAt
	} else {
		f.nextID++
		link.ID = f.nextID
	}
	stored := *link
	f.links[key] = &stored
	return nil
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

type fakeTasks struct {
	tasks []*domain.Task
}

func (f *fakeTasks) CreateTask(ctx context.Context, t *domain.Task) (int64, error) {
	t.ID = int64(len(f.tasks) + 1)
	f.tasks = append(f.tasks, t)
	return t.ID, nil
}

func (f *fakeTasks) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTasks) UpdateTask(ctx context.Context, t *domain.Task) error {
	for i, existing := range f.tasks {
		if existing.ID == t.ID {
			f.tasks[i] = t
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeTasks) ListTasksForUser(ctx context.Context, userID int64, status string, limit int) ([]*domain.Task, error) {
	result := make([]*domain.Task, 0)
	for _, t := range f.tasks {
		if t.UserID == userID && (status == "" || t.Status == status) {
			result = append(result, t)
		}
	}
	return result, nil
}

func (f *fakeTasks) ListActionableTasks(ctx context.Context, clientIDs []int64) ([]*domain.Task, error) {
	result := make([]*domain.Task, 0)
	for _, t := range f.tasks {
		if containsID(clientIDs, t.UserID) && (t.Status == domain.TaskStatusOpen || t.Status == domain.TaskStatusMissed) {
			result = append(result, t)
		}
	}
	return result, nil
}

type fakeCheckins struct {
	checkins []*domain.CheckIn
}

func (f *fakeCheckins) CreateCheckIn(ctx context.Context, c *domain.CheckIn) (int64, error) {
	c.ID = int64(len(f.checkins) + 1)
	f.checkins = append(f.checkins, c)
	return c.ID, nil
}

func (f *fakeCheckins) ListCheckInsForUser(ctx context.Context, userID int64, limit int) ([]*domain.CheckIn, error) {
	result := make([]*domain.CheckIn, 0)
	for _, c := range f.checkins {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeCheckins) ListCheckInsForClients(ctx context.Context, clientIDs []int64) ([]*domain.CheckIn, error) {
	result := make([]*domain.CheckIn, 0)
	for _, c := range f.checkins {
		if containsID(clientIDs, c.UserID) {
			result = append(result, c)
		}
	}
	return result, nil
}

type fakeAlerts struct {
	alerts []*domain.Alert
}

func (f *fakeAlerts) CreateAlert(ctx context.Context, a *domain.Alert) (int64, error) {
	a.ID = int64(len(f.alerts) + 1)
	f.alerts = append(f.alerts, a)
	return a.ID, nil
}

func (f *fakeAlerts) GetAlert(ctx context.Context, id int64) (*domain.Alert, error) {
	for _, a := range f.alerts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAlerts) UpdateAlert(ctx context.Context, a *domain.Alert) error {
	for i, existing := range f.alerts {
		if existing.ID == a.ID {
			f.alerts[i] = a
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeAlerts) ListAlertsForCaregiver(ctx context.Context, caregiverID int64, onlyUnread bool, limit int) ([]*domain.Alert, error) {
	result := make([]*domain.Alert, 0)
	for _, a := range f.alerts {
		if a.CaregiverID == caregiverID && (!onlyUnread || !a.IsRead) {
			result = append(result, a)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type fakeMemories struct {
	memories []*domain.Memory
}

func (f *fakeMemories) CreateMemory(ctx context.Context, m *domain.Memory) (int64, error) {
	m.ID = int64(len(f.memories) + 1)
	f.memories = append(f.memories, m)
	return m.ID, nil
}

func (f *fakeMemories) GetMemory(ctx context.Context, id int64) (*domain.Memory, error) {
	for _, m := range f.memories {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMemories) UpdateMemory(ctx context.Context, m *domain.Memory) error {
	for i, existing := range f.memories {
		if existing.ID == m.ID {
			f.memories[i] = m
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeMemories) DeleteMemory(ctx context.Context, id int64) error {
	for i, m := range f.memories {
		if m.ID == id {
			f.memories = append(f.memories[:i], f.memories[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeMemories) ListMemories(ctx context.Context, limit, offset int) ([]*domain.Memory, error) {
	return f.memories, nil
}

func (f *fakeMemories) ListMemoriesForClients(ctx context.Context, clientIDs []int64) ([]*domain.Memory, error) {
	result := make([]*domain.Memory, 0)
	for _, m := range f.memories {
		if m.UserID == nil || containsID(clientIDs, *m.UserID) {
			result = append(result, m)
		}
	}
	return result, nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

var (
	_ repository.PersonsRepository  = (*fakePersons)(nil)
	_ repository.CircleRepository   = (*fakeCircle)(nil)
	_ repository.TasksRepository    = (*fakeTasks)(nil)
	_ repository.CheckInsRepository = (*fakeCheckins)(nil)
	_ repository.AlertsRepository   = (*fakeAlerts)(nil)
	_ repository.MemoriesRepository = (*fakeMemories)(nil)
)
