package httpapi

import (
	"context"

	"carecircle/internal/domain"
	"carecircle/internal/repository"
)

// In-memory repository fakes for handler tests. Only the methods the handlers
// exercise have real behavior; the remainder satisfy the interfaces.

type stubPersons struct {
	people map[int64]*domain.Person
}

func newStubPersons(people ...*domain.Person) *stubPersons {
	s := &stubPersons{people: map[int64]*domain.Person{}}
	for _, p := range people {
		s.people[p.ID] = p
	}
	return s
}

func (s *stubPersons) GetPerson(ctx context.Context, id int64) (*domain.Person, error) {
	p, ok := s.people[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (s *stubPersons) GetPersons(ctx context.Context, ids []int64) (map[int64]*domain.Person, error) {
	result := map[int64]*domain.Person{}
	for _, id := range ids {
		if p, ok := s.people[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (s *stubPersons) GetPersonByEmail(ctx context.Context, email string) (*domain.Person, error) {
	for _, p := range s.people {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubPersons) CreatePerson(ctx context.Context, p *domain.Person) (int64, error) {
	p.ID = int64(len(s.people) + 1)
	s.people[p.ID] = p
	return p.ID, nil
}

type stubCircle struct {
	links []*domain.CircleLink
}

func (s *stubCircle) LinksByMember(ctx context.Context, memberID int64, roles []string) ([]*domain.CircleLink, error) {
	result := make([]*domain.CircleLink, 0)
	for _, l := range s.links {
		if l.MemberID == memberID && roleIn(roles, l.Role) {
			result = append(result, l)
		}
	}
	return result, nil
}

func (s *stubCircle) LinksByClient(ctx context.Context, clientID int64, roles []string, excludeMemberID int64) ([]*domain.CircleLink, error) {
	result := make([]*domain.CircleLink, 0)
	for _, l := range s.links {
		if l.ClientID == clientID && l.MemberID != excludeMemberID && roleIn(roles, l.Role) {
			result = append(result, l)
		}
	}
	return result, nil
}

func (s *stubCircle) GetLink(ctx context.Context, clientID, memberID int64) (*domain.CircleLink, error) {
	for _, l := range s.links {
		if l.ClientID == clientID && l.MemberID == memberID {
			return l, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubCircle) UpsertLink(ctx context.Context, link *domain.CircleLink) error {
	for i, l := range s.links {
		if l.ClientID == link.ClientID && l.MemberID == link.MemberID {
			link.ID = l.ID
			s.links[i] = link
			return nil
		}
	}
	link.ID = int64(len(s.links) + 1)
	s.links = append(s.links, link)
	return nil
}

func roleIn(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

type stubTasks struct {
	tasks []*domain.Task
}

func (s *stubTasks) CreateTask(ctx context.Context, t *domain.Task) (int64, error) {
	t.ID = int64(len(s.tasks) + 1)
	s.tasks = append(s.tasks, t)
	return t.ID, nil
}

func (s *stubTasks) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubTasks) UpdateTask(ctx context.Context, t *domain.Task) error {
	for i, existing := range s.tasks {
		if existing.ID == t.ID {
			s.tasks[i] = t
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *stubTasks) ListTasksForUser(ctx context.Context, userID int64, status string, limit int) ([]*domain.Task, error) {
	result := make([]*domain.Task, 0)
	for _, t := range s.tasks {
		if t.UserID == userID && (status == "" || t.Status == status) {
			result = append(result, t)
		}
	}
	return result, nil
}

func (s *stubTasks) ListActionableTasks(ctx context.Context, clientIDs []int64) ([]*domain.Task, error) {
	result := make([]*domain.Task, 0)
	for _, t := range s.tasks {
		if idIn(clientIDs, t.UserID) && (t.Status == domain.TaskStatusOpen || t.Status == domain.TaskStatusMissed) {
			result = append(result, t)
		}
	}
	return result, nil
}

type stubCheckins struct {
	checkins []*domain.CheckIn
}

func (s *stubCheckins) CreateCheckIn(ctx context.Context, c *domain.CheckIn) (int64, error) {
	c.ID = int64(len(s.checkins) + 1)
	s.checkins = append(s.checkins, c)
	return c.ID, nil
}

func (s *stubCheckins) ListCheckInsForUser(ctx context.Context, userID int64, limit int) ([]*domain.CheckIn, error) {
	result := make([]*domain.CheckIn, 0)
	for _, c := range s.checkins {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (s *stubCheckins) ListCheckInsForClients(ctx context.Context, clientIDs []int64) ([]*domain.CheckIn, error) {
	result := make([]*domain.CheckIn, 0)
	for _, c := range s.checkins {
		if idIn(clientIDs, c.UserID) {
			result = append(result, c)
		}
	}
	return result, nil
}

type stubAlerts struct {
	alerts []*domain.Alert
}

func (s *stubAlerts) CreateAlert(ctx context.Context, a *domain.Alert) (int64, error) {
	a.ID = int64(len(s.alerts) + 1)
	s.alerts = append(s.alerts, a)
	return a.ID, nil
}

func (s *stubAlerts) GetAlert(ctx context.Context, id int64) (*domain.Alert, error) {
	for _, a := range s.alerts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubAlerts) UpdateAlert(ctx context.Context, a *domain.Alert) error {
	for i, existing := range s.alerts {
		if existing.ID == a.ID {
			s.alerts[i] = a
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *stubAlerts) ListAlertsForCaregiver(ctx context.Context, caregiverID int64, onlyUnread bool, limit int) ([]*domain.Alert, error) {
	result := make([]*domain.Alert, 0)
	for _, a := range s.alerts {
		if a.CaregiverID == caregiverID && (!onlyUnread || !a.IsRead) {
			result = append(result, a)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type stubMemories struct {
	memories []*domain.Memory
}

func (s *stubMemories) CreateMemory(ctx context.Context, m *domain.Memory) (int64, error) {
	m.ID = int64(len(s.memories) + 1)
	s.memories = append(s.memories, m)
	return m.ID, nil
}

func (s *stubMemories) GetMemory(ctx context.Context, id int64) (*domain.Memory, error) {
	for _, m := range s.memories {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubMemories) UpdateMemory(ctx context.Context, m *domain.Memory) error {
	for i, existing := range s.memories {
		if existing.ID == m.ID {
			s.memories[i] = m
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *stubMemories) DeleteMemory(ctx context.Context, id int64) error {
	for i, m := range s.memories {
		if m.ID == id {
			s.memories = append(s.memories[:i], s.memories[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *stubMemories) ListMemories(ctx context.Context, limit, offset int) ([]*domain.Memory, error) {
	return s.memories, nil
}

func (s *stubMemories) ListMemoriesForClients(ctx context.Context, clientIDs []int64) ([]*domain.Memory, error) {
	result := make([]*domain.Memory, 0)
	for _, m := range s.memories {
		if m.UserID == nil || idIn(clientIDs, *m.UserID) {
			result = append(result, m)
		}
	}
	return result, nil
}

func idIn(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

var (
	_ repository.PersonsRepository  = (*stubPersons)(nil)
	_ repository.CircleRepository   = (*stubCircle)(nil)
	_ repository.TasksRepository    = (*stubTasks)(nil)
	_ repository.CheckInsRepository = (*stubCheckins)(nil)
	_ repository.AlertsRepository   = (*stubAlerts)(nil)
	_ repository.MemoriesRepository = (*stubMemories)(nil)
)
