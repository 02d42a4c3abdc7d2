package usecase

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"ayursathi-api/internal/domain/entity"
	"ayursathi-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func intPtr(v int) *int { return &v }

// fakeUserRepo keeps users in memory.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]entity.User
	err   error
}

func newFakeUserRepo(users ...entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) UpdateMedicalHistory(_ context.Context, id uuid.UUID, history []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return 0, nil
	}
	u.MedicalHistory = history
	r.users[id] = u
	return 1, nil
}

// fakeDiagnosisRepo stores copies so callers cannot mutate stored rows.
type fakeDiagnosisRepo struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]entity.Diagnosis
	clock     time.Time
	createErr error
	updateErr error
}

func newFakeDiagnosisRepo() *fakeDiagnosisRepo {
	return &fakeDiagnosisRepo{
		rows:  make(map[uuid.UUID]entity.Diagnosis),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeDiagnosisRepo) Create(_ context.Context, d *entity.Diagnosis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.clock = r.clock.Add(time.Second)
	d.CreatedAt = r.clock
	d.UpdatedAt = r.clock
	r.rows[d.ID] = *d
	return nil
}

func (r *fakeDiagnosisRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Diagnosis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *fakeDiagnosisRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]entity.Diagnosis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Diagnosis{}
	for _, d := range r.rows {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}

func (r *fakeDiagnosisRepo) UpdateResults(_ context.Context, d *entity.Diagnosis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.rows[d.ID]
	if !ok {
		return ErrDiagnosisNotFound
	}
	stored.Results = d.Results
	stored.DietPlan = d.DietPlan
	stored.DetailedSteps = d.DetailedSteps
	stored.Status = d.Status
	r.rows[d.ID] = stored
	return nil
}

func (r *fakeDiagnosisRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return 0, nil
	}
	delete(r.rows, id)
	return 1, nil
}

func (r *fakeDiagnosisRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *fakeDiagnosisRepo) only() entity.Diagnosis {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.rows {
		return d
	}
	return entity.Diagnosis{}
}

// reply is one scripted gateway answer.
type reply struct {
	text string
	err  error
}

// scriptedGateway answers calls in order and records the prompts it saw.
type scriptedGateway struct {
	mu      sync.Mutex
	replies []reply
	prompts []string
}

func (g *scriptedGateway) Invoke(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if len(g.replies) == 0 {
		return "", errUnscripted
	}
	r := g.replies[0]
	g.replies = g.replies[1:]
	return r.text, r.err
}

func (g *scriptedGateway) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

type fakeQuota struct {
	err      error
	acquired int
	released int
}

func (q *fakeQuota) Acquire(context.Context, uuid.UUID) error {
	if q.err != nil {
		return q.err
	}
	q.acquired++
	return nil
}

func (q *fakeQuota) Release(context.Context, uuid.UUID) error {
	q.released++
	return nil
}

// fakeTokenRegistry is an in-memory allow-list.
type fakeTokenRegistry struct {
	mu     sync.Mutex
	active map[string]time.Duration
}

func newFakeTokenRegistry() *fakeTokenRegistry {
	return &fakeTokenRegistry{active: make(map[string]time.Duration)}
}

func (r *fakeTokenRegistry) Register(_ context.Context, kind service.TokenKind, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active[service.TokenKey(kind, userID, tokenID)] = ttl
	return nil
}

func (r *fakeTokenRegistry) IsActive(_ context.Context, kind service.TokenKind, userID uuid.UUID, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.active[service.TokenKey(kind, userID, tokenID)]
	return ok, nil
}

func (r *fakeTokenRegistry) Revoke(_ context.Context, kind service.TokenKind, userID uuid.UUID, tokenID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, service.TokenKey(kind, userID, tokenID))
	return nil
}

func (r *fakeTokenRegistry) RevokeAll(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.active {
		if strings.Contains(key, userID.String()) {
			delete(r.active, key)
		}
	}
	return nil
}

func (r *fakeTokenRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

// fakeAudit records the actions it was asked to log.
type fakeAudit struct {
	mu      sync.Mutex
	actions []string
	ids     []string
}

func (a *fakeAudit) LogCreate(_ context.Context, _ uuid.UUID, action, _, entityID string, _ any) error {
	return a.add(action, entityID)
}

func (a *fakeAudit) LogUpdate(_ context.Context, _ uuid.UUID, action, _, entityID string, _, _ any) error {
	return a.add(action, entityID)
}

func (a *fakeAudit) LogDelete(_ context.Context, _ uuid.UUID, action, _, entityID string, _ any) error {
	return a.add(action, entityID)
}

func (a *fakeAudit) add(action, entityID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	a.ids = append(a.ids, entityID)
	return nil
}

func (a *fakeAudit) recorded() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.actions...)
}
