package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-service/internal/domain"
	"github.com/spec-kit/field-service/internal/events"
	"github.com/spec-kit/field-service/internal/repository"
)

// fakeTicketRepo is an in-memory TicketRepository for service tests.
type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]*domain.Ticket
	updates int
}

func newFakeTicketRepo(tickets ...*domain.Ticket) *fakeTicketRepo {
	repo := &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
	for _, ticket := range tickets {
		copied := *ticket
		repo.tickets[ticket.ID] = &copied
	}
	return repo
}

func (r *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ticket.ID == "" {
		ticket.ID = "t-" + ticket.ServiceCode
	}
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	return nil
}

func (r *fakeTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	r.updates++
	return nil
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) GetByServiceCode(ctx context.Context, code string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ticket := range r.tickets {
		if ticket.ServiceCode == code {
			copied := *ticket
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Ticket
	for _, ticket := range r.tickets {
		out = append(out, *ticket)
	}
	return out, nil
}

func (r *fakeTicketRepo) ListScheduledBetween(ctx context.Context, from, to time.Time, leaderID *string) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Ticket
	for _, ticket := range r.tickets {
		if ticket.ScheduledDate == nil {
			continue
		}
		if ticket.ScheduledDate.Before(from) || !ticket.ScheduledDate.Before(to) {
			continue
		}
		if ticket.Status == domain.StatusCerrado || ticket.Status == domain.StatusCancelado {
			continue
		}
		if leaderID != nil && (ticket.LeaderID == nil || *ticket.LeaderID != *leaderID) {
			continue
		}
		out = append(out, *ticket)
	}
	return out, nil
}

func (r *fakeTicketRepo) ListUnscheduled(ctx context.Context, leaderID *string) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Ticket
	for _, ticket := range r.tickets {
		if ticket.ScheduledDate != nil {
			continue
		}
		if ticket.Status == domain.StatusCerrado || ticket.Status == domain.StatusCancelado {
			continue
		}
		if leaderID != nil && (ticket.LeaderID == nil || *ticket.LeaderID != *leaderID) {
			continue
		}
		out = append(out, *ticket)
	}
	return out, nil
}

func (r *fakeTicketRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	return nil
}

func (r *fakeTicketRepo) updateCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updates
}

// fakeProfileRepo is an in-memory ProfileRepository.
type fakeProfileRepo struct {
	profiles map[string]*domain.Profile
}

func newFakeProfileRepo(profiles ...*domain.Profile) *fakeProfileRepo {
	repo := &fakeProfileRepo{profiles: map[string]*domain.Profile{}}
	for _, profile := range profiles {
		copied := *profile
		repo.profiles[profile.ID] = &copied
	}
	return repo
}

func (r *fakeProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	if profile.ID == "" {
		profile.ID = "p-" + profile.FullName
	}
	copied := *profile
	r.profiles[profile.ID] = &copied
	return nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	if _, ok := r.profiles[profile.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *profile
	r.profiles[profile.ID] = &copied
	return nil
}

func (r *fakeProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	profile, ok := r.profiles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	for _, profile := range r.profiles {
		if profile.Email != nil && *profile.Email == email {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeProfileRepo) GetByEmployeeCode(ctx context.Context, code string) (*domain.Profile, error) {
	for _, profile := range r.profiles {
		if profile.EmployeeCode != nil && *profile.EmployeeCode == code {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeProfileRepo) List(ctx context.Context, filter repository.ProfileFilter) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, profile := range r.profiles {
		out = append(out, *profile)
	}
	return out, nil
}

// fakeClientRepo is an in-memory ClientRepository.
type fakeClientRepo struct {
	clients map[string]*domain.Client
}

func newFakeClientRepo(clients ...*domain.Client) *fakeClientRepo {
	repo := &fakeClientRepo{clients: map[string]*domain.Client{}}
	for _, client := range clients {
		copied := *client
		repo.clients[client.ID] = &copied
	}
	return repo
}

func (r *fakeClientRepo) Create(ctx context.Context, client *domain.Client) error {
	if client.ID == "" {
		client.ID = "cl-" + client.Email
	}
	copied := *client
	r.clients[client.ID] = &copied
	return nil
}

func (r *fakeClientRepo) Update(ctx context.Context, client *domain.Client) error {
	if _, ok := r.clients[client.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *client
	r.clients[client.ID] = &copied
	return nil
}

func (r *fakeClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	client, ok := r.clients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *client
	return &copied, nil
}

func (r *fakeClientRepo) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	for _, client := range r.clients {
		if client.Email == email {
			copied := *client
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeClientRepo) List(ctx context.Context, filter repository.ClientFilter) ([]domain.Client, error) {
	var out []domain.Client
	for _, client := range r.clients {
		out = append(out, *client)
	}
	return out, nil
}

// fakeAttendanceRepo is an in-memory AttendanceRepository.
type fakeAttendanceRepo struct {
	logs []domain.AttendanceLog
}

func (r *fakeAttendanceRepo) Create(ctx context.Context, log *domain.AttendanceLog) error {
	if log.ID == "" {
		log.ID = "a-" + time.Now().Format("150405.000000000")
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeAttendanceRepo) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]domain.AttendanceLog, error) {
	var out []domain.AttendanceLog
	for _, log := range r.logs {
		if log.UserID != userID {
			continue
		}
		if log.CreatedAt.Before(from) || !log.CreatedAt.Before(to) {
			continue
		}
		out = append(out, log)
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListBetween(ctx context.Context, from, to time.Time) ([]domain.AttendanceLog, error) {
	var out []domain.AttendanceLog
	for _, log := range r.logs {
		if log.CreatedAt.Before(from) || !log.CreatedAt.Before(to) {
			continue
		}
		out = append(out, log)
	}
	return out, nil
}

func (r *fakeAttendanceRepo) HasEntradaOn(ctx context.Context, userID string, day time.Time) (bool, error) {
	for _, log := range r.logs {
		if log.UserID != userID || log.CheckType != domain.CheckTypeEntrada {
			continue
		}
		y1, m1, d1 := log.CreatedAt.Date()
		y2, m2, d2 := day.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			return true, nil
		}
	}
	return false, nil
}

// captureDispatcher records published events.
type captureDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *captureDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *captureDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (d *captureDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }
