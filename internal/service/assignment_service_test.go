package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/field-service/internal/domain"
	"github.com/spec-kit/field-service/internal/events"
	apperrors "github.com/spec-kit/field-service/pkg/util"
)

func newAssignmentService(tickets *fakeTicketRepo, profiles *fakeProfileRepo, dispatcher *captureDispatcher) *AssignmentService {
	return NewAssignmentService(AssignmentDependencies{
		TicketRepo:  tickets,
		ProfileRepo: profiles,
		Dispatcher:  dispatcher,
		Now:         fixedNow(testNow),
	})
}

func operativeProfile(id string, position domain.Position) *domain.Profile {
	return &domain.Profile{ID: id, FullName: "Op " + id, Role: domain.RoleOperativo, Position: position, Active: true}
}

func coordinatorProfile(id string) *domain.Profile {
	return &domain.Profile{ID: id, FullName: "Coord " + id, Role: domain.RoleCoordinador, Active: true}
}

func TestAssignCoordinator(t *testing.T) {
	repo := newFakeTicketRepo(baseTicket(domain.StatusSinAsignar))
	profiles := newFakeProfileRepo(coordinatorProfile("coord1"))
	dispatcher := &captureDispatcher{}
	svc := newAssignmentService(repo, profiles, dispatcher)

	updated, err := svc.AssignCoordinator(context.Background(), adminActor(), "t1", "coord1")
	if err != nil {
		t.Fatalf("AssignCoordinator: %v", err)
	}
	if updated.Status != domain.StatusAsignado {
		t.Fatalf("Status = %q, want Asignado", updated.Status)
	}
	if updated.CoordinatorID == nil || *updated.CoordinatorID != "coord1" {
		t.Fatalf("CoordinatorID = %v", updated.CoordinatorID)
	}
	if len(updated.Logs) != 1 || updated.Logs[0].Note != "Estatus: Sin asignar ➝ Asignado | Coordinador actualizado" {
		t.Fatalf("audit entry = %+v", updated.Logs)
	}
	published := dispatcher.published()
	if len(published) != 1 || published[0].Type != events.EventTicketAssigned {
		t.Fatalf("published = %v, want one assigned event", published)
	}

	// Clearing reverts to Sin asignar.
	cleared, err := svc.AssignCoordinator(context.Background(), adminActor(), "t1", "")
	if err != nil {
		t.Fatalf("clear coordinator: %v", err)
	}
	if cleared.Status != domain.StatusSinAsignar || cleared.CoordinatorID != nil {
		t.Fatalf("cleared ticket = status %q, coordinator %v", cleared.Status, cleared.CoordinatorID)
	}
}

func TestAssignCoordinatorRequiresCoordinatorProfile(t *testing.T) {
	repo := newFakeTicketRepo(baseTicket(domain.StatusSinAsignar))
	profiles := newFakeProfileRepo(operativeProfile("op1", domain.PositionLider))
	svc := newAssignmentService(repo, profiles, &captureDispatcher{})

	_, err := svc.AssignCoordinator(context.Background(), adminActor(), "t1", "op1")
	var de *apperrors.DomainError
	if !errors.As(err, &de) || de.Code != "CONFLICT" {
		t.Fatalf("error = %v, want CONFLICT for wrong role", err)
	}
}

func TestAssignCoordinatorRoleGate(t *testing.T) {
	repo := newFakeTicketRepo(baseTicket(domain.StatusSinAsignar))
	profiles := newFakeProfileRepo(coordinatorProfile("coord1"))
	svc := newAssignmentService(repo, profiles, &captureDispatcher{})

	coordinator := Actor{ID: "c1", Name: "Carla", Role: domain.RoleCoordinador}
	if _, err := svc.AssignCoordinator(context.Background(), coordinator, "t1", "coord1"); err == nil {
		t.Fatal("coordinator must not assign coordinators")
	}
}

func TestAssignOperatives(t *testing.T) {
	repo := newFakeTicketRepo(baseTicket(domain.StatusPendiente))
	profiles := newFakeProfileRepo(
		operativeProfile("lead1", domain.PositionLider),
		operativeProfile("aux1", domain.PositionAuxiliar),
	)
	svc := newAssignmentService(repo, profiles, &captureDispatcher{})

	coordinator := Actor{ID: "c1", Name: "Carla", Role: domain.RoleCoordinador}
	updated, err := svc.AssignOperatives(context.Background(), coordinator, "t1", strPtr("lead1"), strPtr("aux1"))
	if err != nil {
		t.Fatalf("AssignOperatives: %v", err)
	}
	if updated.Status != domain.StatusEnProceso {
		t.Fatalf("Status = %q, want En proceso", updated.Status)
	}
	if updated.LeaderID == nil || *updated.LeaderID != "lead1" {
		t.Fatalf("LeaderID = %v", updated.LeaderID)
	}
	if updated.AuxiliaryID == nil || *updated.AuxiliaryID != "aux1" {
		t.Fatalf("AuxiliaryID = %v", updated.AuxiliaryID)
	}
}

func TestAssignOperativesPositionValidation(t *testing.T) {
	tests := []struct {
		name      string
		leader    *string
		auxiliary *string
	}{
		{name: "auxiliar as leader", leader: strPtr("aux1")},
		{name: "lider as auxiliary", auxiliary: strPtr("lead1")},
		{name: "coordinator as leader", leader: strPtr("coord1")},
		{name: "unknown profile", leader: strPtr("nobody")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeTicketRepo(baseTicket(domain.StatusPendiente))
			profiles := newFakeProfileRepo(
				operativeProfile("lead1", domain.PositionLider),
				operativeProfile("aux1", domain.PositionAuxiliar),
				coordinatorProfile("coord1"),
			)
			svc := newAssignmentService(repo, profiles, &captureDispatcher{})
			if _, err := svc.AssignOperatives(context.Background(), adminActor(), "t1", tt.leader, tt.auxiliary); err == nil {
				t.Fatal("expected validation failure")
			}
			if repo.updateCount() != 0 {
				t.Fatal("ticket updated despite invalid assignment")
			}
		})
	}
}

func TestAssignOperativesInactiveProfile(t *testing.T) {
	repo := newFakeTicketRepo(baseTicket(domain.StatusPendiente))
	inactive := operativeProfile("lead1", domain.PositionLider)
	inactive.Active = false
	profiles := newFakeProfileRepo(inactive)
	svc := newAssignmentService(repo, profiles, &captureDispatcher{})

	if _, err := svc.AssignOperatives(context.Background(), adminActor(), "t1", strPtr("lead1"), nil); err == nil {
		t.Fatal("expected conflict for inactive profile")
	}
}

func TestReturnToPending(t *testing.T) {
	ticket := baseTicket(domain.StatusEnProceso)
	scheduled := testNow.AddDate(0, 0, 2)
	ticket.ScheduledDate = &scheduled
	ticket.LeaderID = strPtr("lead1")
	ticket.AuxiliaryID = strPtr("aux1")
	ticket.Logs = []domain.LogEntry{{Note: "Servicio creado", Type: domain.LogTypeSystem}}
	repo := newFakeTicketRepo(ticket)
	dispatcher := &captureDispatcher{}
	svc := newAssignmentService(repo, newFakeProfileRepo(), dispatcher)

	coordinator := Actor{ID: "c1", Name: "Carla", Role: domain.RoleCoordinador}
	updated, err := svc.ReturnToPending(context.Background(), coordinator, "t1")
	if err != nil {
		t.Fatalf("ReturnToPending: %v", err)
	}
	if updated.Status != domain.StatusPendiente {
		t.Fatalf("Status = %q, want Pendiente", updated.Status)
	}
	if updated.ScheduledDate != nil || updated.LeaderID != nil || updated.AuxiliaryID != nil {
		t.Fatalf("schedule/operatives not cleared: %+v", updated)
	}
	if len(updated.Logs) != 2 {
		t.Fatalf("len(Logs) = %d, want exactly one new entry", len(updated.Logs))
	}
	entry := updated.Logs[0]
	if entry.Type != domain.LogTypeSystemReset {
		t.Errorf("log type = %q, want system_reset", entry.Type)
	}
	if entry.Note != "Servicio devuelto a pendiente: programacion y operativos reiniciados" {
		t.Errorf("log note = %q", entry.Note)
	}
	published := dispatcher.published()
	if len(published) != 1 || published[0].Type != events.EventTicketReturnedPending {
		t.Fatalf("published = %v, want returned_to_pending", published)
	}
}

func TestReturnToPendingRoleGate(t *testing.T) {
	repo := newFakeTicketRepo(baseTicket(domain.StatusEnProceso))
	svc := newAssignmentService(repo, newFakeProfileRepo(), &captureDispatcher{})

	operative := Actor{ID: "o1", Name: "Omar", Role: domain.RoleOperativo}
	if _, err := svc.ReturnToPending(context.Background(), operative, "t1"); err == nil {
		t.Fatal("operativo must not return tickets to pending")
	}
}

func TestReturnToPendingLockedTicket(t *testing.T) {
	repo := newFakeTicketRepo(baseTicket(domain.StatusCerrado))
	svc := newAssignmentService(repo, newFakeProfileRepo(), &captureDispatcher{})

	if _, err := svc.ReturnToPending(context.Background(), adminActor(), "t1"); err == nil {
		t.Fatal("closed ticket must not be reset")
	}
}
