package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/field-service/internal/domain"
)

type recordedCall struct {
	sql  string
	args []any
}

// recordingDB captures statements so SQL contracts can be asserted without a
// live connection.
type recordingDB struct {
	calls    []recordedCall
	execTag  pgconn.CommandTag
	queryErr error
}

func (db *recordingDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.calls = append(db.calls, recordedCall{sql: sql, args: args})
	return db.execTag, nil
}

func (db *recordingDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	db.calls = append(db.calls, recordedCall{sql: sql, args: args})
	return nil, db.queryErr
}

func (db *recordingDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	db.calls = append(db.calls, recordedCall{sql: sql, args: args})
	return staticRow{}
}

func (db *recordingDB) last(t *testing.T) recordedCall {
	t.Helper()
	if len(db.calls) == 0 {
		t.Fatal("no statement recorded")
	}
	return db.calls[len(db.calls)-1]
}

type staticRow struct{}

func (staticRow) Scan(dest ...any) error {
	for _, d := range dest {
		switch v := d.(type) {
		case *string:
			*v = "generated"
		case *time.Time:
			*v = time.Unix(0, 0).UTC()
		}
	}
	return nil
}

func strRef(s string) *string { return &s }

func TestUpdateWritesBothLegacyColumnPairs(t *testing.T) {
	db := &recordingDB{execTag: pgconn.NewCommandTag("UPDATE 1")}
	repo := NewTicketRepository(db)

	ticket := &domain.Ticket{
		ID:            "t1",
		Status:        domain.StatusAsignado,
		CoordinatorID: strRef("coord1"),
		LeaderID:      strRef("lead1"),
	}
	if err := repo.Update(context.Background(), ticket); err != nil {
		t.Fatalf("Update: %v", err)
	}

	call := db.last(t)
	for _, fragment := range []string{"coordinator_id=$6", "coordinador_id=$6", "leader_id=$7", "technical_lead_id=$7"} {
		if !strings.Contains(call.sql, fragment) {
			t.Errorf("update SQL missing %q:\n%s", fragment, call.sql)
		}
	}
	if got, ok := call.args[5].(*string); !ok || *got != "coord1" {
		t.Errorf("coordinator arg = %v, want coord1 feeding both columns", call.args[5])
	}
	if got, ok := call.args[6].(*string); !ok || *got != "lead1" {
		t.Errorf("leader arg = %v, want lead1 feeding both columns", call.args[6])
	}
}

func TestCreateWritesBothLegacyColumnPairs(t *testing.T) {
	db := &recordingDB{}
	repo := NewTicketRepository(db)

	ticket := &domain.Ticket{
		ServiceCode:   "SRV-0001",
		Status:        domain.StatusSinAsignar,
		CoordinatorID: strRef("coord1"),
		LeaderID:      strRef("lead1"),
	}
	if err := repo.Create(context.Background(), ticket); err != nil {
		t.Fatalf("Create: %v", err)
	}

	call := db.last(t)
	if !strings.Contains(call.sql, "coordinator_id, coordinador_id, leader_id, technical_lead_id") {
		t.Errorf("insert SQL missing the legacy column pairs:\n%s", call.sql)
	}
	if !strings.Contains(call.sql, "$7,$7,$8,$8") {
		t.Errorf("insert SQL must bind one placeholder per column pair:\n%s", call.sql)
	}
}

func TestReadsCoalesceLegacyColumns(t *testing.T) {
	db := &recordingDB{}
	repo := NewTicketRepository(db)

	if _, err := repo.GetByID(context.Background(), "t1"); err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	call := db.last(t)
	for _, fragment := range []string{"COALESCE(coordinator_id, coordinador_id)", "COALESCE(leader_id, technical_lead_id)"} {
		if !strings.Contains(call.sql, fragment) {
			t.Errorf("select SQL missing %q:\n%s", fragment, call.sql)
		}
	}
}

func TestListScheduledBetweenHalfOpenWindow(t *testing.T) {
	db := &recordingDB{queryErr: errors.New("recorded only")}
	repo := NewTicketRepository(db)

	from := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	if _, err := repo.ListScheduledBetween(context.Background(), from, to, nil); err == nil {
		t.Fatal("expected the recording error")
	}

	call := db.last(t)
	if !strings.Contains(call.sql, "scheduled_date >= $1") || !strings.Contains(call.sql, "scheduled_date < $2") {
		t.Errorf("window must be half-open [from, to):\n%s", call.sql)
	}
	if !call.args[0].(time.Time).Equal(from) || !call.args[1].(time.Time).Equal(to) {
		t.Errorf("window args = %v", call.args[:2])
	}
}
