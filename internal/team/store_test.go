package team

import (
	"context"
	"errors"
	"testing"

	"github.com/nkp491/surehelp/internal/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	ownerID   = "11111111-1111-4111-8111-111111111111"
	managerID = "22222222-2222-4222-8222-222222222222"
	agentID   = "33333333-3333-4333-8333-333333333333"
	agent2ID  = "44444444-4444-4444-8444-444444444444"
	outsider  = "55555555-5555-4555-8555-555555555555"
)

func setupTestTeamDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db
}

func newTestTeamStore(t *testing.T, db *gorm.DB) *Store {
	store := NewStore(db)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return store
}

// seedTeam builds owner <- manager <- {agent, agent2}.
func seedTeam(t *testing.T, store *Store) *Team {
	ctx := context.Background()
	team := &Team{Name: "West", OwnerID: ownerID}
	if err := store.Create(ctx, team); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	members := []*Member{
		{TeamID: team.ID, UserID: managerID, Role: MemberRoleManager, ReportsTo: ownerID},
		{TeamID: team.ID, UserID: agentID, Role: MemberRoleMember, ReportsTo: managerID},
		{TeamID: team.ID, UserID: agent2ID, Role: MemberRoleMember, ReportsTo: managerID},
	}
	for _, m := range members {
		if err := store.AddMember(ctx, m); err != nil {
			t.Fatalf("add member failed: %v", err)
		}
	}
	return team
}

func TestStore_CreateAddsOwner(t *testing.T) {
	store := newTestTeamStore(t, setupTestTeamDB(t))
	ctx := context.Background()

	team := &Team{Name: "East", OwnerID: ownerID}
	if err := store.Create(ctx, team); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	m, err := store.GetMember(ctx, team.ID, ownerID)
	if err != nil {
		t.Fatalf("owner membership missing: %v", err)
	}
	if m.Role != MemberRoleOwner {
		t.Errorf("expected owner role, got %s", m.Role)
	}

	teams, _ := store.ListForUser(ctx, ownerID)
	if len(teams) != 1 || teams[0].Name != "East" {
		t.Errorf("unexpected teams %v", teams)
	}
}

func TestStore_AddMember(t *testing.T) {
	store := newTestTeamStore(t, setupTestTeamDB(t))
	ctx := context.Background()
	team := seedTeam(t, store)

	err := store.AddMember(ctx, &Member{TeamID: team.ID, UserID: outsider, ReportsTo: "99999999-9999-4999-8999-999999999999"})
	if !errors.Is(err, ErrInvalidReportsTo) {
		t.Errorf("expected ErrInvalidReportsTo for non-member manager, got %v", err)
	}

	err = store.AddMember(ctx, &Member{TeamID: team.ID, UserID: outsider, ReportsTo: outsider})
	if !errors.Is(err, ErrInvalidReportsTo) {
		t.Errorf("expected ErrInvalidReportsTo for self report, got %v", err)
	}

	// re-adding updates in place
	if err := store.AddMember(ctx, &Member{TeamID: team.ID, UserID: agentID, Role: MemberRoleManager, ReportsTo: ownerID}); err != nil {
		t.Fatalf("update member failed: %v", err)
	}
	m, _ := store.GetMember(ctx, team.ID, agentID)
	if m.Role != MemberRoleManager || m.ReportsTo != ownerID {
		t.Errorf("expected updated membership, got %+v", m)
	}

	members, _ := store.Members(ctx, team.ID)
	if len(members) != 4 {
		t.Errorf("expected 4 members, got %d", len(members))
	}
}

func TestStore_InviteAndAccept(t *testing.T) {
	store := newTestTeamStore(t, setupTestTeamDB(t))
	ctx := context.Background()
	team := seedTeam(t, store)

	m := &Member{TeamID: team.ID, UserID: outsider, ReportsTo: managerID}
	if err := store.Invite(ctx, m); err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	if m.Status != MemberStatusPending {
		t.Errorf("expected pending invite, got %s", m.Status)
	}

	reports, _ := store.DirectReports(ctx, []string{managerID})
	if len(reports[managerID]) != 2 {
		t.Errorf("pending members should not report yet, got %v", reports[managerID])
	}

	err := store.Invite(ctx, &Member{TeamID: team.ID, UserID: agentID})
	if !errors.Is(err, shared.ErrConflict) {
		t.Errorf("expected ErrConflict for existing member, got %v", err)
	}

	// pending members cannot be reported to
	err = store.AddMember(ctx, &Member{TeamID: team.ID, UserID: agent2ID, ReportsTo: outsider})
	if !errors.Is(err, ErrInvalidReportsTo) {
		t.Errorf("expected ErrInvalidReportsTo for pending manager, got %v", err)
	}

	accepted, err := store.Accept(ctx, team.ID, outsider)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if !accepted.Active() {
		t.Errorf("expected active membership, got %+v", accepted)
	}
	reports, _ = store.DirectReports(ctx, []string{managerID})
	if len(reports[managerID]) != 3 {
		t.Errorf("expected accepted member to report, got %v", reports[managerID])
	}

	if _, err := store.Accept(ctx, team.ID, outsider); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound for second accept, got %v", err)
	}
}

func TestStore_RemoveMemberDetachesReports(t *testing.T) {
	store := newTestTeamStore(t, setupTestTeamDB(t))
	ctx := context.Background()
	team := seedTeam(t, store)

	if err := store.RemoveMember(ctx, team.ID, managerID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	m, _ := store.GetMember(ctx, team.ID, agentID)
	if m.ReportsTo != "" {
		t.Errorf("expected reports_to cleared, got %s", m.ReportsTo)
	}

	if err := store.RemoveMember(ctx, team.ID, managerID); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_DirectReports(t *testing.T) {
	store := newTestTeamStore(t, setupTestTeamDB(t))
	ctx := context.Background()
	seedTeam(t, store)

	reports, err := store.DirectReports(ctx, []string{ownerID, managerID})
	if err != nil {
		t.Fatalf("direct reports failed: %v", err)
	}
	if len(reports[ownerID]) != 1 || reports[ownerID][0] != managerID {
		t.Errorf("unexpected owner reports %v", reports[ownerID])
	}
	if len(reports[managerID]) != 2 {
		t.Errorf("expected 2 reports for manager, got %v", reports[managerID])
	}

	subs, err := NewResolver(store).Subordinates(ctx, ownerID, 2)
	if err != nil {
		t.Fatalf("subordinates failed: %v", err)
	}
	if len(subs) != 3 {
		t.Errorf("expected 3 subordinates, got %v", subs)
	}
}
