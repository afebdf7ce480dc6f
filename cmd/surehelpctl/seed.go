package main

import (
	"context"
	"fmt"
	"time"

	"github.com/nkp491/surehelp/internal/bootstrap"
	"github.com/nkp491/surehelp/internal/metrics"
	"github.com/nkp491/surehelp/internal/profile"
	"github.com/nkp491/surehelp/internal/role"
	"github.com/nkp491/surehelp/internal/shared"
	"github.com/nkp491/surehelp/internal/team"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const (
	demoManagerID = "5b0d7a52-6a4e-4c55-9d35-0f3f6f1c0001"
	demoAgentID   = "5b0d7a52-6a4e-4c55-9d35-0f3f6f1c0002"
	demoAgent2ID  = "5b0d7a52-6a4e-4c55-9d35-0f3f6f1c0003"
	demoTeamName  = "Demo Agency"
	historyDays   = 30
)

type demoUser struct {
	id    string
	email string
	name  string
	role  role.Role
}

var demoUsers = []demoUser{
	{demoManagerID, "manager@surehelp.dev", "Morgan Reyes", role.ManagerPro},
	{demoAgentID, "agent@surehelp.dev", "Avery Chen", role.Agent},
	{demoAgent2ID, "agent2@surehelp.dev", "Jordan Blake", role.Agent},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a demo team with 30 days of metric history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, closeDB, err := openDatabase()
		if err != nil {
			return err
		}
		defer closeDB()

		if err := bootstrap.MigrateAll(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		res, err := seedDemo(ctx, db, shared.Day(time.Now(), cfg.Location))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Seeded team %s with %d users and %d days of history.\n", res.teamID, len(demoUsers), historyDays)
		fmt.Fprintln(out, "Run `surehelpctl rollup` to refresh cached snapshots.")
		fmt.Fprintln(out, "")
		for _, u := range demoUsers {
			fmt.Fprintf(out, "  %-14s %s (%s)\n", u.role, u.id, u.email)
		}
		return nil
	},
}

type seedResult struct {
	teamID string
	rows   int
}

// seedDemo is idempotent: profiles, roles and the team are reused and the
// history rows are upserted.
func seedDemo(ctx context.Context, db *gorm.DB, today time.Time) (seedResult, error) {
	profiles := profile.NewStore(db)
	roles := role.NewStore(db)
	teams := team.NewStore(db)
	daily := metrics.NewDailyStore(db)

	for _, u := range demoUsers {
		if _, err := profiles.FindOrCreateFromJWT(ctx, u.id, u.email, u.name, ""); err != nil {
			return seedResult{}, fmt.Errorf("profile %s: %w", u.email, err)
		}
		if err := roles.Grant(ctx, u.id, u.role, demoManagerID); err != nil {
			return seedResult{}, fmt.Errorf("role %s: %w", u.email, err)
		}
	}

	t, err := demoTeam(ctx, teams)
	if err != nil {
		return seedResult{}, err
	}
	for _, id := range []string{demoAgentID, demoAgent2ID} {
		m := &team.Member{TeamID: t.ID, UserID: id, Role: team.MemberRoleMember, ReportsTo: demoManagerID}
		if err := teams.AddMember(ctx, m); err != nil {
			return seedResult{}, fmt.Errorf("add member: %w", err)
		}
	}

	res := seedResult{teamID: t.ID}
	for i, u := range demoUsers {
		for d := 0; d < historyDays; d++ {
			row := &metrics.DailyMetric{
				UserID: u.id,
				Date:   shared.FormatDay(today.AddDate(0, 0, -d)),
			}
			row.SetSnapshot(demoDay(i, d))
			if err := daily.Upsert(ctx, row); err != nil {
				return res, fmt.Errorf("history %s: %w", row.Date, err)
			}
			res.rows++
		}
	}
	return res, nil
}

func demoTeam(ctx context.Context, teams *team.Store) (*team.Team, error) {
	existing, err := teams.ListForUser(ctx, demoManagerID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	for _, t := range existing {
		if t.Name == demoTeamName && t.OwnerID == demoManagerID {
			return t, nil
		}
	}

	t := &team.Team{Name: demoTeamName, OwnerID: demoManagerID}
	if err := teams.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	return t, nil
}

// demoDay produces a plausible funnel that narrows at every stage.
func demoDay(user, daysAgo int) metrics.Snapshot {
	seed := int64((user+1)*7 + daysAgo*3)
	leads := 20 + seed%15
	calls := leads + 10 + seed%9
	contacts := calls / 3
	scheduled := contacts / 2
	sits := scheduled * 2 / 3
	sales := sits / 2
	return metrics.Snapshot{
		Leads:     leads,
		Calls:     calls,
		Contacts:  contacts,
		Scheduled: scheduled,
		Sits:      sits,
		Sales:     sales,
		AP:        sales * (120000 + (seed%5)*25000),
	}
}
