package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"carecircle/internal/database"
	"carecircle/internal/domain"
	"carecircle/internal/repository"
	"carecircle/internal/service"
)

// seedCmd loads the demo caregiver dataset: caregiver Dana with clients Alex
// and Maria, family contacts, tasks (one overdue), check-ins, alerts, and an
// unscoped memory. Idempotent: people are matched by email, links are
// upserts, and sample rows are only inserted into empty tables.
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo data for dashboard exploration",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := database.NewPostgresDB(&cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			if err := database.Migrate(ctx, db); err != nil {
				return err
			}

			persons := repository.NewPostgresPersonsRepository(db)
			circleLinks := repository.NewPostgresCircleRepository(db)
			tasks := repository.NewPostgresTasksRepository(db)
			checkins := repository.NewPostgresCheckInsRepository(db)
			alerts := repository.NewPostgresAlertsRepository(db)
			memories := repository.NewPostgresMemoriesRepository(db)
			circle := service.NewCircleService(persons, circleLinks, log)

			now := time.Now().UTC()

			caregiver, err := ensurePerson(ctx, persons, &domain.Person{
				Role: domain.RoleCaregiver, Name: "Dana Rivera",
				Email: "dana.caregiver@example.com", Phone: "+1-555-900-1111",
			})
			if err != nil {
				return err
			}
			alex, err := ensurePerson(ctx, persons, &domain.Person{
				Role: domain.RoleUser, Name: "Alex Kim",
				Email: "alex.kim@example.com", Phone: "+1-555-200-1111",
				Location: "Home suite - Room 204",
			})
			if err != nil {
				return err
			}
			maria, err := ensurePerson(ctx, persons, &domain.Person{
				Role: domain.RoleUser, Name: "Maria Gonzales",
				Email: "maria.gonzales@example.com", Phone: "+1-555-200-2222",
				Location: "Sunrise Assisted Living - Room 18B",
			})
			if err != nil {
				return err
			}
			sarah, err := ensurePerson(ctx, persons, &domain.Person{
				Role: domain.RoleFamily, Name: "Sarah Kim",
				Email: "sarah.kim@example.com", Phone: "+1-555-440-3322",
			})
			if err != nil {
				return err
			}
			omar, err := ensurePerson(ctx, persons, &domain.Person{
				Role: domain.RoleFamily, Name: "Omar Gonzales",
				Email: "omar.gonzales@example.com", Phone: "+1-555-440-2211",
			})
			if err != nil {
				return err
			}

			if _, err := circle.UpsertLink(ctx, caregiver.ID, alex.ID, domain.LinkRolePrimaryCaregiver, "Primary caregiver", true, true); err != nil {
				return err
			}
			if _, err := circle.UpsertLink(ctx, caregiver.ID, maria.ID, domain.LinkRoleCaregiver, "Visiting nurse", true, true); err != nil {
				return err
			}
			for _, link := range []*domain.CircleLink{
				{ClientID: alex.ID, MemberID: sarah.ID, Role: domain.LinkRoleFamily, Relationship: "Daughter", Notify: true},
				{ClientID: maria.ID, MemberID: omar.ID, Role: domain.LinkRoleFamily, Relationship: "Nephew", Notify: true},
			} {
				if err := circleLinks.UpsertLink(ctx, link); err != nil {
					return err
				}
			}

			if empty, err := tableEmpty(ctx, db, "tasks"); err != nil {
				return err
			} else if empty {
				in2h := now.Add(2 * time.Hour)
				tomorrow := now.Add(24 * time.Hour)
				ago3h := now.Add(-3 * time.Hour)
				for _, t := range []*domain.Task{
					{UserID: alex.ID, AssignedBy: caregiver.ID, Title: "Medication – morning vitamins",
						Description: "Ensure Alex takes Vitamin D and B12.", DueAt: &in2h, Status: domain.TaskStatusOpen},
					{UserID: maria.ID, AssignedBy: caregiver.ID, Title: "Physiotherapy check-in",
						Description: "Call Maria to confirm she did her stretching routine.", DueAt: &tomorrow, Status: domain.TaskStatusOpen},
					{UserID: alex.ID, AssignedBy: caregiver.ID, Title: "Grocery restock",
						Description: "Review pantry list after lunch.", DueAt: &ago3h, Status: domain.TaskStatusMissed},
				} {
					if _, err := tasks.CreateTask(ctx, t); err != nil {
						return err
					}
				}
			}

			if empty, err := tableEmpty(ctx, db, "checkins"); err != nil {
				return err
			} else if empty {
				sleep75 := 7.5
				sleep80 := 8.0
				for _, c := range []*domain.CheckIn{
					{UserID: alex.ID, By: "caregiver", Mood: "ok", Hydration: "ok", SleepHours: &sleep75,
						Notes: "Alex slept well and had breakfast."},
					{UserID: maria.ID, By: "family", Mood: "happy", Hydration: "high", SleepHours: &sleep80,
						Notes: "Feeling energized after morning walk."},
				} {
					if _, err := checkins.CreateCheckIn(ctx, c); err != nil {
						return err
					}
				}
			}

			if empty, err := tableEmpty(ctx, db, "alerts"); err != nil {
				return err
			} else if empty {
				for _, a := range []*domain.Alert{
					{UserID: alex.ID, CaregiverID: caregiver.ID, Kind: domain.AlertKindMissedTask,
						Message: "Alex did not confirm the grocery restock."},
					{UserID: maria.ID, CaregiverID: caregiver.ID, Kind: domain.AlertKindCustom,
						Message: "Maria noted some knee discomfort yesterday.", IsRead: true},
				} {
					if _, err := alerts.CreateAlert(ctx, a); err != nil {
						return err
					}
				}
			}

			if empty, err := tableEmpty(ctx, db, "memories"); err != nil {
				return err
			} else if empty {
				// Deliberately unowned: exercises the legacy unscoped-memory
				// path of the feed.
				if _, err := memories.CreateMemory(ctx, &domain.Memory{
					Title:      "Picnic in the park",
					Note:       "Alex and Dana enjoyed a sunny afternoon at the park.",
					OccurredAt: now.Add(-72 * time.Hour),
				}); err != nil {
					return err
				}
			}

			log.Info("Seeded caregiver demo data",
				zap.Int64("caregiver_id", caregiver.ID),
				zap.Int64s("client_ids", []int64{alex.ID, maria.ID}),
				zap.Int64s("family_contact_ids", []int64{sarah.ID, omar.ID}),
			)
			return nil
		},
	}
}

func ensurePerson(ctx context.Context, persons repository.PersonsRepository, p *domain.Person) (*domain.Person, error) {
	existing, err := persons.GetPersonByEmail(ctx, p.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := persons.CreatePerson(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func tableEmpty(ctx context.Context, db *sql.DB, table string) (bool, error) {
	var exists bool
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s)", table)
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to probe %s: %w", table, err)
	}
	return !exists, nil
}
