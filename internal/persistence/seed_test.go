package persistence

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/makeup-booking/internal/auth"
	"github.com/spec-kit/makeup-booking/internal/domain"
	"github.com/spec-kit/makeup-booking/internal/repository"
)

type seedUserRepo struct {
	repository.UserRepository
	existing int
	created  []domain.User
}

func (r *seedUserRepo) Count(context.Context) (int, error) {
	return r.existing, nil
}

func (r *seedUserRepo) Create(_ context.Context, user *domain.User) error {
	r.created = append(r.created, *user)
	return nil
}

type seedTemplateRepo struct {
	repository.SlotTemplateRepository
	created []domain.SlotTemplate
}

func (r *seedTemplateRepo) Create(_ context.Context, tmpl *domain.SlotTemplate) error {
	r.created = append(r.created, *tmpl)
	return nil
}

func TestSeedIfEmptyPopulatesUsersAndTemplates(t *testing.T) {
	users := &seedUserRepo{}
	templates := &seedTemplateRepo{}

	if err := SeedIfEmpty(context.Background(), users, templates, 4, zap.NewNop()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if len(users.created) != 4 {
		t.Fatalf("expected 4 seeded users, got %d", len(users.created))
	}
	admin := users.created[0]
	if admin.Account != "admin" || admin.Role != domain.RoleAdmin {
		t.Fatalf("unexpected first seeded user: %+v", admin)
	}
	if err := auth.ComparePassword(admin.PasswordHash, "admin123"); err != nil {
		t.Fatalf("admin password hash mismatch: %v", err)
	}
	for _, user := range users.created[1:] {
		if user.Role != domain.RoleStudent || user.ClassName == nil {
			t.Fatalf("unexpected seeded student: %+v", user)
		}
	}

	// 7 days x 3 periods for each of the two physical locations.
	if len(templates.created) != 42 {
		t.Fatalf("expected 42 seeded templates, got %d", len(templates.created))
	}
	openByLocation := map[domain.Location]int{}
	for _, tmpl := range templates.created {
		if tmpl.ComputerCount != 8 {
			t.Fatalf("expected 8 computers per slot, got %d", tmpl.ComputerCount)
		}
		if tmpl.IsOpen {
			openByLocation[tmpl.Location]++
		}
		if tmpl.Location == domain.LocationHeadquarters && tmpl.DayOfWeek == 6 && tmpl.Period == domain.PeriodAfternoon && !tmpl.IsOpen {
			t.Fatal("headquarters Saturday afternoon must seed open")
		}
		if tmpl.Location == domain.LocationDachang && tmpl.DayOfWeek > 5 && tmpl.IsOpen {
			t.Fatalf("dachang weekend slot seeded open: %+v", tmpl)
		}
	}
	// Headquarters: 7 evenings + Saturday afternoon; dachang: 5 evenings.
	if openByLocation[domain.LocationHeadquarters] != 8 {
		t.Fatalf("expected 8 open headquarters slots, got %d", openByLocation[domain.LocationHeadquarters])
	}
	if openByLocation[domain.LocationDachang] != 5 {
		t.Fatalf("expected 5 open dachang slots, got %d", openByLocation[domain.LocationDachang])
	}
}

func TestSeedIfEmptySkipsPopulatedDatabase(t *testing.T) {
	users := &seedUserRepo{existing: 4}
	templates := &seedTemplateRepo{}

	if err := SeedIfEmpty(context.Background(), users, templates, 4, zap.NewNop()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(users.created) != 0 || len(templates.created) != 0 {
		t.Fatal("populated database must not be re-seeded")
	}
}
