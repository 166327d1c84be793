package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/makeup-booking/internal/auth"
	"github.com/spec-kit/makeup-booking/internal/domain"
	"github.com/spec-kit/makeup-booking/internal/repository"
)

// SeedIfEmpty loads the initial accounts and the fixed weekly template
// pattern when the users table has no rows. Templates are seeded once and
// only edited by administrators afterwards.
func SeedIfEmpty(ctx context.Context, users repository.UserRepository, templates repository.SlotTemplateRepository, bcryptCost int, logger *zap.Logger) error {
	userCount, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if userCount > 0 {
		return nil
	}

	adminHash, err := auth.HashPassword("admin123", bcryptCost)
	if err != nil {
		return err
	}
	studentHash, err := auth.HashPassword("student123", bcryptCost)
	if err != nil {
		return err
	}

	seedUsers := []domain.User{
		{Account: "admin", PasswordHash: adminHash, Name: "System Administrator", Role: domain.RoleAdmin},
		{Account: "A123456789", PasswordHash: studentHash, Name: "Wang Xiaoming", Role: domain.RoleStudent, ClassName: strPtr("Class A")},
		{Account: "B234567890", PasswordHash: studentHash, Name: "Li Xiaohua", Role: domain.RoleStudent, ClassName: strPtr("Class B")},
		{Account: "C345678901", PasswordHash: studentHash, Name: "Chen Dawen", Role: domain.RoleStudent, ClassName: strPtr("Class A")},
	}
	for i := range seedUsers {
		if err := users.Create(ctx, &seedUsers[i]); err != nil {
			return fmt.Errorf("seed user %s: %w", seedUsers[i].Account, err)
		}
	}

	for day := 1; day <= 7; day++ {
		for _, period := range domain.TemplatePeriods {
			// Headquarters: evenings open all week, plus Saturday afternoon.
			open := period == domain.PeriodEvening || (day == 6 && period == domain.PeriodAfternoon)
			if err := templates.Create(ctx, &domain.SlotTemplate{
				Location:      domain.LocationHeadquarters,
				DayOfWeek:     day,
				Period:        period,
				ComputerCount: 8,
				IsOpen:        open,
			}); err != nil {
				return fmt.Errorf("seed headquarters template: %w", err)
			}

			// Dachang: Monday through Friday evenings only.
			open = day <= 5 && period == domain.PeriodEvening
			if err := templates.Create(ctx, &domain.SlotTemplate{
				Location:      domain.LocationDachang,
				DayOfWeek:     day,
				Period:        period,
				ComputerCount: 8,
				IsOpen:        open,
			}); err != nil {
				return fmt.Errorf("seed dachang template: %w", err)
			}
		}
	}

	logger.Info("seeded initial users and slot templates")
	return nil
}

func strPtr(s string) *string {
	return &s
}
