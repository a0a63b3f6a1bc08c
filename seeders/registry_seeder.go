package seeders

import (
	"context"
	"log"

	"deltica/internal/services"
	"deltica/pkg/clock"
	"deltica/pkg/constants"
	"deltica/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedRegistry наполняет активный реестр демонстрационными агрегатами.
// Срок и статус поверки считаются тем же кодом, что и в рабочем пути.
func SeedRegistry(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения реестра оборудования...")

	if err := seedRegistry(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения реестра: %v", err)
	}
	log.Println("✅ Наполнение реестра завершено!")
}

func seedRegistry(ctx context.Context, db *pgxpool.Pool) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{"archived_equipment_files", "archived_finance", "archived_responsibility",
		"archived_verification", "archived_equipment",
		"equipment_files", "finance", "responsibility", "verification", "equipment"}
	for _, table := range tables {
		if _, err := tx.Exec(ctx, "TRUNCATE TABLE "+table+" RESTART IDENTITY CASCADE"); err != nil {
			return err
		}
	}

	today := clock.New().Today()

	for _, seed := range registryData {
		verificationDate, err := utils.ParseDate(seed.VerificationDate)
		if err != nil {
			return err
		}
		verificationPlan, err := utils.ParseDate(seed.VerificationPlan)
		if err != nil {
			return err
		}
		due, err := services.CalculateDue(verificationDate, seed.VerificationInterval)
		if err != nil {
			return err
		}
		status := services.CalculateStatus(today, due, seed.VerificationState)

		var equipmentID uint64
		err = tx.QueryRow(ctx, `
			INSERT INTO equipment (equipment_name, equipment_model, equipment_type, equipment_specs,
			                       factory_number, inventory_number, equipment_year)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			seed.Name, seed.Model, seed.Type, seed.Specs,
			seed.FactoryNumber, seed.InventoryNumber, seed.Year,
		).Scan(&equipmentID)
		if err != nil {
			return err
		}

		var registryNumber interface{}
		if seed.RegistryNumber != "" {
			registryNumber = seed.RegistryNumber
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO verification (equipment_id, verification_type, registry_number,
			                          verification_interval, verification_date, verification_due,
			                          verification_plan, verification_state, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			equipmentID, seed.VerificationType, registryNumber, seed.VerificationInterval,
			verificationDate, due, verificationPlan, seed.VerificationState, status,
		); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO responsibility (equipment_id, department, responsible_person, verifier_org)
			VALUES ($1, $2, $3, $4)`,
			equipmentID, seed.Department, seed.ResponsiblePerson, seed.VerifierOrg,
		); err != nil {
			return err
		}

		totalCost := seed.CostRate * float64(seed.Quantity) * constants.DefaultCoefficient
		if _, err := tx.Exec(ctx, `
			INSERT INTO finance (equipment_id, budget_item, code_rate, cost_rate, quantity,
			                     coefficient, total_cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			equipmentID, seed.BudgetItem, seed.CodeRate, seed.CostRate, seed.Quantity,
			constants.DefaultCoefficient, totalCost,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
