package repositories

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"deltica/internal/entities"
	"deltica/pkg/constants"
	apperrors "deltica/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPool *pgxpool.Pool

// TestMain подключается к тестовой БД из TEST_DATABASE_URL и применяет схему.
// Без заданной переменной интеграционные тесты пропускаются целиком.
func TestMain(m *testing.M) {
	testDbURL := os.Getenv("TEST_DATABASE_URL")
	if testDbURL == "" {
		log.Println("TEST_DATABASE_URL не задан, интеграционные тесты репозиториев пропущены")
		os.Exit(0)
	}

	var err error
	testPool, err = pgxpool.New(context.Background(), testDbURL)
	if err != nil {
		log.Fatalf("Не удалось подключиться к тестовой БД: %v", err)
	}
	defer testPool.Close()

	applySchema(testPool)

	os.Exit(m.Run())
}

func applySchema(pool *pgxpool.Pool) {
	path, _ := filepath.Abs("../../testdata/schema.sql")
	schema, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Не удалось прочитать schema.sql: %v", err)
	}
	if _, err := pool.Exec(context.Background(), string(schema)); err != nil {
		log.Fatalf("Не удалось применить схему БД: %v", err)
	}
}

func cleanupTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		TRUNCATE TABLE archived_equipment_files, archived_finance, archived_responsibility,
		               archived_verification, archived_equipment,
		               equipment_files, finance, responsibility, verification, equipment
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err, "Не удалось очистить таблицы")
}

func testDate(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

// seedAggregate вставляет полный агрегат и возвращает id оборудования.
func seedAggregate(t *testing.T, pool *pgxpool.Pool) uint64 {
	t.Helper()
	ctx := context.Background()

	equipmentRepo := NewEquipmentRepository(pool)
	verificationRepo := NewVerificationRepository(pool)
	responsibilityRepo := NewResponsibilityRepository(pool)
	financeRepo := NewFinanceRepository(pool)
	txManager := NewTxManager(pool)

	var equipmentID uint64
	err := txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		equipmentID, err = equipmentRepo.CreateEquipmentInTx(ctx, tx, &entities.Equipment{
			EquipmentName:   "Мультиметр цифровой",
			EquipmentModel:  "Fluke 87V",
			EquipmentType:   constants.EquipmentTypeSI,
			FactoryNumber:   "48210357",
			InventoryNumber: "INV-0001",
			EquipmentYear:   2021,
		})
		if err != nil {
			return err
		}

		if _, err := verificationRepo.CreateInTx(ctx, tx, &entities.Verification{
			EquipmentID:          equipmentID,
			VerificationType:     constants.VerificationTypeVerification,
			RegistryNumber:       null.StringFrom("33374-19"),
			VerificationInterval: 12,
			VerificationDate:     testDate("2025-10-08"),
			VerificationDue:      testDate("2026-10-07"),
			VerificationPlan:     testDate("2026-10-08"),
			VerificationState:    constants.StateWork,
			Status:               constants.StatusFit,
		}); err != nil {
			return err
		}

		if _, err := responsibilityRepo.CreateInTx(ctx, tx, &entities.Responsibility{
			EquipmentID:       equipmentID,
			Department:        "Лаборатория электрических измерений",
			ResponsiblePerson: "Каримов Д. Р.",
			VerifierOrg:       "ЦСМ Согдийской области",
		}); err != nil {
			return err
		}

		_, err = financeRepo.CreateInTx(ctx, tx, &entities.Finance{
			EquipmentID: equipmentID,
			BudgetItem:  "02.10.31.2",
			CostRate:    null.Float64From(180),
			Quantity:    1,
			Coefficient: 1.0,
			TotalCost:   null.Float64From(180),
		})
		return err
	})
	require.NoError(t, err)
	return equipmentID
}

func TestEquipmentRepositoryCRUD(t *testing.T) {
	cleanupTables(t, testPool)
	ctx := context.Background()

	equipmentRepo := NewEquipmentRepository(testPool)
	txManager := NewTxManager(testPool)

	equipmentID := seedAggregate(t, testPool)

	found, err := equipmentRepo.FindEquipment(ctx, equipmentID)
	require.NoError(t, err)
	assert.Equal(t, "Fluke 87V", found.EquipmentModel)

	err = txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		found.EquipmentModel = "Fluke 87V MAX"
		return equipmentRepo.UpdateEquipmentInTx(ctx, tx, equipmentID, found)
	})
	require.NoError(t, err)

	updated, err := equipmentRepo.FindEquipment(ctx, equipmentID)
	require.NoError(t, err)
	assert.Equal(t, "Fluke 87V MAX", updated.EquipmentModel)

	_, err = equipmentRepo.FindEquipment(ctx, equipmentID+1000)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return equipmentRepo.UpdateEquipmentInTx(ctx, tx, equipmentID+1000, found)
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRegistryJoinIncludesBareEquipment(t *testing.T) {
	cleanupTables(t, testPool)
	ctx := context.Background()

	registryRepo := NewRegistryRepository(testPool)
	equipmentRepo := NewEquipmentRepository(testPool)
	txManager := NewTxManager(testPool)

	fullID := seedAggregate(t, testPool)

	var bareID uint64
	err := txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		bareID, err = equipmentRepo.CreateEquipmentInTx(ctx, tx, &entities.Equipment{
			EquipmentName:   "Секундомер",
			EquipmentModel:  "СОСпр-2б",
			EquipmentType:   constants.EquipmentTypeSI,
			FactoryNumber:   "9001",
			InventoryNumber: "INV-0005",
			EquipmentYear:   2010,
		})
		return err
	})
	require.NoError(t, err)

	rows, err := registryRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	full, err := registryRepo.GetByID(ctx, fullID)
	require.NoError(t, err)
	assert.True(t, full.VerificationState.Valid)
	assert.Equal(t, constants.StateWork, full.VerificationState.String)
	assert.Equal(t, testDate("2026-10-07"), full.VerificationDue.Time.UTC().Truncate(24*time.Hour))

	bare, err := registryRepo.GetByID(ctx, bareID)
	require.NoError(t, err)
	assert.False(t, bare.VerificationState.Valid)
	assert.False(t, bare.Department.Valid)
	assert.False(t, bare.BudgetItem.Valid)

	_, err = registryRepo.GetByID(ctx, bareID+1000)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTxManagerRollsBackOnError(t *testing.T) {
	cleanupTables(t, testPool)
	ctx := context.Background()

	equipmentRepo := NewEquipmentRepository(testPool)
	txManager := NewTxManager(testPool)

	err := txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := equipmentRepo.CreateEquipmentInTx(ctx, tx, &entities.Equipment{
			EquipmentName:   "Термометр",
			EquipmentModel:  "ТЛ-4",
			EquipmentType:   constants.EquipmentTypeSI,
			FactoryNumber:   "111",
			InventoryNumber: "INV-0077",
			EquipmentYear:   2015,
		}); err != nil {
			return err
		}
		return apperrors.ErrBadRequest
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	var count int
	require.NoError(t, testPool.QueryRow(ctx, "SELECT COUNT(*) FROM equipment").Scan(&count))
	assert.Zero(t, count)
}

func TestArchiveRepositoryLifecycle(t *testing.T) {
	cleanupTables(t, testPool)
	ctx := context.Background()

	archiveRepo := NewArchiveRepository(testPool)
	txManager := NewTxManager(testPool)

	archivedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var archivedID uint64
	err := txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		archivedID, err = archiveRepo.CreateArchivedEquipmentInTx(ctx, tx, &entities.ArchivedEquipment{
			OriginalID:      42,
			EquipmentName:   "Манометр образцовый",
			EquipmentModel:  "МО-11202",
			EquipmentType:   constants.EquipmentTypeSI,
			FactoryNumber:   "88412",
			InventoryNumber: "INV-0004",
			EquipmentYear:   2023,
			ArchiveReason:   null.StringFrom("списание"),
			ArchivedAt:      archivedAt,
		})
		if err != nil {
			return err
		}

		if err := archiveRepo.CreateArchivedVerificationInTx(ctx, tx, &entities.ArchivedVerification{
			ArchivedEquipmentID:  archivedID,
			OriginalEquipmentID:  42,
			VerificationType:     constants.VerificationTypeVerification,
			VerificationInterval: 12,
			VerificationDate:     testDate("2025-09-01"),
			VerificationDue:      testDate("2026-08-31"),
			VerificationPlan:     testDate("2026-09-01"),
			VerificationState:    constants.StateStorage,
			Status:               constants.StatusStorage,
		}); err != nil {
			return err
		}

		// budget_item в архиве допускает NULL.
		return archiveRepo.CreateArchivedFinanceInTx(ctx, tx, &entities.ArchivedFinance{
			ArchivedEquipmentID: archivedID,
			OriginalEquipmentID: 42,
			Quantity:            1,
			Coefficient:         1.0,
		})
	})
	require.NoError(t, err)

	found, err := archiveRepo.FindArchivedEquipment(ctx, archivedID)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), found.OriginalID)
	assert.Equal(t, "списание", found.ArchiveReason.String)

	verification, err := archiveRepo.FindArchivedVerification(ctx, archivedID)
	require.NoError(t, err)
	assert.Equal(t, testDate("2026-08-31"), verification.VerificationDue.UTC().Truncate(24*time.Hour))

	finance, err := archiveRepo.FindArchivedFinance(ctx, archivedID)
	require.NoError(t, err)
	assert.False(t, finance.BudgetItem.Valid)

	updated, err := archiveRepo.UpdateArchiveReason(ctx, archivedID, "уточнённая причина")
	require.NoError(t, err)
	assert.Equal(t, "уточнённая причина", updated.ArchiveReason.String)

	_, err = archiveRepo.UpdateArchiveReason(ctx, archivedID+1000, "причина")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := archiveRepo.DeleteArchivedRelatedInTx(ctx, tx, archivedID); err != nil {
			return err
		}
		return archiveRepo.DeleteArchivedEquipmentInTx(ctx, tx, archivedID)
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, testPool.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM archived_equipment)
		     + (SELECT COUNT(*) FROM archived_verification)
		     + (SELECT COUNT(*) FROM archived_finance)`).Scan(&count))
	assert.Zero(t, count)
}

func TestEquipmentFileRepository(t *testing.T) {
	cleanupTables(t, testPool)
	ctx := context.Background()

	fileRepo := NewEquipmentFileRepository(testPool)
	equipmentID := seedAggregate(t, testPool)

	file := &entities.EquipmentFile{
		EquipmentID: equipmentID,
		FileName:    "certificate.pdf",
		FilePath:    "equipment/2025/10/08/certificate.pdf",
		FileType:    constants.FileTypeCertificate,
		FileSize:    2048,
	}
	fileID, err := fileRepo.Create(ctx, file)
	require.NoError(t, err)
	assert.NotZero(t, fileID)
	assert.False(t, file.UploadedAt.IsZero(), "uploaded_at должен заполняться базой")

	files, err := fileRepo.FindAllByEquipmentID(ctx, equipmentID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "certificate.pdf", files[0].FileName)

	require.NoError(t, fileRepo.Delete(ctx, fileID))
	assert.ErrorIs(t, fileRepo.Delete(ctx, fileID), apperrors.ErrNotFound)
}
