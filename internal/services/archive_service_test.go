package services

import (
	"context"
	"testing"
	"time"

	"deltica/internal/entities"
	"deltica/pkg/clock"
	"deltica/pkg/constants"
	apperrors "deltica/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type archiveFixture struct {
	store   *memStore
	cache   *fakeCacheRepo
	storage *fakeFileStorage
	service *ArchiveService
}

func newArchiveFixture(t *testing.T, now time.Time) *archiveFixture {
	t.Helper()
	store := newMemStore()
	cache := newFakeCacheRepo()
	storage := &fakeFileStorage{}

	service := NewArchiveService(
		&fakeArchiveRepo{store: store},
		&fakeEquipmentRepo{store: store},
		&fakeVerificationRepo{store: store},
		&fakeResponsibilityRepo{store: store},
		&fakeFinanceRepo{store: store},
		&fakeFileRepo{store: store},
		cache,
		&fakeTxManager{store: store},
		storage,
		clock.Fixed(now),
		zap.NewNop(),
	)
	return &archiveFixture{store: store, cache: cache, storage: storage, service: service}
}

// seedAggregate кладёт в хранилище полный агрегат и возвращает его id.
func (f *archiveFixture) seedAggregate() uint64 {
	f.store.nextEquipmentID++
	id := f.store.nextEquipmentID

	f.store.equipment[id] = entities.Equipment{
		ID:              id,
		EquipmentName:   "Мультиметр цифровой",
		EquipmentModel:  "Fluke 87V",
		EquipmentType:   constants.EquipmentTypeSI,
		FactoryNumber:   "48210357",
		InventoryNumber: "INV-0001",
		EquipmentYear:   2021,
	}
	f.store.verification[id] = entities.Verification{
		ID:                   id,
		EquipmentID:          id,
		VerificationType:     constants.VerificationTypeVerification,
		RegistryNumber:       null.StringFrom("33374-19"),
		VerificationInterval: 12,
		VerificationDate:     date("2025-01-31"),
		VerificationDue:      date("2026-01-30"),
		VerificationPlan:     date("2026-01-31"),
		VerificationState:    constants.StateWork,
		Status:               constants.StatusFit,
	}
	f.store.responsibility[id] = entities.Responsibility{
		ID:                id,
		EquipmentID:       id,
		Department:        "Лаборатория электрических измерений",
		ResponsiblePerson: "Каримов Д. Р.",
		VerifierOrg:       "ЦСМ Согдийской области",
	}
	f.store.finance[id] = entities.Finance{
		ID:          id,
		EquipmentID: id,
		BudgetItem:  "02.10.31.2",
		CostRate:    null.Float64From(180),
		Quantity:    1,
		Coefficient: 1.0,
		TotalCost:   null.Float64From(180),
	}

	f.store.nextFileID++
	f.store.files[f.store.nextFileID] = entities.EquipmentFile{
		ID:          f.store.nextFileID,
		EquipmentID: id,
		FileName:    "certificate.pdf",
		FilePath:    "equipment/2025/01/31/certificate.pdf",
		FileType:    constants.FileTypeCertificate,
		FileSize:    2048,
		UploadedAt:  time.Date(2025, 1, 31, 10, 30, 0, 0, time.UTC),
	}
	return id
}

func TestArchiveMovesWholeAggregate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newArchiveFixture(t, now)
	equipmentID := f.seedAggregate()

	res, err := f.service.Archive(context.Background(), equipmentID, "списание по износу")
	require.NoError(t, err)

	assert.Equal(t, equipmentID, res.OriginalID)
	assert.Equal(t, "списание по износу", res.ArchiveReason)

	// В активном реестре ничего не осталось.
	assert.Empty(t, f.store.equipment)
	assert.Empty(t, f.store.verification)
	assert.Empty(t, f.store.responsibility)
	assert.Empty(t, f.store.finance)
	assert.Empty(t, f.store.files)

	// Архив хранит снимок: срок поверки перенесён дословно.
	require.Len(t, f.store.archived, 1)
	archived := f.store.archived[res.ID]
	assert.Equal(t, now, archived.ArchivedAt)

	verification := f.store.archivedVerification[res.ID]
	assert.Equal(t, date("2026-01-30"), verification.VerificationDue)
	assert.Equal(t, constants.StatusFit, verification.Status)

	files := f.store.archivedFiles[res.ID]
	require.Len(t, files, 1)
	assert.Equal(t, time.Date(2025, 1, 31, 10, 30, 0, 0, time.UTC), files[0].UploadedAt)

	// Байты файлов при архивации не трогаются.
	assert.Empty(t, f.storage.deleted)
	// Кеш реестра сброшен.
	assert.Contains(t, f.cache.deleted, constants.CacheKeyRegistry)
}

func TestArchiveWithoutReason(t *testing.T) {
	f := newArchiveFixture(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	equipmentID := f.seedAggregate()

	res, err := f.service.Archive(context.Background(), equipmentID, "")
	require.NoError(t, err)
	assert.Equal(t, "", res.ArchiveReason)

	archived := f.store.archived[res.ID]
	assert.False(t, archived.ArchiveReason.Valid)
}

func TestArchiveRollsBackOnFailure(t *testing.T) {
	f := newArchiveFixture(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	equipmentID := f.seedAggregate()
	f.store.failOnArchivedFinance = true

	_, err := f.service.Archive(context.Background(), equipmentID, "списание")
	require.Error(t, err)

	// Исходный агрегат не тронут, в архиве пусто.
	assert.Len(t, f.store.equipment, 1)
	assert.Len(t, f.store.verification, 1)
	assert.Len(t, f.store.responsibility, 1)
	assert.Len(t, f.store.finance, 1)
	assert.Len(t, f.store.files, 1)
	assert.Empty(t, f.store.archived)
	assert.Empty(t, f.store.archivedVerification)

	_, found := f.store.equipment[equipmentID]
	assert.True(t, found)
}

func TestRestoreRecomputesDueAndKeepsStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	f := newArchiveFixture(t, now)
	equipmentID := f.seedAggregate()

	res, err := f.service.Archive(context.Background(), equipmentID, "на хранение")
	require.NoError(t, err)

	newID, err := f.service.Restore(context.Background(), res.ID)
	require.NoError(t, err)

	// Новая идентичность, а не исходный id.
	assert.NotEqual(t, equipmentID, newID)

	// Архив пуст.
	assert.Empty(t, f.store.archived)
	assert.Empty(t, f.store.archivedVerification)
	assert.Empty(t, f.store.archivedResponsibility)
	assert.Empty(t, f.store.archivedFinance)
	assert.Empty(t, f.store.archivedFiles)

	// Поля агрегата пережили перенос туда и обратно без искажений.
	equipment, ok := f.store.equipment[newID]
	require.True(t, ok)
	assert.Equal(t, "Мультиметр цифровой", equipment.EquipmentName)
	assert.Equal(t, "Fluke 87V", equipment.EquipmentModel)
	assert.Equal(t, "48210357", equipment.FactoryNumber)

	responsibility, ok := f.store.responsibility[newID]
	require.True(t, ok)
	assert.Equal(t, "Лаборатория электрических измерений", responsibility.Department)

	finance, ok := f.store.finance[newID]
	require.True(t, ok)
	assert.Equal(t, 180.0, finance.CostRate.Float64)
	assert.Equal(t, 180.0, finance.TotalCost.Float64)

	verification, ok := f.store.verification[newID]
	require.True(t, ok)
	assert.Equal(t, "33374-19", verification.RegistryNumber.String)
	// Срок пересчитан от даты и интервала (2025-01-31 + 12 мес - 1 день).
	assert.Equal(t, date("2026-01-30"), verification.VerificationDue)
	// Хранимый статус перенесён дословно.
	assert.Equal(t, constants.StatusFit, verification.Status)

	// Файлы сохранили исходное время загрузки.
	var restoredFiles []entities.EquipmentFile
	for _, file := range f.store.files {
		if file.EquipmentID == newID {
			restoredFiles = append(restoredFiles, file)
		}
	}
	require.Len(t, restoredFiles, 1)
	assert.Equal(t, time.Date(2025, 1, 31, 10, 30, 0, 0, time.UTC), restoredFiles[0].UploadedAt)
}

func TestRestoreSubstitutesBudgetItemPlaceholder(t *testing.T) {
	f := newArchiveFixture(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	f.store.nextArchivedID++
	archivedID := f.store.nextArchivedID
	f.store.archived[archivedID] = entities.ArchivedEquipment{
		ID:              archivedID,
		OriginalID:      77,
		EquipmentName:   "Термометр",
		EquipmentModel:  "ТЛ-4",
		EquipmentType:   constants.EquipmentTypeSI,
		FactoryNumber:   "111",
		InventoryNumber: "INV-0077",
		EquipmentYear:   2015,
		ArchivedAt:      date("2025-12-01"),
	}
	f.store.archivedFinance[archivedID] = entities.ArchivedFinance{
		ArchivedEquipmentID: archivedID,
		OriginalEquipmentID: 77,
		Quantity:            1,
		Coefficient:         1.0,
	}

	newID, err := f.service.Restore(context.Background(), archivedID)
	require.NoError(t, err)

	finance, ok := f.store.finance[newID]
	require.True(t, ok)
	assert.Equal(t, constants.DefaultBudgetItem, finance.BudgetItem)
}

func TestUpdateReason(t *testing.T) {
	f := newArchiveFixture(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	equipmentID := f.seedAggregate()

	res, err := f.service.Archive(context.Background(), equipmentID, "первоначальная причина")
	require.NoError(t, err)

	updated, err := f.service.UpdateReason(context.Background(), res.ID, "уточнённая причина")
	require.NoError(t, err)
	assert.Equal(t, "уточнённая причина", updated.ArchiveReason)

	// Повторный вызов с тем же значением - без дополнительных эффектов.
	repeated, err := f.service.UpdateReason(context.Background(), res.ID, "уточнённая причина")
	require.NoError(t, err)
	assert.Equal(t, updated, repeated)

	// Остальные поля снимка не изменились.
	assert.Equal(t, res.EquipmentName, updated.EquipmentName)
	assert.Equal(t, res.ArchivedAt, updated.ArchivedAt)
}

func TestUpdateReasonNotFound(t *testing.T) {
	f := newArchiveFixture(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	_, err := f.service.UpdateReason(context.Background(), 404, "причина")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeletePermanentlyRemovesBytesAfterCommit(t *testing.T) {
	f := newArchiveFixture(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	equipmentID := f.seedAggregate()

	res, err := f.service.Archive(context.Background(), equipmentID, "на удаление")
	require.NoError(t, err)

	err = f.service.DeletePermanently(context.Background(), res.ID)
	require.NoError(t, err)

	assert.Empty(t, f.store.archived)
	assert.Empty(t, f.store.archivedFiles)
	assert.Equal(t, []string{"equipment/2025/01/31/certificate.pdf"}, f.storage.deleted)

	err = f.service.DeletePermanently(context.Background(), res.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetArchivedFullDefaults(t *testing.T) {
	f := newArchiveFixture(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	f.store.nextArchivedID++
	archivedID := f.store.nextArchivedID
	f.store.archived[archivedID] = entities.ArchivedEquipment{
		ID:              archivedID,
		OriginalID:      5,
		EquipmentName:   "Секундомер",
		EquipmentModel:  "СОСпр-2б",
		EquipmentType:   constants.EquipmentTypeSI,
		FactoryNumber:   "9001",
		InventoryNumber: "INV-0005",
		EquipmentYear:   2010,
		ArchivedAt:      date("2025-12-01"),
	}

	full, err := f.service.GetArchivedFull(context.Background(), archivedID)
	require.NoError(t, err)

	assert.Equal(t, constants.StateArchived, full.VerificationState)
	assert.Equal(t, constants.StatusFit, full.Status)
	assert.Equal(t, constants.DefaultVerificationInterval, full.VerificationInterval)
	assert.Equal(t, constants.DefaultBudgetItem, full.BudgetItem)
	assert.Equal(t, constants.DefaultQuantity, full.Quantity)
	assert.Equal(t, constants.DefaultCoefficient, full.Coefficient)
	assert.Empty(t, full.Files)
}
