package services

import (
	"context"

	"deltica/internal/dto"
	"deltica/internal/entities"
	"deltica/internal/repositories"
	clockpkg "deltica/pkg/clock"
	"deltica/pkg/constants"
	apperrors "deltica/pkg/errors"
	"deltica/pkg/filestorage"
	"deltica/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ArchiveService - перенос агрегатов между активным реестром и архивом.
// Каждый перенос - одна транзакция: либо агрегат переехал целиком,
// либо обе стороны остались нетронутыми.
type ArchiveService struct {
	archiveRepo        repositories.ArchiveRepositoryInterface
	equipmentRepo      repositories.EquipmentRepositoryInterface
	verificationRepo   repositories.VerificationRepositoryInterface
	responsibilityRepo repositories.ResponsibilityRepositoryInterface
	financeRepo        repositories.FinanceRepositoryInterface
	fileRepo           repositories.EquipmentFileRepositoryInterface
	cacheRepo          repositories.CacheRepositoryInterface
	txManager          repositories.TxManagerInterface
	fileStorage        filestorage.FileStorageInterface
	clock              clockpkg.Clock
	logger             *zap.Logger
}

func NewArchiveService(
	archiveRepo repositories.ArchiveRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	verificationRepo repositories.VerificationRepositoryInterface,
	responsibilityRepo repositories.ResponsibilityRepositoryInterface,
	financeRepo repositories.FinanceRepositoryInterface,
	fileRepo repositories.EquipmentFileRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	txManager repositories.TxManagerInterface,
	fileStorage filestorage.FileStorageInterface,
	clk clockpkg.Clock,
	logger *zap.Logger,
) *ArchiveService {
	return &ArchiveService{
		archiveRepo:        archiveRepo,
		equipmentRepo:      equipmentRepo,
		verificationRepo:   verificationRepo,
		responsibilityRepo: responsibilityRepo,
		financeRepo:        financeRepo,
		fileRepo:           fileRepo,
		cacheRepo:          cacheRepo,
		txManager:          txManager,
		fileStorage:        fileStorage,
		clock:              clk,
		logger:             logger,
	}
}

// Archive переносит агрегат в архив. Срок поверки копируется дословно -
// архив хранит снимок на момент архивации. Исходные записи удаляются
// явно, в той же транзакции; байты файлов остаются на диске и переезжают
// вместе с метаданными.
func (s *ArchiveService) Archive(ctx context.Context, equipmentID uint64, reason string) (*dto.ArchivedEquipmentDTO, error) {
	equipment, err := s.equipmentRepo.FindEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	verification, err := s.verificationRepo.FindByEquipmentID(ctx, equipmentID)
	if err != nil && err != apperrors.ErrNotFound {
		return nil, err
	}
	responsibility, err := s.responsibilityRepo.FindByEquipmentID(ctx, equipmentID)
	if err != nil && err != apperrors.ErrNotFound {
		return nil, err
	}
	finance, err := s.financeRepo.FindByEquipmentID(ctx, equipmentID)
	if err != nil && err != apperrors.ErrNotFound {
		return nil, err
	}
	files, err := s.fileRepo.FindAllByEquipmentID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	archived := &entities.ArchivedEquipment{
		OriginalID:      equipment.ID,
		EquipmentName:   equipment.EquipmentName,
		EquipmentModel:  equipment.EquipmentModel,
		EquipmentType:   equipment.EquipmentType,
		EquipmentSpecs:  equipment.EquipmentSpecs,
		FactoryNumber:   equipment.FactoryNumber,
		InventoryNumber: equipment.InventoryNumber,
		EquipmentYear:   equipment.EquipmentYear,
		ArchiveReason:   null.NewString(reason, reason != ""),
		ArchivedAt:      s.clock.Now(),
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		archivedID, err := s.archiveRepo.CreateArchivedEquipmentInTx(ctx, tx, archived)
		if err != nil {
			return err
		}
		archived.ID = archivedID

		if verification != nil {
			if err := s.archiveRepo.CreateArchivedVerificationInTx(ctx, tx, &entities.ArchivedVerification{
				ArchivedEquipmentID:  archivedID,
				OriginalEquipmentID:  equipmentID,
				VerificationType:     verification.VerificationType,
				RegistryNumber:       verification.RegistryNumber,
				VerificationInterval: verification.VerificationInterval,
				VerificationDate:     verification.VerificationDate,
				VerificationDue:      verification.VerificationDue,
				VerificationPlan:     verification.VerificationPlan,
				VerificationState:    verification.VerificationState,
				Status:               verification.Status,
			}); err != nil {
				return err
			}
		}

		if responsibility != nil {
			if err := s.archiveRepo.CreateArchivedResponsibilityInTx(ctx, tx, &entities.ArchivedResponsibility{
				ArchivedEquipmentID: archivedID,
				OriginalEquipmentID: equipmentID,
				Department:          responsibility.Department,
				ResponsiblePerson:   responsibility.ResponsiblePerson,
				VerifierOrg:         responsibility.VerifierOrg,
			}); err != nil {
				return err
			}
		}

		if finance != nil {
			if err := s.archiveRepo.CreateArchivedFinanceInTx(ctx, tx, &entities.ArchivedFinance{
				ArchivedEquipmentID: archivedID,
				OriginalEquipmentID: equipmentID,
				BudgetItem:          null.NewString(finance.BudgetItem, finance.BudgetItem != ""),
				CodeRate:            finance.CodeRate,
				CostRate:            finance.CostRate,
				Quantity:            finance.Quantity,
				Coefficient:         finance.Coefficient,
				TotalCost:           finance.TotalCost,
				InvoiceNumber:       finance.InvoiceNumber,
				PaidAmount:          finance.PaidAmount,
				PaymentDate:         finance.PaymentDate,
			}); err != nil {
				return err
			}
		}

		for i := range files {
			if err := s.archiveRepo.CreateArchivedFileInTx(ctx, tx, &entities.ArchivedEquipmentFile{
				ArchivedEquipmentID: archivedID,
				OriginalEquipmentID: equipmentID,
				FileName:            files[i].FileName,
				FilePath:            files[i].FilePath,
				FileType:            files[i].FileType,
				FileSize:            files[i].FileSize,
				UploadedAt:          files[i].UploadedAt,
			}); err != nil {
				return err
			}
		}

		if finance != nil {
			if err := s.financeRepo.DeleteByEquipmentIDInTx(ctx, tx, equipmentID); err != nil {
				return err
			}
		}
		if responsibility != nil {
			if err := s.responsibilityRepo.DeleteByEquipmentIDInTx(ctx, tx, equipmentID); err != nil {
				return err
			}
		}
		if verification != nil {
			if err := s.verificationRepo.DeleteByEquipmentIDInTx(ctx, tx, equipmentID); err != nil {
				return err
			}
		}
		if err := s.fileRepo.DeleteByEquipmentIDInTx(ctx, tx, equipmentID); err != nil {
			return err
		}
		return s.equipmentRepo.DeleteEquipmentInTx(ctx, tx, equipmentID)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateRegistryCache(ctx)
	s.logger.Info("оборудование перенесено в архив",
		zap.Uint64("equipment_id", equipmentID), zap.Uint64("archived_id", archived.ID))

	response := archivedEquipmentToDTO(archived)
	return &response, nil
}

// Restore возвращает агрегат из архива в активный реестр. Запись получает
// новый идентификатор, срок поверки пересчитывается от даты и интервала,
// а вот хранимый статус переносится дословно - как и уложенный в архив
// снимок. Отображаемый статус реестр всё равно выводит заново при чтении.
func (s *ArchiveService) Restore(ctx context.Context, archivedID uint64) (uint64, error) {
	archived, err := s.archiveRepo.FindArchivedEquipment(ctx, archivedID)
	if err != nil {
		return 0, err
	}

	verification, err := s.archiveRepo.FindArchivedVerification(ctx, archivedID)
	if err != nil && err != apperrors.ErrNotFound {
		return 0, err
	}
	responsibility, err := s.archiveRepo.FindArchivedResponsibility(ctx, archivedID)
	if err != nil && err != apperrors.ErrNotFound {
		return 0, err
	}
	finance, err := s.archiveRepo.FindArchivedFinance(ctx, archivedID)
	if err != nil && err != apperrors.ErrNotFound {
		return 0, err
	}
	files, err := s.archiveRepo.FindArchivedFiles(ctx, archivedID)
	if err != nil {
		return 0, err
	}

	var newEquipmentID uint64
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		newEquipmentID, err = s.equipmentRepo.CreateEquipmentInTx(ctx, tx, &entities.Equipment{
			EquipmentName:   archived.EquipmentName,
			EquipmentModel:  archived.EquipmentModel,
			EquipmentType:   archived.EquipmentType,
			EquipmentSpecs:  archived.EquipmentSpecs,
			FactoryNumber:   archived.FactoryNumber,
			InventoryNumber: archived.InventoryNumber,
			EquipmentYear:   archived.EquipmentYear,
		})
		if err != nil {
			return err
		}

		if verification != nil {
			due, err := CalculateDue(verification.VerificationDate, verification.VerificationInterval)
			if err != nil {
				return err
			}
			if _, err := s.verificationRepo.CreateInTx(ctx, tx, &entities.Verification{
				EquipmentID:          newEquipmentID,
				VerificationType:     verification.VerificationType,
				RegistryNumber:       verification.RegistryNumber,
				VerificationInterval: verification.VerificationInterval,
				VerificationDate:     verification.VerificationDate,
				VerificationDue:      due,
				VerificationPlan:     verification.VerificationPlan,
				VerificationState:    verification.VerificationState,
				Status:               verification.Status,
			}); err != nil {
				return err
			}
		}

		if responsibility != nil {
			if _, err := s.responsibilityRepo.CreateInTx(ctx, tx, &entities.Responsibility{
				EquipmentID:       newEquipmentID,
				Department:        responsibility.Department,
				ResponsiblePerson: responsibility.ResponsiblePerson,
				VerifierOrg:       responsibility.VerifierOrg,
			}); err != nil {
				return err
			}
		}

		if finance != nil {
			budgetItem := finance.BudgetItem.String
			if budgetItem == "" {
				budgetItem = constants.DefaultBudgetItem
			}
			if _, err := s.financeRepo.CreateInTx(ctx, tx, &entities.Finance{
				EquipmentID:   newEquipmentID,
				BudgetItem:    budgetItem,
				CodeRate:      finance.CodeRate,
				CostRate:      finance.CostRate,
				Quantity:      finance.Quantity,
				Coefficient:   finance.Coefficient,
				TotalCost:     finance.TotalCost,
				InvoiceNumber: finance.InvoiceNumber,
				PaidAmount:    finance.PaidAmount,
				PaymentDate:   finance.PaymentDate,
			}); err != nil {
				return err
			}
		}

		for i := range files {
			if err := s.fileRepo.CreateRestoredInTx(ctx, tx, &entities.EquipmentFile{
				EquipmentID: newEquipmentID,
				FileName:    files[i].FileName,
				FilePath:    files[i].FilePath,
				FileType:    files[i].FileType,
				FileSize:    files[i].FileSize,
				UploadedAt:  files[i].UploadedAt,
			}); err != nil {
				return err
			}
		}

		if err := s.archiveRepo.DeleteArchivedRelatedInTx(ctx, tx, archivedID); err != nil {
			return err
		}
		return s.archiveRepo.DeleteArchivedEquipmentInTx(ctx, tx, archivedID)
	})
	if err != nil {
		return 0, err
	}

	s.invalidateRegistryCache(ctx)
	s.logger.Info("оборудование восстановлено из архива",
		zap.Uint64("archived_id", archivedID), zap.Uint64("equipment_id", newEquipmentID))
	return newEquipmentID, nil
}

func (s *ArchiveService) GetAllArchived(ctx context.Context) ([]dto.ArchivedEquipmentDTO, error) {
	items, err := s.archiveRepo.GetAllArchived(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ArchivedEquipmentDTO, 0, len(items))
	for i := range items {
		result = append(result, archivedEquipmentToDTO(&items[i]))
	}
	return result, nil
}

func (s *ArchiveService) GetArchived(ctx context.Context, archivedID uint64) (*dto.ArchivedEquipmentDTO, error) {
	archived, err := s.archiveRepo.FindArchivedEquipment(ctx, archivedID)
	if err != nil {
		return nil, err
	}
	response := archivedEquipmentToDTO(archived)
	return &response, nil
}

// GetArchivedFull собирает полную карточку архивной записи. Неполный
// агрегат дополняется дефолтами: архив мог принять оборудование без
// поверки, ответственности или финансов.
func (s *ArchiveService) GetArchivedFull(ctx context.Context, archivedID uint64) (*dto.ArchiveFullDTO, error) {
	archived, err := s.archiveRepo.FindArchivedEquipment(ctx, archivedID)
	if err != nil {
		return nil, err
	}

	full := dto.ArchiveFullDTO{
		ArchivedEquipmentDTO: archivedEquipmentToDTO(archived),

		VerificationType:     constants.VerificationTypeVerification,
		VerificationInterval: constants.DefaultVerificationInterval,
		VerificationState:    constants.StateArchived,
		Status:               constants.StatusFit,

		BudgetItem:  constants.DefaultBudgetItem,
		Quantity:    constants.DefaultQuantity,
		Coefficient: constants.DefaultCoefficient,

		Files: []dto.AttachmentResponseDTO{},
	}

	verification, err := s.archiveRepo.FindArchivedVerification(ctx, archivedID)
	if err != nil && err != apperrors.ErrNotFound {
		return nil, err
	}
	if err == nil {
		full.VerificationType = verification.VerificationType
		full.RegistryNumber = verification.RegistryNumber.String
		full.VerificationInterval = verification.VerificationInterval
		full.VerificationDate = utils.FormatDate(verification.VerificationDate)
		full.VerificationDue = utils.FormatDate(verification.VerificationDue)
		full.VerificationPlan = utils.FormatDate(verification.VerificationPlan)
		full.VerificationState = verification.VerificationState
		full.Status = verification.Status
	}

	responsibility, err := s.archiveRepo.FindArchivedResponsibility(ctx, archivedID)
	if err != nil && err != apperrors.ErrNotFound {
		return nil, err
	}
	if err == nil {
		full.Department = responsibility.Department
		full.ResponsiblePerson = responsibility.ResponsiblePerson
		full.VerifierOrg = responsibility.VerifierOrg
	}

	finance, err := s.archiveRepo.FindArchivedFinance(ctx, archivedID)
	if err != nil && err != apperrors.ErrNotFound {
		return nil, err
	}
	if err == nil {
		if finance.BudgetItem.Valid {
			full.BudgetItem = finance.BudgetItem.String
		}
		full.CodeRate = finance.CodeRate.String
		full.CostRate = finance.CostRate.Ptr()
		full.Quantity = finance.Quantity
		full.Coefficient = finance.Coefficient
		full.TotalCost = finance.TotalCost.Ptr()
		full.InvoiceNumber = finance.InvoiceNumber.String
		full.PaidAmount = finance.PaidAmount.Ptr()
		full.PaymentDate = utils.FormatNullDate(finance.PaymentDate)
	}

	files, err := s.archiveRepo.FindArchivedFiles(ctx, archivedID)
	if err != nil {
		return nil, err
	}
	for i := range files {
		full.Files = append(full.Files, dto.AttachmentResponseDTO{
			ID:          files[i].ID,
			EquipmentID: files[i].OriginalEquipmentID,
			FileName:    files[i].FileName,
			FileType:    files[i].FileType,
			FileSize:    files[i].FileSize,
			UploadedAt:  files[i].UploadedAt.Format("2006-01-02 15:04:05"),
			URL:         "/uploads/" + files[i].FilePath,
		})
	}

	return &full, nil
}

// UpdateReason меняет причину архивации - единственное редактируемое
// поле архивной записи.
func (s *ArchiveService) UpdateReason(ctx context.Context, archivedID uint64, reason string) (*dto.ArchivedEquipmentDTO, error) {
	archived, err := s.archiveRepo.UpdateArchiveReason(ctx, archivedID, reason)
	if err != nil {
		return nil, err
	}
	response := archivedEquipmentToDTO(archived)
	return &response, nil
}

// DeletePermanently окончательно удаляет архивную запись вместе с байтами
// прикреплённых файлов. Файлы с диска убираются после фиксации транзакции.
func (s *ArchiveService) DeletePermanently(ctx context.Context, archivedID uint64) error {
	if _, err := s.archiveRepo.FindArchivedEquipment(ctx, archivedID); err != nil {
		return err
	}

	files, err := s.archiveRepo.FindArchivedFiles(ctx, archivedID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.archiveRepo.DeleteArchivedRelatedInTx(ctx, tx, archivedID); err != nil {
			return err
		}
		return s.archiveRepo.DeleteArchivedEquipmentInTx(ctx, tx, archivedID)
	})
	if err != nil {
		return err
	}

	for _, file := range files {
		if err := s.fileStorage.Delete(file.FilePath); err != nil {
			s.logger.Warn("не удалось удалить файл с диска",
				zap.String("file_path", file.FilePath), zap.Error(err))
		}
	}

	s.logger.Info("архивная запись удалена окончательно", zap.Uint64("archived_id", archivedID))
	return nil
}

func archivedEquipmentToDTO(archived *entities.ArchivedEquipment) dto.ArchivedEquipmentDTO {
	return dto.ArchivedEquipmentDTO{
		ID:              archived.ID,
		OriginalID:      archived.OriginalID,
		EquipmentName:   archived.EquipmentName,
		EquipmentModel:  archived.EquipmentModel,
		EquipmentType:   archived.EquipmentType,
		EquipmentSpecs:  archived.EquipmentSpecs.String,
		FactoryNumber:   archived.FactoryNumber,
		InventoryNumber: archived.InventoryNumber,
		EquipmentYear:   archived.EquipmentYear,
		ArchiveReason:   archived.ArchiveReason.String,
		ArchivedAt:      archived.ArchivedAt.Format("2006-01-02 15:04:05"),
	}
}

func (s *ArchiveService) invalidateRegistryCache(ctx context.Context) {
	if err := s.cacheRepo.Del(ctx, constants.CacheKeyRegistry); err != nil {
		s.logger.Warn("не удалось сбросить кеш реестра", zap.Error(err))
	}
}
