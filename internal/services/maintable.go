package services

import (
	"context"
	"encoding/json"
	"time"

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

// MainTableService - операции над активным реестром оборудования.
// Агрегат из четырёх таблиц создаётся, обновляется и удаляется целиком,
// в одной транзакции. Производные поля (срок и статус поверки) считает
// только этот слой.
type MainTableService struct {
	registryRepo       repositories.RegistryRepositoryInterface
	equipmentRepo      repositories.EquipmentRepositoryInterface
	verificationRepo   repositories.VerificationRepositoryInterface
	responsibilityRepo repositories.ResponsibilityRepositoryInterface
	financeRepo        repositories.FinanceRepositoryInterface
	fileRepo           repositories.EquipmentFileRepositoryInterface
	cacheRepo          repositories.CacheRepositoryInterface
	txManager          repositories.TxManagerInterface
	fileStorage        filestorage.FileStorageInterface
	clock              clockpkg.Clock
	cacheTTL           time.Duration
	logger             *zap.Logger
}

func NewMainTableService(
	registryRepo repositories.RegistryRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	verificationRepo repositories.VerificationRepositoryInterface,
	responsibilityRepo repositories.ResponsibilityRepositoryInterface,
	financeRepo repositories.FinanceRepositoryInterface,
	fileRepo repositories.EquipmentFileRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	txManager repositories.TxManagerInterface,
	fileStorage filestorage.FileStorageInterface,
	clk clockpkg.Clock,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *MainTableService {
	return &MainTableService{
		registryRepo:       registryRepo,
		equipmentRepo:      equipmentRepo,
		verificationRepo:   verificationRepo,
		responsibilityRepo: responsibilityRepo,
		financeRepo:        financeRepo,
		fileRepo:           fileRepo,
		cacheRepo:          cacheRepo,
		txManager:          txManager,
		fileStorage:        fileStorage,
		clock:              clk,
		cacheTTL:           cacheTTL,
		logger:             logger,
	}
}

// GetAll возвращает объединённый реестр. В кеше лежат сырые строки выборки;
// статус пересчитывается от текущей даты уже после чтения из кеша, поэтому
// протухание срока поверки видно сразу, без инвалидации.
func (s *MainTableService) GetAll(ctx context.Context) ([]dto.MainTableResponseDTO, error) {
	var rows []entities.RegistryRow

	cached, err := s.cacheRepo.Get(ctx, constants.CacheKeyRegistry)
	if err == nil && cached != "" {
		if err := json.Unmarshal([]byte(cached), &rows); err != nil {
			s.logger.Warn("не удалось разобрать кеш реестра, читаем из БД", zap.Error(err))
			rows = nil
		}
	}

	if rows == nil {
		rows, err = s.registryRepo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		if payload, err := json.Marshal(rows); err == nil {
			if err := s.cacheRepo.Set(ctx, constants.CacheKeyRegistry, payload, s.cacheTTL); err != nil {
				s.logger.Warn("не удалось записать кеш реестра", zap.Error(err))
			}
		}
	}

	today := s.clock.Today()
	result := make([]dto.MainTableResponseDTO, 0, len(rows))
	for i := range rows {
		result = append(result, s.rowToResponse(&rows[i], today))
	}
	return result, nil
}

func (s *MainTableService) GetByID(ctx context.Context, id uint64) (*dto.MainTableResponseDTO, error) {
	row, err := s.registryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := s.rowToResponse(row, s.clock.Today())
	return &response, nil
}

// GetFullByID возвращает полный агрегат для формы редактирования.
// Отсутствующие связанные записи заменяются дефолтами, чтобы форма
// всегда получала все группы полей.
func (s *MainTableService) GetFullByID(ctx context.Context, id uint64) (*dto.EquipmentFullDTO, error) {
	equipment, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	full := dto.EquipmentFullDTO{
		EquipmentName:   equipment.EquipmentName,
		EquipmentModel:  equipment.EquipmentModel,
		EquipmentType:   equipment.EquipmentType,
		EquipmentSpecs:  equipment.EquipmentSpecs.String,
		FactoryNumber:   equipment.FactoryNumber,
		InventoryNumber: equipment.InventoryNumber,
		EquipmentYear:   equipment.EquipmentYear,

		VerificationType:     constants.VerificationTypeVerification,
		VerificationInterval: constants.DefaultVerificationInterval,
		VerificationState:    constants.StateArchived,
		Status:               constants.StatusFit,

		BudgetItem:  constants.DefaultBudgetItem,
		Quantity:    constants.DefaultQuantity,
		Coefficient: constants.DefaultCoefficient,
	}

	verification, err := s.verificationRepo.FindByEquipmentID(ctx, id)
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
		full.Status = CalculateStatus(s.clock.Today(), verification.VerificationDue, verification.VerificationState)
	}

	responsibility, err := s.responsibilityRepo.FindByEquipmentID(ctx, id)
	if err != nil && err != apperrors.ErrNotFound {
		return nil, err
	}
	if err == nil {
		full.Department = responsibility.Department
		full.ResponsiblePerson = responsibility.ResponsiblePerson
		full.VerifierOrg = responsibility.VerifierOrg
	}

	finance, err := s.financeRepo.FindByEquipmentID(ctx, id)
	if err != nil && err != apperrors.ErrNotFound {
		return nil, err
	}
	if err == nil {
		full.BudgetItem = finance.BudgetItem
		full.CodeRate = finance.CodeRate.String
		full.CostRate = finance.CostRate.Ptr()
		full.Quantity = finance.Quantity
		full.Coefficient = finance.Coefficient
		full.TotalCost = finance.TotalCost.Ptr()
		full.InvoiceNumber = finance.InvoiceNumber.String
		full.PaidAmount = finance.PaidAmount.Ptr()
		full.PaymentDate = utils.FormatNullDate(finance.PaymentDate)
	}

	return &full, nil
}

// Create регистрирует полный агрегат в одной транзакции.
func (s *MainTableService) Create(ctx context.Context, payload *dto.CreateMainTableDTO) (*dto.MainTableResponseDTO, error) {
	parts, err := s.buildAggregate(payload)
	if err != nil {
		return nil, err
	}

	var equipmentID uint64
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		equipmentID, err = s.equipmentRepo.CreateEquipmentInTx(ctx, tx, parts.equipment)
		if err != nil {
			return err
		}

		parts.verification.EquipmentID = equipmentID
		if _, err := s.verificationRepo.CreateInTx(ctx, tx, parts.verification); err != nil {
			return err
		}

		parts.responsibility.EquipmentID = equipmentID
		if _, err := s.responsibilityRepo.CreateInTx(ctx, tx, parts.responsibility); err != nil {
			return err
		}

		parts.finance.EquipmentID = equipmentID
		if _, err := s.financeRepo.CreateInTx(ctx, tx, parts.finance); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateRegistryCache(ctx)
	s.logger.Info("оборудование зарегистрировано", zap.Uint64("equipment_id", equipmentID))
	return s.GetByID(ctx, equipmentID)
}

// Update - полная замена всех четырёх групп агрегата.
func (s *MainTableService) Update(ctx context.Context, id uint64, payload *dto.UpdateMainTableDTO) (*dto.MainTableResponseDTO, error) {
	parts, err := s.buildAggregate(payload)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.equipmentRepo.UpdateEquipmentInTx(ctx, tx, id, parts.equipment); err != nil {
			return err
		}
		if err := s.verificationRepo.UpdateByEquipmentIDInTx(ctx, tx, id, parts.verification); err != nil {
			return err
		}
		if err := s.responsibilityRepo.UpdateByEquipmentIDInTx(ctx, tx, id, parts.responsibility); err != nil {
			return err
		}
		return s.financeRepo.UpdateByEquipmentIDInTx(ctx, tx, id, parts.finance)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateRegistryCache(ctx)
	s.logger.Info("оборудование обновлено", zap.Uint64("equipment_id", id))
	return s.GetByID(ctx, id)
}

// Delete удаляет агрегат целиком: связанные записи удаляются явно,
// каскад на уровне БД не используется. Байты прикреплённых файлов
// убираются после фиксации транзакции; сбой здесь уже не откатывает
// удаление, а только логируется.
func (s *MainTableService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.equipmentRepo.FindEquipment(ctx, id); err != nil {
		return err
	}

	files, err := s.fileRepo.FindAllByEquipmentID(ctx, id)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.financeRepo.DeleteByEquipmentIDInTx(ctx, tx, id); err != nil {
			return err
		}
		if err := s.responsibilityRepo.DeleteByEquipmentIDInTx(ctx, tx, id); err != nil {
			return err
		}
		if err := s.verificationRepo.DeleteByEquipmentIDInTx(ctx, tx, id); err != nil {
			return err
		}
		if err := s.fileRepo.DeleteByEquipmentIDInTx(ctx, tx, id); err != nil {
			return err
		}
		return s.equipmentRepo.DeleteEquipmentInTx(ctx, tx, id)
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

	s.invalidateRegistryCache(ctx)
	s.logger.Info("оборудование удалено", zap.Uint64("equipment_id", id))
	return nil
}

type aggregateParts struct {
	equipment      *entities.Equipment
	verification   *entities.Verification
	responsibility *entities.Responsibility
	finance        *entities.Finance
}

// buildAggregate переводит DTO в сущности и считает производные поля.
func (s *MainTableService) buildAggregate(payload *dto.CreateMainTableDTO) (*aggregateParts, error) {
	verificationDate, err := utils.ParseDate(payload.VerificationDate)
	if err != nil {
		return nil, err
	}
	verificationPlan, err := utils.ParseDate(payload.VerificationPlan)
	if err != nil {
		return nil, err
	}
	paymentDate, err := utils.ParseNullDate(payload.PaymentDate)
	if err != nil {
		return nil, err
	}

	due, err := CalculateDue(verificationDate, payload.VerificationInterval)
	if err != nil {
		return nil, err
	}
	status := CalculateStatus(s.clock.Today(), due, payload.VerificationState)

	coefficient := payload.Coefficient
	if coefficient == 0 {
		coefficient = constants.DefaultCoefficient
	}

	return &aggregateParts{
		equipment: &entities.Equipment{
			EquipmentName:   payload.EquipmentName,
			EquipmentModel:  payload.EquipmentModel,
			EquipmentType:   payload.EquipmentType,
			EquipmentSpecs:  null.NewString(payload.EquipmentSpecs, payload.EquipmentSpecs != ""),
			FactoryNumber:   payload.FactoryNumber,
			InventoryNumber: payload.InventoryNumber,
			EquipmentYear:   payload.EquipmentYear,
		},
		verification: &entities.Verification{
			VerificationType:     payload.VerificationType,
			RegistryNumber:       null.NewString(payload.RegistryNumber, payload.RegistryNumber != ""),
			VerificationInterval: payload.VerificationInterval,
			VerificationDate:     verificationDate,
			VerificationDue:      due,
			VerificationPlan:     verificationPlan,
			VerificationState:    payload.VerificationState,
			Status:               status,
		},
		responsibility: &entities.Responsibility{
			Department:        payload.Department,
			ResponsiblePerson: payload.ResponsiblePerson,
			VerifierOrg:       payload.VerifierOrg,
		},
		finance: &entities.Finance{
			BudgetItem:    payload.BudgetItem,
			CodeRate:      null.NewString(payload.CodeRate, payload.CodeRate != ""),
			CostRate:      null.Float64FromPtr(payload.CostRate),
			Quantity:      payload.Quantity,
			Coefficient:   coefficient,
			TotalCost:     null.Float64FromPtr(payload.TotalCost),
			InvoiceNumber: null.NewString(payload.InvoiceNumber, payload.InvoiceNumber != ""),
			PaidAmount:    null.Float64FromPtr(payload.PaidAmount),
			PaymentDate:   paymentDate,
		},
	}, nil
}

// rowToResponse собирает строку ответа; статус всегда выводится заново
// от переданной даты, хранимое значение из выборки не используется.
func (s *MainTableService) rowToResponse(row *entities.RegistryRow, today time.Time) dto.MainTableResponseDTO {
	response := dto.MainTableResponseDTO{
		EquipmentID:     row.EquipmentID,
		EquipmentName:   row.EquipmentName,
		EquipmentModel:  row.EquipmentModel,
		EquipmentType:   row.EquipmentType,
		FactoryNumber:   row.FactoryNumber,
		InventoryNumber: row.InventoryNumber,
		EquipmentYear:   row.EquipmentYear,

		VerificationType:     row.VerificationType.String,
		RegistryNumber:       row.RegistryNumber.String,
		VerificationInterval: int(row.VerificationInterval.Int64),
		VerificationDate:     utils.FormatNullDate(row.VerificationDate),
		VerificationDue:      utils.FormatNullDate(row.VerificationDue),
		VerificationPlan:     utils.FormatNullDate(row.VerificationPlan),
		VerificationState:    row.VerificationState.String,

		Department:        row.Department.String,
		ResponsiblePerson: row.ResponsiblePerson.String,
		VerifierOrg:       row.VerifierOrg.String,

		BudgetItem:    row.BudgetItem.String,
		CodeRate:      row.CodeRate.String,
		CostRate:      row.CostRate.Ptr(),
		Quantity:      int(row.Quantity.Int64),
		Coefficient:   row.Coefficient.Float64,
		TotalCost:     row.TotalCost.Ptr(),
		InvoiceNumber: row.InvoiceNumber.String,
		PaidAmount:    row.PaidAmount.Ptr(),
		PaymentDate:   utils.FormatNullDate(row.PaymentDate),
	}

	if row.VerificationState.Valid {
		response.Status = CalculateStatus(today, row.VerificationDue.Time, row.VerificationState.String)
	}
	return response
}

func (s *MainTableService) invalidateRegistryCache(ctx context.Context) {
	if err := s.cacheRepo.Del(ctx, constants.CacheKeyRegistry); err != nil {
		s.logger.Warn("не удалось сбросить кеш реестра", zap.Error(err))
	}
}
