package repositories

import (
	"context"

	"deltica/internal/entities"
	apperrors "deltica/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	archivedEquipmentTable      = "archived_equipment"
	archivedVerificationTable   = "archived_verification"
	archivedResponsibilityTable = "archived_responsibility"
	archivedFinanceTable        = "archived_finance"
	archivedFilesTable          = "archived_equipment_files"
)

// ArchiveRepositoryInterface - доступ к архивным зеркалам агрегата.
// Все мутации выполняются в переданной транзакции: движок архивации
// собирает из них одну атомарную операцию.
type ArchiveRepositoryInterface interface {
	GetAllArchived(ctx context.Context) ([]entities.ArchivedEquipment, error)
	FindArchivedEquipment(ctx context.Context, id uint64) (*entities.ArchivedEquipment, error)
	FindArchivedVerification(ctx context.Context, archivedEquipmentID uint64) (*entities.ArchivedVerification, error)
	FindArchivedResponsibility(ctx context.Context, archivedEquipmentID uint64) (*entities.ArchivedResponsibility, error)
	FindArchivedFinance(ctx context.Context, archivedEquipmentID uint64) (*entities.ArchivedFinance, error)
	FindArchivedFiles(ctx context.Context, archivedEquipmentID uint64) ([]entities.ArchivedEquipmentFile, error)

	CreateArchivedEquipmentInTx(ctx context.Context, tx pgx.Tx, equipment *entities.ArchivedEquipment) (uint64, error)
	CreateArchivedVerificationInTx(ctx context.Context, tx pgx.Tx, verification *entities.ArchivedVerification) error
	CreateArchivedResponsibilityInTx(ctx context.Context, tx pgx.Tx, responsibility *entities.ArchivedResponsibility) error
	CreateArchivedFinanceInTx(ctx context.Context, tx pgx.Tx, finance *entities.ArchivedFinance) error
	CreateArchivedFileInTx(ctx context.Context, tx pgx.Tx, file *entities.ArchivedEquipmentFile) error

	UpdateArchiveReason(ctx context.Context, id uint64, reason string) (*entities.ArchivedEquipment, error)

	DeleteArchivedRelatedInTx(ctx context.Context, tx pgx.Tx, archivedEquipmentID uint64) error
	DeleteArchivedEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64) error
}

type ArchiveRepository struct {
	storage *pgxpool.Pool
}

func NewArchiveRepository(storage *pgxpool.Pool) ArchiveRepositoryInterface {
	return &ArchiveRepository{
		storage: storage,
	}
}

const archivedEquipmentFields = `id, original_id, equipment_name, equipment_model, equipment_type,
	equipment_specs, factory_number, inventory_number, equipment_year, archive_reason, archived_at`

func scanArchivedEquipment(row pgx.Row, e *entities.ArchivedEquipment) error {
	return row.Scan(
		&e.ID,
		&e.OriginalID,
		&e.EquipmentName,
		&e.EquipmentModel,
		&e.EquipmentType,
		&e.EquipmentSpecs,
		&e.FactoryNumber,
		&e.InventoryNumber,
		&e.EquipmentYear,
		&e.ArchiveReason,
		&e.ArchivedAt,
	)
}

func (r *ArchiveRepository) GetAllArchived(ctx context.Context) ([]entities.ArchivedEquipment, error) {
	query := `
		SELECT ` + archivedEquipmentFields + `
		FROM ` + archivedEquipmentTable + `
		ORDER BY archived_at DESC`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entities.ArchivedEquipment
	for rows.Next() {
		var e entities.ArchivedEquipment
		if err := scanArchivedEquipment(rows, &e); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *ArchiveRepository) FindArchivedEquipment(ctx context.Context, id uint64) (*entities.ArchivedEquipment, error) {
	query := `
		SELECT ` + archivedEquipmentFields + `
		FROM ` + archivedEquipmentTable + `
		WHERE id = $1`

	var e entities.ArchivedEquipment
	if err := scanArchivedEquipment(r.storage.QueryRow(ctx, query, id), &e); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *ArchiveRepository) FindArchivedVerification(ctx context.Context, archivedEquipmentID uint64) (*entities.ArchivedVerification, error) {
	query := `
		SELECT id, archived_equipment_id, original_equipment_id, verification_type, registry_number,
		       verification_interval, verification_date, verification_due, verification_plan,
		       verification_state, status
		FROM ` + archivedVerificationTable + `
		WHERE archived_equipment_id = $1`

	var v entities.ArchivedVerification
	err := r.storage.QueryRow(ctx, query, archivedEquipmentID).Scan(
		&v.ID,
		&v.ArchivedEquipmentID,
		&v.OriginalEquipmentID,
		&v.VerificationType,
		&v.RegistryNumber,
		&v.VerificationInterval,
		&v.VerificationDate,
		&v.VerificationDue,
		&v.VerificationPlan,
		&v.VerificationState,
		&v.Status,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *ArchiveRepository) FindArchivedResponsibility(ctx context.Context, archivedEquipmentID uint64) (*entities.ArchivedResponsibility, error) {
	query := `
		SELECT id, archived_equipment_id, original_equipment_id, department, responsible_person, verifier_org
		FROM ` + archivedResponsibilityTable + `
		WHERE archived_equipment_id = $1`

	var resp entities.ArchivedResponsibility
	err := r.storage.QueryRow(ctx, query, archivedEquipmentID).Scan(
		&resp.ID,
		&resp.ArchivedEquipmentID,
		&resp.OriginalEquipmentID,
		&resp.Department,
		&resp.ResponsiblePerson,
		&resp.VerifierOrg,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

func (r *ArchiveRepository) FindArchivedFinance(ctx context.Context, archivedEquipmentID uint64) (*entities.ArchivedFinance, error) {
	query := `
		SELECT id, archived_equipment_id, original_equipment_id, budget_item, code_rate, cost_rate,
		       quantity, coefficient, total_cost, invoice_number, paid_amount, payment_date
		FROM ` + archivedFinanceTable + `
		WHERE archived_equipment_id = $1`

	var f entities.ArchivedFinance
	err := r.storage.QueryRow(ctx, query, archivedEquipmentID).Scan(
		&f.ID,
		&f.ArchivedEquipmentID,
		&f.OriginalEquipmentID,
		&f.BudgetItem,
		&f.CodeRate,
		&f.CostRate,
		&f.Quantity,
		&f.Coefficient,
		&f.TotalCost,
		&f.InvoiceNumber,
		&f.PaidAmount,
		&f.PaymentDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *ArchiveRepository) FindArchivedFiles(ctx context.Context, archivedEquipmentID uint64) ([]entities.ArchivedEquipmentFile, error) {
	query := `
		SELECT id, archived_equipment_id, original_equipment_id, file_name, file_path, file_type, file_size, uploaded_at
		FROM ` + archivedFilesTable + `
		WHERE archived_equipment_id = $1
		ORDER BY uploaded_at`

	rows, err := r.storage.Query(ctx, query, archivedEquipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []entities.ArchivedEquipmentFile
	for rows.Next() {
		var f entities.ArchivedEquipmentFile
		if err := rows.Scan(&f.ID, &f.ArchivedEquipmentID, &f.OriginalEquipmentID, &f.FileName, &f.FilePath, &f.FileType, &f.FileSize, &f.UploadedAt); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (r *ArchiveRepository) CreateArchivedEquipmentInTx(ctx context.Context, tx pgx.Tx, equipment *entities.ArchivedEquipment) (uint64, error) {
	query := `
		INSERT INTO ` + archivedEquipmentTable + `
		(original_id, equipment_name, equipment_model, equipment_type, equipment_specs,
		 factory_number, inventory_number, equipment_year, archive_reason, archived_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	var archivedID uint64
	err := tx.QueryRow(ctx, query,
		equipment.OriginalID,
		equipment.EquipmentName,
		equipment.EquipmentModel,
		equipment.EquipmentType,
		equipment.EquipmentSpecs,
		equipment.FactoryNumber,
		equipment.InventoryNumber,
		equipment.EquipmentYear,
		equipment.ArchiveReason,
		equipment.ArchivedAt,
	).Scan(&archivedID)
	return archivedID, err
}

func (r *ArchiveRepository) CreateArchivedVerificationInTx(ctx context.Context, tx pgx.Tx, verification *entities.ArchivedVerification) error {
	query := `
		INSERT INTO ` + archivedVerificationTable + `
		(archived_equipment_id, original_equipment_id, verification_type, registry_number,
		 verification_interval, verification_date, verification_due, verification_plan,
		 verification_state, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := tx.Exec(ctx, query,
		verification.ArchivedEquipmentID,
		verification.OriginalEquipmentID,
		verification.VerificationType,
		verification.RegistryNumber,
		verification.VerificationInterval,
		verification.VerificationDate,
		verification.VerificationDue,
		verification.VerificationPlan,
		verification.VerificationState,
		verification.Status,
	)
	return err
}

func (r *ArchiveRepository) CreateArchivedResponsibilityInTx(ctx context.Context, tx pgx.Tx, responsibility *entities.ArchivedResponsibility) error {
	query := `
		INSERT INTO ` + archivedResponsibilityTable + `
		(archived_equipment_id, original_equipment_id, department, responsible_person, verifier_org)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.Exec(ctx, query,
		responsibility.ArchivedEquipmentID,
		responsibility.OriginalEquipmentID,
		responsibility.Department,
		responsibility.ResponsiblePerson,
		responsibility.VerifierOrg,
	)
	return err
}

func (r *ArchiveRepository) CreateArchivedFinanceInTx(ctx context.Context, tx pgx.Tx, finance *entities.ArchivedFinance) error {
	query := `
		INSERT INTO ` + archivedFinanceTable + `
		(archived_equipment_id, original_equipment_id, budget_item, code_rate, cost_rate,
		 quantity, coefficient, total_cost, invoice_number, paid_amount, payment_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := tx.Exec(ctx, query,
		finance.ArchivedEquipmentID,
		finance.OriginalEquipmentID,
		finance.BudgetItem,
		finance.CodeRate,
		finance.CostRate,
		finance.Quantity,
		finance.Coefficient,
		finance.TotalCost,
		finance.InvoiceNumber,
		finance.PaidAmount,
		finance.PaymentDate,
	)
	return err
}

func (r *ArchiveRepository) CreateArchivedFileInTx(ctx context.Context, tx pgx.Tx, file *entities.ArchivedEquipmentFile) error {
	query := `
		INSERT INTO ` + archivedFilesTable + `
		(archived_equipment_id, original_equipment_id, file_name, file_path, file_type, file_size, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query,
		file.ArchivedEquipmentID,
		file.OriginalEquipmentID,
		file.FileName,
		file.FilePath,
		file.FileType,
		file.FileSize,
		file.UploadedAt,
	)
	return err
}

func (r *ArchiveRepository) UpdateArchiveReason(ctx context.Context, id uint64, reason string) (*entities.ArchivedEquipment, error) {
	query := `
		UPDATE ` + archivedEquipmentTable + `
		SET archive_reason = $1
		WHERE id = $2
		RETURNING ` + archivedEquipmentFields

	var e entities.ArchivedEquipment
	if err := scanArchivedEquipment(r.storage.QueryRow(ctx, query, reason, id), &e); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// DeleteArchivedRelatedInTx явно удаляет все зеркальные записи агрегата.
// На каскад на уровне БД движок не полагается.
func (r *ArchiveRepository) DeleteArchivedRelatedInTx(ctx context.Context, tx pgx.Tx, archivedEquipmentID uint64) error {
	for _, table := range []string{
		archivedFinanceTable,
		archivedResponsibilityTable,
		archivedVerificationTable,
		archivedFilesTable,
	} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE archived_equipment_id = $1", archivedEquipmentID); err != nil {
			return err
		}
	}
	return nil
}

func (r *ArchiveRepository) DeleteArchivedEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	result, err := tx.Exec(ctx, "DELETE FROM "+archivedEquipmentTable+" WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
