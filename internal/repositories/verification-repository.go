package repositories

import (
	"context"

	"deltica/internal/entities"
	apperrors "deltica/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const verificationTable = "verification"

const verificationFields = `id, equipment_id, verification_type, registry_number, verification_interval,
	verification_date, verification_due, verification_plan, verification_state, status`

type VerificationRepositoryInterface interface {
	FindByEquipmentID(ctx context.Context, equipmentID uint64) (*entities.Verification, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, verification *entities.Verification) (uint64, error)
	UpdateByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64, verification *entities.Verification) error
	DeleteByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) error
}

type VerificationRepository struct {
	storage *pgxpool.Pool
}

func NewVerificationRepository(storage *pgxpool.Pool) VerificationRepositoryInterface {
	return &VerificationRepository{
		storage: storage,
	}
}

func (r *VerificationRepository) FindByEquipmentID(ctx context.Context, equipmentID uint64) (*entities.Verification, error) {
	return findVerificationByEquipmentID(ctx, r.storage, equipmentID)
}

func findVerificationByEquipmentID(ctx context.Context, q querier, equipmentID uint64) (*entities.Verification, error) {
	query := `
		SELECT ` + verificationFields + `
		FROM ` + verificationTable + `
		WHERE equipment_id = $1`

	var v entities.Verification
	err := q.QueryRow(ctx, query, equipmentID).Scan(
		&v.ID,
		&v.EquipmentID,
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

func (r *VerificationRepository) CreateInTx(ctx context.Context, tx pgx.Tx, verification *entities.Verification) (uint64, error) {
	query := `
		INSERT INTO ` + verificationTable + `
		(equipment_id, verification_type, registry_number, verification_interval,
		 verification_date, verification_due, verification_plan, verification_state, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var verificationID uint64
	err := tx.QueryRow(ctx, query,
		verification.EquipmentID,
		verification.VerificationType,
		verification.RegistryNumber,
		verification.VerificationInterval,
		verification.VerificationDate,
		verification.VerificationDue,
		verification.VerificationPlan,
		verification.VerificationState,
		verification.Status,
	).Scan(&verificationID)
	return verificationID, err
}

func (r *VerificationRepository) UpdateByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64, verification *entities.Verification) error {
	query := `
		UPDATE ` + verificationTable + `
		SET verification_type = $1, registry_number = $2, verification_interval = $3,
		    verification_date = $4, verification_due = $5, verification_plan = $6,
		    verification_state = $7, status = $8
		WHERE equipment_id = $9`

	_, err := tx.Exec(ctx, query,
		verification.VerificationType,
		verification.RegistryNumber,
		verification.VerificationInterval,
		verification.VerificationDate,
		verification.VerificationDue,
		verification.VerificationPlan,
		verification.VerificationState,
		verification.Status,
		equipmentID,
	)
	return err
}

func (r *VerificationRepository) DeleteByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	_, err := tx.Exec(ctx, "DELETE FROM "+verificationTable+" WHERE equipment_id = $1", equipmentID)
	return err
}
