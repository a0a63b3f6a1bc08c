package repositories

import (
	"context"

	"deltica/internal/entities"
	apperrors "deltica/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const responsibilityTable = "responsibility"

type ResponsibilityRepositoryInterface interface {
	FindByEquipmentID(ctx context.Context, equipmentID uint64) (*entities.Responsibility, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, responsibility *entities.Responsibility) (uint64, error)
	UpdateByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64, responsibility *entities.Responsibility) error
	DeleteByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) error
}

type ResponsibilityRepository struct {
	storage *pgxpool.Pool
}

func NewResponsibilityRepository(storage *pgxpool.Pool) ResponsibilityRepositoryInterface {
	return &ResponsibilityRepository{
		storage: storage,
	}
}

func (r *ResponsibilityRepository) FindByEquipmentID(ctx context.Context, equipmentID uint64) (*entities.Responsibility, error) {
	query := `
		SELECT id, equipment_id, department, responsible_person, verifier_org
		FROM ` + responsibilityTable + `
		WHERE equipment_id = $1`

	var resp entities.Responsibility
	err := r.storage.QueryRow(ctx, query, equipmentID).Scan(
		&resp.ID,
		&resp.EquipmentID,
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

func (r *ResponsibilityRepository) CreateInTx(ctx context.Context, tx pgx.Tx, responsibility *entities.Responsibility) (uint64, error) {
	query := `
		INSERT INTO ` + responsibilityTable + `
		(equipment_id, department, responsible_person, verifier_org)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var responsibilityID uint64
	err := tx.QueryRow(ctx, query,
		responsibility.EquipmentID,
		responsibility.Department,
		responsibility.ResponsiblePerson,
		responsibility.VerifierOrg,
	).Scan(&responsibilityID)
	return responsibilityID, err
}

func (r *ResponsibilityRepository) UpdateByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64, responsibility *entities.Responsibility) error {
	query := `
		UPDATE ` + responsibilityTable + `
		SET department = $1, responsible_person = $2, verifier_org = $3
		WHERE equipment_id = $4`

	_, err := tx.Exec(ctx, query,
		responsibility.Department,
		responsibility.ResponsiblePerson,
		responsibility.VerifierOrg,
		equipmentID,
	)
	return err
}

func (r *ResponsibilityRepository) DeleteByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	_, err := tx.Exec(ctx, "DELETE FROM "+responsibilityTable+" WHERE equipment_id = $1", equipmentID)
	return err
}
