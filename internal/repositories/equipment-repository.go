package repositories

import (
	"context"

	"deltica/internal/entities"
	apperrors "deltica/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const equipmentTable = "equipment"

type EquipmentRepositoryInterface interface {
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipmentInTx(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) (uint64, error)
	UpdateEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64, equipment *entities.Equipment) error
	DeleteEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{
		storage: storage,
	}
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := `
		SELECT id, equipment_name, equipment_model, equipment_type, equipment_specs,
		       factory_number, inventory_number, equipment_year
		FROM ` + equipmentTable + `
		WHERE id = $1`

	var equipment entities.Equipment
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&equipment.ID,
		&equipment.EquipmentName,
		&equipment.EquipmentModel,
		&equipment.EquipmentType,
		&equipment.EquipmentSpecs,
		&equipment.FactoryNumber,
		&equipment.InventoryNumber,
		&equipment.EquipmentYear,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &equipment, nil
}

func (r *EquipmentRepository) CreateEquipmentInTx(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) (uint64, error) {
	query := `
		INSERT INTO ` + equipmentTable + `
		(equipment_name, equipment_model, equipment_type, equipment_specs, factory_number, inventory_number, equipment_year)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var equipmentID uint64
	err := tx.QueryRow(ctx, query,
		equipment.EquipmentName,
		equipment.EquipmentModel,
		equipment.EquipmentType,
		equipment.EquipmentSpecs,
		equipment.FactoryNumber,
		equipment.InventoryNumber,
		equipment.EquipmentYear,
	).Scan(&equipmentID)
	return equipmentID, err
}

func (r *EquipmentRepository) UpdateEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64, equipment *entities.Equipment) error {
	query := `
		UPDATE ` + equipmentTable + `
		SET equipment_name = $1, equipment_model = $2, equipment_type = $3, equipment_specs = $4,
		    factory_number = $5, inventory_number = $6, equipment_year = $7
		WHERE id = $8`

	result, err := tx.Exec(ctx, query,
		equipment.EquipmentName,
		equipment.EquipmentModel,
		equipment.EquipmentType,
		equipment.EquipmentSpecs,
		equipment.FactoryNumber,
		equipment.InventoryNumber,
		equipment.EquipmentYear,
		id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	result, err := tx.Exec(ctx, "DELETE FROM "+equipmentTable+" WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
