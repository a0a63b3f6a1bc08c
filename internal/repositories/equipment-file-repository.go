package repositories

import (
	"context"

	"deltica/internal/entities"
	apperrors "deltica/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const equipmentFilesTable = "equipment_files"

type EquipmentFileRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.EquipmentFile, error)
	FindAllByEquipmentID(ctx context.Context, equipmentID uint64) ([]entities.EquipmentFile, error)
	Create(ctx context.Context, file *entities.EquipmentFile) (uint64, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, file *entities.EquipmentFile) (uint64, error)
	CreateRestoredInTx(ctx context.Context, tx pgx.Tx, file *entities.EquipmentFile) error
	Delete(ctx context.Context, id uint64) error
	DeleteByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) error
}

type EquipmentFileRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentFileRepository(storage *pgxpool.Pool) EquipmentFileRepositoryInterface {
	return &EquipmentFileRepository{
		storage: storage,
	}
}

func (r *EquipmentFileRepository) FindByID(ctx context.Context, id uint64) (*entities.EquipmentFile, error) {
	query := `
		SELECT id, equipment_id, file_name, file_path, file_type, file_size, uploaded_at
		FROM ` + equipmentFilesTable + `
		WHERE id = $1`

	var f entities.EquipmentFile
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.EquipmentID, &f.FileName, &f.FilePath, &f.FileType, &f.FileSize, &f.UploadedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *EquipmentFileRepository) FindAllByEquipmentID(ctx context.Context, equipmentID uint64) ([]entities.EquipmentFile, error) {
	query := `
		SELECT id, equipment_id, file_name, file_path, file_type, file_size, uploaded_at
		FROM ` + equipmentFilesTable + `
		WHERE equipment_id = $1
		ORDER BY uploaded_at DESC`

	rows, err := r.storage.Query(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []entities.EquipmentFile
	for rows.Next() {
		var f entities.EquipmentFile
		if err := rows.Scan(&f.ID, &f.EquipmentID, &f.FileName, &f.FilePath, &f.FileType, &f.FileSize, &f.UploadedAt); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (r *EquipmentFileRepository) Create(ctx context.Context, file *entities.EquipmentFile) (uint64, error) {
	return createEquipmentFile(ctx, r.storage, file)
}

func (r *EquipmentFileRepository) CreateInTx(ctx context.Context, tx pgx.Tx, file *entities.EquipmentFile) (uint64, error) {
	return createEquipmentFile(ctx, tx, file)
}

func createEquipmentFile(ctx context.Context, q querier, file *entities.EquipmentFile) (uint64, error) {
	query := `
		INSERT INTO ` + equipmentFilesTable + `
		(equipment_id, file_name, file_path, file_type, file_size)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, uploaded_at`

	err := q.QueryRow(ctx, query,
		file.EquipmentID, file.FileName, file.FilePath, file.FileType, file.FileSize,
	).Scan(&file.ID, &file.UploadedAt)
	return file.ID, err
}

// CreateRestoredInTx вставляет метаданные файла с исходным временем
// загрузки - при восстановлении из архива uploaded_at сохраняется.
func (r *EquipmentFileRepository) CreateRestoredInTx(ctx context.Context, tx pgx.Tx, file *entities.EquipmentFile) error {
	query := `
		INSERT INTO ` + equipmentFilesTable + `
		(equipment_id, file_name, file_path, file_type, file_size, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(ctx, query,
		file.EquipmentID, file.FileName, file.FilePath, file.FileType, file.FileSize, file.UploadedAt,
	)
	return err
}

func (r *EquipmentFileRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM "+equipmentFilesTable+" WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentFileRepository) DeleteByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	_, err := tx.Exec(ctx, "DELETE FROM "+equipmentFilesTable+" WHERE equipment_id = $1", equipmentID)
	return err
}
