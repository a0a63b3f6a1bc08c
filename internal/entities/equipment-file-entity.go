package entities

import "time"

// EquipmentFile - метаданные прикреплённого файла. Сами байты живут
// в файловом хранилище по FilePath.
type EquipmentFile struct {
	ID          uint64    `db:"id" json:"id"`
	EquipmentID uint64    `db:"equipment_id" json:"equipment_id"`
	FileName    string    `db:"file_name" json:"file_name"`
	FilePath    string    `db:"file_path" json:"file_path"`
	FileType    string    `db:"file_type" json:"file_type"`
	FileSize    int64     `db:"file_size" json:"file_size"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`
}
