package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Архивные зеркала. Агрегат в архиве - снимок: он не редактируется,
// кроме причины архивации, и живёт до восстановления или окончательного
// удаления. original_id / original_equipment_id хранят идентичность
// оборудования до архивации.

type ArchivedEquipment struct {
	ID              uint64      `db:"id" json:"id"`
	OriginalID      uint64      `db:"original_id" json:"original_id"`
	EquipmentName   string      `db:"equipment_name" json:"equipment_name"`
	EquipmentModel  string      `db:"equipment_model" json:"equipment_model"`
	EquipmentType   string      `db:"equipment_type" json:"equipment_type"`
	EquipmentSpecs  null.String `db:"equipment_specs" json:"equipment_specs"`
	FactoryNumber   string      `db:"factory_number" json:"factory_number"`
	InventoryNumber string      `db:"inventory_number" json:"inventory_number"`
	EquipmentYear   int         `db:"equipment_year" json:"equipment_year"`
	ArchiveReason   null.String `db:"archive_reason" json:"archive_reason"`
	ArchivedAt      time.Time   `db:"archived_at" json:"archived_at"`
}

// ArchivedVerification хранит verification_due дословно - это снимок
// срока на момент архивации, он не пересчитывается.
type ArchivedVerification struct {
	ID                   uint64      `db:"id" json:"id"`
	ArchivedEquipmentID  uint64      `db:"archived_equipment_id" json:"archived_equipment_id"`
	OriginalEquipmentID  uint64      `db:"original_equipment_id" json:"original_equipment_id"`
	VerificationType     string      `db:"verification_type" json:"verification_type"`
	RegistryNumber       null.String `db:"registry_number" json:"registry_number"`
	VerificationInterval int         `db:"verification_interval" json:"verification_interval"`
	VerificationDate     time.Time   `db:"verification_date" json:"verification_date"`
	VerificationDue      time.Time   `db:"verification_due" json:"verification_due"`
	VerificationPlan     time.Time   `db:"verification_plan" json:"verification_plan"`
	VerificationState    string      `db:"verification_state" json:"verification_state"`
	Status               string      `db:"status" json:"status"`
}

type ArchivedResponsibility struct {
	ID                  uint64 `db:"id" json:"id"`
	ArchivedEquipmentID uint64 `db:"archived_equipment_id" json:"archived_equipment_id"`
	OriginalEquipmentID uint64 `db:"original_equipment_id" json:"original_equipment_id"`
	Department          string `db:"department" json:"department"`
	ResponsiblePerson   string `db:"responsible_person" json:"responsible_person"`
	VerifierOrg         string `db:"verifier_org" json:"verifier_org"`
}

type ArchivedFinance struct {
	ID                  uint64       `db:"id" json:"id"`
	ArchivedEquipmentID uint64       `db:"archived_equipment_id" json:"archived_equipment_id"`
	OriginalEquipmentID uint64       `db:"original_equipment_id" json:"original_equipment_id"`
	BudgetItem          null.String  `db:"budget_item" json:"budget_item"`
	CodeRate            null.String  `db:"code_rate" json:"code_rate"`
	CostRate            null.Float64 `db:"cost_rate" json:"cost_rate"`
	Quantity            int          `db:"quantity" json:"quantity"`
	Coefficient         float64      `db:"coefficient" json:"coefficient"`
	TotalCost           null.Float64 `db:"total_cost" json:"total_cost"`
	InvoiceNumber       null.String  `db:"invoice_number" json:"invoice_number"`
	PaidAmount          null.Float64 `db:"paid_amount" json:"paid_amount"`
	PaymentDate         null.Time    `db:"payment_date" json:"payment_date"`
}

type ArchivedEquipmentFile struct {
	ID                  uint64    `db:"id" json:"id"`
	ArchivedEquipmentID uint64    `db:"archived_equipment_id" json:"archived_equipment_id"`
	OriginalEquipmentID uint64    `db:"original_equipment_id" json:"original_equipment_id"`
	FileName            string    `db:"file_name" json:"file_name"`
	FilePath            string    `db:"file_path" json:"file_path"`
	FileType            string    `db:"file_type" json:"file_type"`
	FileSize            int64     `db:"file_size" json:"file_size"`
	UploadedAt          time.Time `db:"uploaded_at" json:"uploaded_at"`
}
