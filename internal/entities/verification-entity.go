package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Verification - сведения о поверке/калибровке единицы оборудования.
// VerificationDue и Status - производные поля: их выставляет только ядро
// (CalculateDue + CalculateStatus), напрямую они не принимаются.
type Verification struct {
	ID                   uint64      `db:"id" json:"id"`
	EquipmentID          uint64      `db:"equipment_id" json:"equipment_id"`
	VerificationType     string      `db:"verification_type" json:"verification_type"`
	RegistryNumber       null.String `db:"registry_number" json:"registry_number"`
	VerificationInterval int         `db:"verification_interval" json:"verification_interval"`
	VerificationDate     time.Time   `db:"verification_date" json:"verification_date"`
	VerificationDue      time.Time   `db:"verification_due" json:"verification_due"`
	VerificationPlan     time.Time   `db:"verification_plan" json:"verification_plan"`
	VerificationState    string      `db:"verification_state" json:"verification_state"`
	Status               string      `db:"status" json:"status"`
}
