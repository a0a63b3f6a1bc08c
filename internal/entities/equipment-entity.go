package entities

import "github.com/aarondl/null/v8"

// Equipment - карточка средства измерения или испытательного оборудования.
// Из активного реестра запись уходит только через архивацию.
type Equipment struct {
	ID              uint64      `db:"id" json:"id"`
	EquipmentName   string      `db:"equipment_name" json:"equipment_name"`
	EquipmentModel  string      `db:"equipment_model" json:"equipment_model"`
	EquipmentType   string      `db:"equipment_type" json:"equipment_type"`
	EquipmentSpecs  null.String `db:"equipment_specs" json:"equipment_specs"`
	FactoryNumber   string      `db:"factory_number" json:"factory_number"`
	InventoryNumber string      `db:"inventory_number" json:"inventory_number"`
	EquipmentYear   int         `db:"equipment_year" json:"equipment_year"`
}
