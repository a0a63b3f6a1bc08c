package entities

type Responsibility struct {
	ID                uint64 `db:"id" json:"id"`
	EquipmentID       uint64 `db:"equipment_id" json:"equipment_id"`
	Department        string `db:"department" json:"department"`
	ResponsiblePerson string `db:"responsible_person" json:"responsible_person"`
	VerifierOrg       string `db:"verifier_org" json:"verifier_org"`
}
