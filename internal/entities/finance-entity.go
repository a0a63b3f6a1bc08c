package entities

import "github.com/aarondl/null/v8"

// Finance - финансовые сведения по поверке оборудования.
// TotalCost хранится как задан вызывающей стороной и не пересчитывается
// из cost_rate * quantity * coefficient.
type Finance struct {
	ID            uint64       `db:"id" json:"id"`
	EquipmentID   uint64       `db:"equipment_id" json:"equipment_id"`
	BudgetItem    string       `db:"budget_item" json:"budget_item"`
	CodeRate      null.String  `db:"code_rate" json:"code_rate"`
	CostRate      null.Float64 `db:"cost_rate" json:"cost_rate"`
	Quantity      int          `db:"quantity" json:"quantity"`
	Coefficient   float64      `db:"coefficient" json:"coefficient"`
	TotalCost     null.Float64 `db:"total_cost" json:"total_cost"`
	InvoiceNumber null.String  `db:"invoice_number" json:"invoice_number"`
	PaidAmount    null.Float64 `db:"paid_amount" json:"paid_amount"`
	PaymentDate   null.Time    `db:"payment_date" json:"payment_date"`
}
