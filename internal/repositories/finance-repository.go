package repositories

import (
	"context"

	"deltica/internal/entities"
	apperrors "deltica/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const financeTable = "finance"

type FinanceRepositoryInterface interface {
	FindByEquipmentID(ctx context.Context, equipmentID uint64) (*entities.Finance, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, finance *entities.Finance) (uint64, error)
	UpdateByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64, finance *entities.Finance) error
	DeleteByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) error
}

type FinanceRepository struct {
	storage *pgxpool.Pool
}

func NewFinanceRepository(storage *pgxpool.Pool) FinanceRepositoryInterface {
	return &FinanceRepository{
		storage: storage,
	}
}

func (r *FinanceRepository) FindByEquipmentID(ctx context.Context, equipmentID uint64) (*entities.Finance, error) {
	query := `
		SELECT id, equipment_id, budget_item, code_rate, cost_rate, quantity, coefficient,
		       total_cost, invoice_number, paid_amount, payment_date
		FROM ` + financeTable + `
		WHERE equipment_id = $1`

	var f entities.Finance
	err := r.storage.QueryRow(ctx, query, equipmentID).Scan(
		&f.ID,
		&f.EquipmentID,
		&f.BudgetItem,
		&f.CodeRate,
		&f.CostRate,
		&f.Quantity,
		&f.Coefficient,
		&f.TotalCost,
		&f.InvoiceNumber,
		&f.PaidAmount,
		&f.PaymentDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *FinanceRepository) CreateInTx(ctx context.Context, tx pgx.Tx, finance *entities.Finance) (uint64, error) {
	query := `
		INSERT INTO ` + financeTable + `
		(equipment_id, budget_item, code_rate, cost_rate, quantity, coefficient,
		 total_cost, invoice_number, paid_amount, payment_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	var financeID uint64
	err := tx.QueryRow(ctx, query,
		finance.EquipmentID,
		finance.BudgetItem,
		finance.CodeRate,
		finance.CostRate,
		finance.Quantity,
		finance.Coefficient,
		finance.TotalCost,
		finance.InvoiceNumber,
		finance.PaidAmount,
		finance.PaymentDate,
	).Scan(&financeID)
	return financeID, err
}

func (r *FinanceRepository) UpdateByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64, finance *entities.Finance) error {
	query := `
		UPDATE ` + financeTable + `
		SET budget_item = $1, code_rate = $2, cost_rate = $3, quantity = $4, coefficient = $5,
		    total_cost = $6, invoice_number = $7, paid_amount = $8, payment_date = $9
		WHERE equipment_id = $10`

	_, err := tx.Exec(ctx, query,
		finance.BudgetItem,
		finance.CodeRate,
		finance.CostRate,
		finance.Quantity,
		finance.Coefficient,
		finance.TotalCost,
		finance.InvoiceNumber,
		finance.PaidAmount,
		finance.PaymentDate,
		equipmentID,
	)
	return err
}

func (r *FinanceRepository) DeleteByEquipmentIDInTx(ctx context.Context, tx pgx.Tx, equipmentID uint64) error {
	_, err := tx.Exec(ctx, "DELETE FROM "+financeTable+" WHERE equipment_id = $1", equipmentID)
	return err
}
