package mapping

import (
	"database/sql"

	"github.com/SscSPs/money_transfer_engine/internal/core/domain"
	"github.com/SscSPs/money_transfer_engine/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelTransferRecord converts a domain TransferRecord to its row shape.
func ToModelTransferRecord(d domain.TransferRecord) models.TransferRecord {
	m := models.TransferRecord{
		IdempotencyKey: d.IdempotencyKey,
		TransactionID:  sql.NullInt64{Int64: d.TransactionID, Valid: d.TransactionID != 0},
		FromAccountID:  sql.NullInt64{Int64: d.FromAccountID, Valid: true},
		ToAccountID:    sql.NullInt64{Int64: d.ToAccountID, Valid: true},
		Amount:         decimal.NullDecimal{Decimal: d.Amount, Valid: true},
		Status:         string(d.Status),
		CreatedOn:      d.CreatedOn,
	}
	if d.Status == domain.TransferFailed {
		m.FailureCode = sql.NullString{String: string(d.FailureCode), Valid: true}
		m.FailureReason = sql.NullString{String: d.FailureReason, Valid: true}
	}
	return m
}

// ToDomainTransferRecord converts a transfer_records row to a domain TransferRecord.
func ToDomainTransferRecord(m models.TransferRecord) domain.TransferRecord {
	d := domain.TransferRecord{
		TransactionID:  m.TransactionID.Int64,
		IdempotencyKey: m.IdempotencyKey,
		FromAccountID:  m.FromAccountID.Int64,
		ToAccountID:    m.ToAccountID.Int64,
		Status:         domain.TransferStatus(m.Status),
		FailureCode:    domain.FailureCode(m.FailureCode.String),
		FailureReason:  m.FailureReason.String,
		CreatedOn:      m.CreatedOn,
	}
	if m.Amount.Valid {
		d.Amount = m.Amount.Decimal
	}
	return d
}

// ToDomainTransferRecordSlice converts rows to domain records.
func ToDomainTransferRecordSlice(ms []models.TransferRecord) []domain.TransferRecord {
	ds := make([]domain.TransferRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransferRecord(m)
	}
	return ds
}
