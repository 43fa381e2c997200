package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/robinclaw/robinclaw/internal/entity"
)

type TradeRecordRepository struct {
	db *sqlx.DB
}

func NewTradeRecordRepository(db *sqlx.DB) *TradeRecordRepository {
	return &TradeRecordRepository{db: db}
}

func (r *TradeRecordRepository) Create(ctx context.Context, record *entity.TradeRecord) error {
	queryBuilder := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Insert(record.TableName()).
		Columns(
			"request_id",
			"account",
			"symbol",
			"side",
			"type",
			"size",
			"price",
			"filled_size",
			"avg_fill_price",
			"order_id",
			"status",
			"placed_at",
			"created_at",
		).
		Values(
			record.RequestID,
			record.Account,
			record.Symbol,
			record.Side,
			record.Type,
			record.Size,
			record.Price,
			record.FilledSize,
			record.AvgFillPrice,
			record.OrderID,
			record.Status,
			record.PlacedAt,
			record.CreatedAt,
		).
		Suffix("RETURNING id")

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	var id string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if err != nil {
		return err
	}

	record.ID = id

	return nil
}

func (r *TradeRecordRepository) GetByRequestID(ctx context.Context, requestID string) (*entity.TradeRecord, error) {
	var record entity.TradeRecord
	err := r.db.GetContext(ctx, &record, "SELECT * FROM trade_records WHERE request_id = $1", requestID)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *TradeRecordRepository) ListBySymbol(ctx context.Context, symbol string, limit uint64) ([]entity.TradeRecord, error) {
	queryBuilder := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Select("*").
		From("trade_records").
		OrderBy("placed_at desc")

	if symbol != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"symbol": symbol})
	}
	if limit > 0 {
		queryBuilder = queryBuilder.Limit(limit)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	var records []entity.TradeRecord
	err = r.db.SelectContext(ctx, &records, query, args...)
	if err != nil {
		return nil, err
	}

	return records, nil
}
