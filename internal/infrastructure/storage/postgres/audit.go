package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/klauspost/compress/zstd"

	"ricemill/internal/core/id"
	"ricemill/internal/domain/audit"
)

// CompressionAlgo specifies how the changes payload is stored.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// DefaultAuditLimit and MaxAuditLimit bound History.
const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 500
)

// auditRow is one row of sys_audit.
type auditRow struct {
	ID                id.ID           `db:"id"`
	MillID            id.ID           `db:"mill_id"`
	EntityType        string          `db:"entity_type"`
	EntityID          id.ID           `db:"entity_id"`
	Action            audit.Action    `db:"action"`
	UserID            string          `db:"user_id"`
	Changes           json.RawMessage `db:"changes"`
	ChangesCompressed []byte          `db:"changes_compressed"`
	CompressionAlgo   CompressionAlgo `db:"compression_algo"`
	CreatedAt         time.Time       `db:"created_at"`
}

// AuditService writes entry changes to sys_audit.
// Payloads above the threshold are zstd-compressed.
type AuditService struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

// NewAuditService creates a new audit service.
func NewAuditService(txManager *TxManager) (*AuditService, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditService{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// compress moves large payloads into the compressed column.
func (s *AuditService) compress(row *auditRow) {
	row.CompressionAlgo = CompressionNone
	if len(row.Changes) > s.compressThreshold {
		row.ChangesCompressed = s.encoder.EncodeAll(row.Changes, nil)
		row.Changes = nil
		row.CompressionAlgo = CompressionZstd
	}
}

func (s *AuditService) decompress(row *auditRow) error {
	if row.CompressionAlgo != CompressionZstd || len(row.ChangesCompressed) == 0 {
		return nil
	}
	decompressed, err := s.decoder.DecodeAll(row.ChangesCompressed, nil)
	if err != nil {
		return fmt.Errorf("decompress changes: %w", err)
	}
	row.Changes = decompressed
	row.ChangesCompressed = nil
	return nil
}

// Log records an audit entry in the caller's transaction.
func (s *AuditService) Log(ctx context.Context, rec audit.Record) error {
	row := auditRow{
		ID:         rec.ID,
		MillID:     rec.MillID,
		EntityType: rec.EntityType,
		EntityID:   rec.EntityID,
		Action:     rec.Action,
		UserID:     rec.UserID,
		Changes:    rec.Changes,
		CreatedAt:  rec.CreatedAt,
	}
	if id.IsNil(row.ID) {
		row.ID = id.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	s.compress(&row)

	_, err := s.txManager.GetQuerier(ctx).Exec(ctx, `
		INSERT INTO sys_audit (
			id, mill_id, entity_type, entity_id, action, user_id,
			changes, changes_compressed, compression_algo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, row.ID, row.MillID, row.EntityType, row.EntityID, row.Action, row.UserID,
		row.Changes, row.ChangesCompressed, row.CompressionAlgo, row.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit: %w", err)
	}
	return nil
}

func historyQuery(filter audit.Filter) squirrel.SelectBuilder {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	if limit > MaxAuditLimit {
		limit = MaxAuditLimit
	}

	q := Builder().
		Select("id", "mill_id", "entity_type", "entity_id", "action", "user_id",
			"changes", "changes_compressed", "compression_algo", "created_at").
		From("sys_audit").
		Where(squirrel.Eq{"mill_id": filter.MillID})
	if filter.EntityType != "" {
		q = q.Where(squirrel.Eq{"entity_type": filter.EntityType})
	}
	if filter.EntityID != nil {
		q = q.Where(squirrel.Eq{"entity_id": *filter.EntityID})
	}
	return q.OrderBy("created_at DESC", "id DESC").Limit(uint64(limit))
}

// History returns the mill's change log, newest first.
func (s *AuditService) History(ctx context.Context, filter audit.Filter) ([]audit.Record, error) {
	sql, args, err := historyQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build history query: %w", err)
	}

	var rows []auditRow
	if err := pgxscan.Select(ctx, s.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	records := make([]audit.Record, 0, len(rows))
	for i := range rows {
		if err := s.decompress(&rows[i]); err != nil {
			return nil, err
		}
		r := rows[i]
		records = append(records, audit.Record{
			ID:         r.ID,
			MillID:     r.MillID,
			EntityType: r.EntityType,
			EntityID:   r.EntityID,
			Action:     r.Action,
			UserID:     r.UserID,
			Changes:    r.Changes,
			CreatedAt:  r.CreatedAt,
		})
	}
	return records, nil
}

var _ audit.Logger = (*AuditService)(nil)
