package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dcastano/contable_app/internal/apperrors"
	"github.com/dcastano/contable_app/internal/core/domain"
	portsrepo "github.com/dcastano/contable_app/internal/core/ports/repositories"
	"github.com/dcastano/contable_app/internal/models"
	"github.com/dcastano/contable_app/internal/utils/mapping"
	"github.com/dcastano/contable_app/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepository
}

// newPgxJournalRepository creates a new repository for journal data. It
// depends on the account repository for balance updates inside the posting
// transaction.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepository) portsrepo.JournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

// SaveJournal atomically persists an entry with its lines and applies the
// per-account balance deltas.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op after a successful commit

	if err := r.insertJournalInTx(ctx, tx, entry, lines, balanceChanges); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// insertJournalInTx writes the entry, its lines, and the balance deltas within
// the given transaction.
func (r *PgxJournalRepository) insertJournalInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error {
	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (journal_id, entry_date, description, status, amount, original_journal_id, reversal_journal_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, entryQuery,
		m.JournalID,
		m.EntryDate,
		m.Description,
		m.Status,
		m.Amount,
		m.OriginalJournalID,
		m.ReversalJournalID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal %s: %w", m.JournalID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, journal_id, account_id, debit, credit, contact_id, cost_center_id, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, line := range lines {
		ml := mapping.ToModelJournalLine(line)
		var contactID, costCenterID sql.NullString
		if ml.ContactID != "" {
			contactID = sql.NullString{String: ml.ContactID, Valid: true}
		}
		if ml.CostCenterID != "" {
			costCenterID = sql.NullString{String: ml.CostCenterID, Valid: true}
		}
		batch.Queue(lineQuery,
			ml.LineID,
			ml.JournalID,
			ml.AccountID,
			ml.Debit,
			ml.Credit,
			contactID,
			costCenterID,
			ml.Description,
			ml.CreatedAt,
			ml.CreatedBy,
			ml.LastUpdatedAt,
			ml.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert lines for journal %s: %w", m.JournalID, err)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, entry.CreatedBy, entry.CreatedAt); err != nil {
		return fmt.Errorf("failed to apply balance changes for journal %s: %w", m.JournalID, err)
	}
	return nil
}

// FindJournalByID retrieves a journal entry without its lines.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	query := `
		SELECT journal_id, entry_date, description, status, amount, original_journal_id, reversal_journal_id, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE journal_id = $1;
	`
	m, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var originalID, reversalID sql.NullString
	err := row.Scan(
		&m.JournalID,
		&m.EntryDate,
		&m.Description,
		&m.Status,
		&m.Amount,
		&originalID,
		&reversalID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.JournalEntry{}, err
	}
	if originalID.Valid {
		m.OriginalJournalID = &originalID.String
	}
	if reversalID.Valid {
		m.ReversalJournalID = &reversalID.String
	}
	return m, nil
}

// FindLinesByJournalID retrieves the lines of one journal entry in insertion
// order.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, journal_id, account_id, debit, credit, contact_id, cost_center_id, description, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	modelLines := []models.JournalLine{}
	for rows.Next() {
		var m models.JournalLine
		var contactID, costCenterID sql.NullString
		err := rows.Scan(
			&m.LineID,
			&m.JournalID,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&contactID,
			&costCenterID,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row for journal %s: %w", journalID, err)
		}
		if contactID.Valid {
			m.ContactID = contactID.String
		}
		if costCenterID.Valid {
			m.CostCenterID = costCenterID.String
		}
		modelLines = append(modelLines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for journal %s: %w", journalID, err)
	}
	return mapping.ToDomainJournalLines(modelLines), nil
}

// ListJournals retrieves a page of journal entries, newest first, using an
// opaque keyset token.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT journal_id, entry_date, description, status, amount, original_journal_id, reversal_journal_id, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
	`
	// entry_date DESC with created_at DESC as a stable tie-breaker.
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []any{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastDate, lastCreatedAt)
		query := baseQuery + ` WHERE (entry_date, created_at) < ($1, $2) ` + orderByClause + ` LIMIT $` + strconv.Itoa(len(args)+1) + `;`
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + ` ` + orderByClause + ` LIMIT $1;`
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanJournalEntry(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan journal row: %w", scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal rows: %w", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

// SaveReversal flips the original entry to REVERSED and posts the reversal
// entry, lines, and balance deltas in one transaction. The WHERE clause
// guards against double reversal under concurrency.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal, originalJournalID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op after a successful commit

	query := `
		UPDATE journal_entries
		SET status = $2, reversal_journal_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE journal_id = $1 AND status = $6 AND reversal_journal_id IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, originalJournalID, models.Reversed, reversal.JournalID, reversal.CreatedAt, reversal.CreatedBy, models.Posted)
	if err != nil {
		return fmt.Errorf("failed to mark journal %s reversed: %w", originalJournalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindJournalByID(ctx, originalJournalID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: journal %s is not reversible", apperrors.ErrConflict, originalJournalID)
	}

	if err := r.insertJournalInTx(ctx, tx, reversal, lines, balanceChanges); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
