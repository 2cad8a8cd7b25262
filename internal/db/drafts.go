package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-builder/internal/types"
)

const draftColumns = `id, owner_id, title, bundle, created_at, updated_at`

// CreateDraft stores a new draft and returns it
func (db *DB) CreateDraft(ctx context.Context, ownerID uuid.UUID, title string, bundle types.Bundle) (*Draft, error) {
	data, err := json.Marshal(bundle)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft bundle: %w", err)
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO drafts (owner_id, title, bundle)
		 VALUES ($1, $2, $3)
		 RETURNING `+draftColumns,
		ownerID, title, data,
	)
	d, err := scanDraft(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return d, nil
}

// GetDraft retrieves a draft by ID for its owner. It returns nil, nil when
// the draft does not exist or belongs to someone else.
func (db *DB) GetDraft(ctx context.Context, ownerID, id uuid.UUID) (*Draft, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+draftColumns+` FROM drafts WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	d, err := scanDraft(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return d, nil
}

// ListDrafts returns the owner's drafts, most recently updated first
func (db *DB) ListDrafts(ctx context.Context, ownerID uuid.UUID) ([]DraftSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, COALESCE(bundle->'resume_data'->>'full_name', ''), created_at, updated_at
		 FROM drafts WHERE owner_id = $1
		 ORDER BY updated_at DESC, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	drafts := []DraftSummary{}
	for rows.Next() {
		var s DraftSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.FullName, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		drafts = append(drafts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	return drafts, nil
}

// UpdateDraft replaces a draft's title and bundle. It returns nil, nil when
// the draft does not exist for this owner.
func (db *DB) UpdateDraft(ctx context.Context, ownerID, id uuid.UUID, title string, bundle types.Bundle) (*Draft, error) {
	data, err := json.Marshal(bundle)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft bundle: %w", err)
	}

	row := db.pool.QueryRow(ctx,
		`UPDATE drafts SET title = $3, bundle = $4, updated_at = NOW()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING `+draftColumns,
		id, ownerID, title, data,
	)
	d, err := scanDraft(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update draft: %w", err)
	}
	return d, nil
}

// DeleteDraft removes a draft and reports whether it existed
func (db *DB) DeleteDraft(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM drafts WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete draft: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanDraft(row pgx.Row) (*Draft, error) {
	var d Draft
	var data []byte
	if err := row.Scan(&d.ID, &d.OwnerID, &d.Title, &data, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &d.Bundle); err != nil {
		return nil, fmt.Errorf("failed to decode draft bundle: %w", err)
	}
	return &d, nil
}
