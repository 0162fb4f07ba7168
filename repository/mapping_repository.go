package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"hardware-mapper/db"
	"hardware-mapper/models"
)

// MappingRepository stores mappings in Postgres
type MappingRepository struct{}

// NewMappingRepository creates a new MappingRepository
func NewMappingRepository() *MappingRepository {
	return &MappingRepository{}
}

// Ensure MappingRepository implements MappingRepositoryInterface
var _ MappingRepositoryInterface = (*MappingRepository)(nil)

const upsertMappingQuery = `
	INSERT INTO pin_mappings (id, board_id, part_id, role, pins, label)
	VALUES ($1, $2, $3, $4, $5::jsonb, $6)
	ON CONFLICT (id) DO UPDATE SET
		board_id = EXCLUDED.board_id,
		part_id = EXCLUDED.part_id,
		role = EXCLUDED.role,
		pins = EXCLUDED.pins,
		label = EXCLUDED.label,
		updated_at = now()
`

// List retrieves all mappings in insertion order
func (r *MappingRepository) List(ctx context.Context) ([]models.Mapping, error) {
	query := `
		SELECT id, board_id, part_id, role, pins, label
		FROM pin_mappings
		ORDER BY seq ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Error querying mappings: %v", err)
		return nil, fmt.Errorf("failed to query mappings: %w", err)
	}
	defer rows.Close()

	mappings := []models.Mapping{}
	for rows.Next() {
		var m models.Mapping
		var pinsJSON []byte
		if err := rows.Scan(&m.ID, &m.BoardID, &m.PartID, &m.Role, &pinsJSON, &m.Label); err != nil {
			return nil, fmt.Errorf("failed to scan mapping: %w", err)
		}
		if err := json.Unmarshal(pinsJSON, &m.Pins); err != nil {
			return nil, fmt.Errorf("failed to decode pins of mapping %s: %w", m.ID, err)
		}
		mappings = append(mappings, m)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ Error iterating mappings: %v", err)
		return nil, fmt.Errorf("failed to iterate mappings: %w", err)
	}

	log.Printf("✓ Fetched %d mappings", len(mappings))
	return mappings, nil
}

// Upsert inserts new mappings and replaces existing ones by id, in one transaction
func (r *MappingRepository) Upsert(ctx context.Context, mappings []models.Mapping) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsertAll(ctx, tx, mappings); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("💾 Upserted %d mappings", len(mappings))
	return nil
}

// ReplaceAll swaps the stored collection for mappings, in one transaction
func (r *MappingRepository) ReplaceAll(ctx context.Context, mappings []models.Mapping) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pin_mappings`); err != nil {
		return fmt.Errorf("failed to clear mappings: %w", err)
	}
	if err := upsertAll(ctx, tx, mappings); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("💾 Replaced mapping collection with %d mappings", len(mappings))
	return nil
}

// Delete removes one mapping by id
func (r *MappingRepository) Delete(ctx context.Context, id string) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM pin_mappings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete mapping: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrMappingNotFound, id)
	}

	log.Printf("🗑️  Deleted mapping %s", id)
	return nil
}

// DeleteAll removes every mapping
func (r *MappingRepository) DeleteAll(ctx context.Context) error {
	if _, err := db.DB.ExecContext(ctx, `DELETE FROM pin_mappings`); err != nil {
		return fmt.Errorf("failed to clear mappings: %w", err)
	}
	log.Printf("🗑️  Cleared all mappings")
	return nil
}

func upsertAll(ctx context.Context, tx *sql.Tx, mappings []models.Mapping) error {
	for _, m := range mappings {
		pinsJSON, err := json.Marshal(m.Pins)
		if err != nil {
			return fmt.Errorf("failed to encode pins of mapping %s: %w", m.ID, err)
		}
		if _, err := tx.ExecContext(ctx, upsertMappingQuery,
			m.ID, m.BoardID, m.PartID, m.Role, string(pinsJSON), m.Label,
		); err != nil {
			log.Printf("❌ Error upserting mapping %s: %v", m.ID, err)
			return fmt.Errorf("failed to upsert mapping %s: %w", m.ID, err)
		}
	}
	return nil
}
