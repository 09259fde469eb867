package repository

import (
	"context"
	"database/sql"

	"github.com/jitsupply/order-api/internal/model"
)

// KanbanRepo persists planning-board cards.
type KanbanRepo struct{ DB *sql.DB }

func NewKanbanRepo(db *sql.DB) *KanbanRepo { return &KanbanRepo{DB: db} }

// KanbanInput is the payload for creating or updating a card.
type KanbanInput struct {
	Name        string
	Description string
	Status      string
}

// Create inserts a card owned by the given admin.
func (r *KanbanRepo) Create(ctx context.Context, ownerID uint64, in KanbanInput) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO kanban_cards (name, description, status, user_id) VALUES (?,?,?,?)`,
		in.Name, in.Description, in.Status, ownerID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByOwner returns all cards belonging to one admin.
func (r *KanbanRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.KanbanCard, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, description, status, user_id, created_at, updated_at
		 FROM kanban_cards WHERE user_id=? ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.KanbanCard
	for rows.Next() {
		var c model.KanbanCard
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Status,
			&c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID fetches a card regardless of owner; the caller runs the
// ownership guard. Returns sql.ErrNoRows when absent.
func (r *KanbanRepo) GetByID(ctx context.Context, id uint64) (model.KanbanCard, error) {
	var c model.KanbanCard
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, description, status, user_id, created_at, updated_at
		 FROM kanban_cards WHERE id=? LIMIT 1`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.Status, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return model.KanbanCard{}, err
	}
	return c, nil
}

// Update rewrites the card fields.
func (r *KanbanRepo) Update(ctx context.Context, id uint64, in KanbanInput) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE kanban_cards SET name=?, description=?, status=? WHERE id=?`,
		in.Name, in.Description, in.Status, id)
	return err
}

// Delete removes a card.
func (r *KanbanRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM kanban_cards WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
