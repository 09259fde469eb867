package model

import "time"

// KanbanCard is a planning-board card strictly owned by one admin.
type KanbanCard struct {
	ID          uint64    // kanban_cards.id
	Name        string    // kanban_cards.name
	Description string    // kanban_cards.description
	Status      string    // kanban_cards.status (board column)
	UserID      uint64    // owning admin (kanban_cards.user_id)
	CreatedAt   time.Time // kanban_cards.created_at
	UpdatedAt   time.Time // kanban_cards.updated_at
}
