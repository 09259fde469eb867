package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jitsupply/order-api/internal/auth"
	"github.com/jitsupply/order-api/internal/repository"
)

// KanbanHandler implements the admin-scoped planning-board CRUD.
type KanbanHandler struct {
	Cards *repository.KanbanRepo
}

func NewKanbanHandler(k *repository.KanbanRepo) *KanbanHandler {
	return &KanbanHandler{Cards: k}
}

type kanbanReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// List returns the calling admin's cards.
func (h *KanbanHandler) List(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	cards, err := h.Cards.ListByOwner(ctx, id.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	return c.JSON(http.StatusOK, cards)
}

// Get returns one card if the caller owns it.
func (h *KanbanHandler) Get(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	cid, err := pathID(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	card, err := h.Cards.GetByID(ctx, cid)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if err := auth.GuardOwned(id, card.UserID); err != nil {
		return guardReply(c, err)
	}
	return c.JSON(http.StatusOK, card)
}

// Create adds a card owned by the calling admin.
func (h *KanbanHandler) Create(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req kanbanReq
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid card data"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	cid, err := h.Cards.Create(ctx, id.ID, repository.KanbanInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create card failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": cid})
}

// Update rewrites a card the caller owns.
func (h *KanbanHandler) Update(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	cid, err := pathID(c)
	if err != nil {
		return err
	}
	var req kanbanReq
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid card data"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	card, err := h.Cards.GetByID(ctx, cid)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if err := auth.GuardOwned(id, card.UserID); err != nil {
		return guardReply(c, err)
	}
	if err := h.Cards.Update(ctx, cid, repository.KanbanInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	}); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "update card failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a card the caller owns.
func (h *KanbanHandler) Delete(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	cid, err := pathID(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	card, err := h.Cards.GetByID(ctx, cid)
	if errors.Is(err, sql.ErrNoRows) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if err := auth.GuardOwned(id, card.UserID); err != nil {
		return guardReply(c, err)
	}
	if err := h.Cards.Delete(ctx, cid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "delete card failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
