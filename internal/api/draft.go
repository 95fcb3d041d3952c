package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/editor"
	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/types"
)

type DraftHandler struct {
	drafts *service.DraftService
}

func NewDraftHandler(drafts *service.DraftService) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

// CreateDraft opens an edit session. The body is optional; without a
// recipe_id the draft starts from the new-recipe defaults.
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	var req types.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(middleware.BadRequest(err))
		return
	}
	draft, err := h.drafts.Open(c.Request.Context(), req.RecipeID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

func (h *DraftHandler) GetDraft(c *gin.Context) {
	draft, err := h.drafts.Get(c.Request.Context(), c.Param("id"))
	h.respond(c, draft, err)
}

func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	var req types.UpdateDraftRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.drafts.Update(c.Request.Context(), c.Param("id"), req)
	h.respond(c, draft, err)
}

func (h *DraftHandler) AddIngredient(c *gin.Context) {
	draft, err := h.drafts.AddIngredient(c.Request.Context(), c.Param("id"))
	h.respond(c, draft, err)
}

func (h *DraftHandler) RemoveIngredient(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	draft, err := h.drafts.RemoveIngredient(c.Request.Context(), c.Param("id"), index)
	h.respond(c, draft, err)
}

func (h *DraftHandler) AddStep(c *gin.Context) {
	draft, err := h.drafts.AddStep(c.Request.Context(), c.Param("id"))
	h.respond(c, draft, err)
}

func (h *DraftHandler) RemoveStep(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	draft, err := h.drafts.RemoveStep(c.Request.Context(), c.Param("id"), index)
	h.respond(c, draft, err)
}

// CommitDraft filters and persists the draft. A draft that fails validation
// is kept so it can be fixed and committed again.
func (h *DraftHandler) CommitDraft(c *gin.Context) {
	recipe, err := h.drafts.Commit(c.Request.Context(), c.Param("id"), owner(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	if err := h.drafts.Discard(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DraftHandler) respond(c *gin.Context, draft *editor.Draft, err error) {
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, draft)
}
