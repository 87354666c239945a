package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/equify/equify-backend/internal/apierr"
	"github.com/equify/equify-backend/internal/logger"
	"github.com/equify/equify-backend/internal/services"
	"github.com/equify/equify-backend/internal/types"
)

type RelationshipHandler struct {
	log                 *logger.Logger
	relationshipService services.RelationshipService
}

func NewRelationshipHandler(log *logger.Logger, relationshipService services.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{
		log:                 log.With("handler", "RelationshipHandler"),
		relationshipService: relationshipService,
	}
}

type relationshipRequest struct {
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Importance  int            `json:"importance"`
	ContactInfo map[string]any `json:"contact_info"`
	Preferences map[string]any `json:"preferences"`
}

func (r relationshipRequest) toType() *types.Relationship {
	rel := &types.Relationship{
		Name:       r.Name,
		Category:   r.Category,
		Importance: r.Importance,
	}
	if r.ContactInfo != nil {
		if raw, err := json.Marshal(r.ContactInfo); err == nil {
			rel.ContactInfo = raw
		}
	}
	if r.Preferences != nil {
		if raw, err := json.Marshal(r.Preferences); err == nil {
			rel.Preferences = raw
		}
	}
	return rel
}

// POST /api/relationships
func (h *RelationshipHandler) Create(c *gin.Context) {
	var req relationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	created, err := h.relationshipService.Create(c.Request.Context(), currentUserID(c), req.toType())
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GET /api/relationships
func (h *RelationshipHandler) List(c *gin.Context) {
	relationships, err := h.relationshipService.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, relationships)
}

// GET /api/relationships/:id
func (h *RelationshipHandler) Get(c *gin.Context) {
	relationshipID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondAPIError(c, apierr.MissingParameter("relationshipId"))
		return
	}
	rel, err := h.relationshipService.Get(c.Request.Context(), currentUserID(c), relationshipID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, rel)
}

// PUT /api/relationships/:id
func (h *RelationshipHandler) Update(c *gin.Context) {
	relationshipID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondAPIError(c, apierr.MissingParameter("relationshipId"))
		return
	}
	var req relationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	rel := req.toType()
	rel.ID = relationshipID
	updated, err := h.relationshipService.Update(c.Request.Context(), currentUserID(c), rel)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, updated)
}

// DELETE /api/relationships/:id
func (h *RelationshipHandler) Delete(c *gin.Context) {
	relationshipID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondAPIError(c, apierr.MissingParameter("relationshipId"))
		return
	}
	if err := h.relationshipService.Delete(c.Request.Context(), currentUserID(c), relationshipID); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// GET /api/relationships/:id/balance
func (h *RelationshipHandler) Balance(c *gin.Context) {
	relationshipID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondAPIError(c, apierr.MissingParameter("relationshipId"))
		return
	}
	balance, err := h.relationshipService.Balance(c.Request.Context(), currentUserID(c), relationshipID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, balance)
}
