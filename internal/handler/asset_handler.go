package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/assetdesk/service-booking/internal/application"
	"github.com/assetdesk/service-booking/pkg/auth"
	"github.com/assetdesk/service-booking/pkg/middleware"
	"github.com/assetdesk/service-booking/pkg/response"
)

// AssetHandler handles HTTP requests for the asset registry.
type AssetHandler struct {
	service *application.AssetService
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(service *application.AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

// RegisterRoutes registers all asset routes on the given router group.
func (h *AssetHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	assets := r.Group("/api/v1/assets")
	assets.Use(authMW)
	{
		assets.GET("/pool", h.ListPoolAssets)
		assets.GET("/:id", h.GetAsset)
		assets.POST("", adminRole, h.CreateAsset)
		assets.POST("/:id/retire", adminRole, h.RetireAsset)
	}
}

// CreateAsset handles POST /api/v1/assets.
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req application.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateAsset(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetAsset handles GET /api/v1/assets/:id.
func (h *AssetHandler) GetAsset(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid asset ID")
		return
	}

	result, err := h.service.GetAsset(c.Request.Context(), assetID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListPoolAssets handles GET /api/v1/assets/pool.
func (h *AssetHandler) ListPoolAssets(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.service.ListPoolAssets(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// RetireAsset handles POST /api/v1/assets/:id/retire.
func (h *AssetHandler) RetireAsset(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid asset ID")
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)

	result, err := h.service.RetireAsset(c.Request.Context(), assetID, body.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
