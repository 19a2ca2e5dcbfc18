package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/assetdesk/service-booking/internal/application"
	"github.com/assetdesk/service-booking/pkg/auth"
	"github.com/assetdesk/service-booking/pkg/middleware"
	"github.com/assetdesk/service-booking/pkg/response"
)

// EmployeeHandler handles HTTP requests for the employee registry.
type EmployeeHandler struct {
	service *application.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(service *application.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// RegisterRoutes registers all employee routes on the given router group.
func (h *EmployeeHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	employees := r.Group("/api/v1/employees")
	employees.Use(authMW)
	{
		employees.POST("", adminRole, h.CreateEmployee)
		employees.GET("/:id", h.GetEmployee)
		employees.POST("/:id/deactivate", adminRole, h.DeactivateEmployee)
	}
}

// CreateEmployee handles POST /api/v1/employees.
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req application.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetEmployee handles GET /api/v1/employees/:id.
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid employee ID")
		return
	}

	result, err := h.service.GetEmployee(c.Request.Context(), employeeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeactivateEmployee handles POST /api/v1/employees/:id/deactivate.
func (h *EmployeeHandler) DeactivateEmployee(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid employee ID")
		return
	}

	result, err := h.service.DeactivateEmployee(c.Request.Context(), employeeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
