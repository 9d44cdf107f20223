package server

import (
	"net/http"

	supplierdomain "github.com/fakturio/fakturio/internal/supplier/domain"
	"github.com/gin-gonic/gin"
)

type supplierResponse struct {
	supplierdomain.Supplier
	RegistrationText *string `json:"registration_text,omitempty"`
}

func (s *Server) GetSupplier(c *gin.Context) {
	profile, err := s.supplierSvc.GetByActor(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": supplierResponse{
		Supplier:         profile,
		RegistrationText: profile.RegistrationText(),
	}})
}

func (s *Server) UpsertSupplier(c *gin.Context) {
	var req supplierdomain.UpsertSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("request", "invalid_request", "invalid request body"))
		return
	}

	profile, err := s.supplierSvc.Upsert(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": supplierResponse{
		Supplier:         profile,
		RegistrationText: profile.RegistrationText(),
	}})
}
