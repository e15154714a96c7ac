package handlers

import (
	"errors"
	"net/http"

	vendorRepo "oneq/database/repository/vendor"
	"oneq/models"
	"oneq/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VendorHandler exposes catalog management endpoints.
type VendorHandler struct {
	Repo     vendorRepo.VendorRepository
	Validate *validator.Validate
	Logger   *zap.Logger
}

func NewVendorHandler(repo vendorRepo.VendorRepository, logger *zap.Logger) *VendorHandler {
	return &VendorHandler{
		Repo:     repo,
		Validate: validator.New(),
		Logger:   logger,
	}
}

// RegisterVendorHandler creates a vendor record. An ID is assigned when the
// payload omits one.
func (h *VendorHandler) RegisterVendorHandler(c *gin.Context) {
	var vendor models.VendorRecord
	if err := c.ShouldBindJSON(&vendor); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if vendor.ID == "" {
		vendor.ID = uuid.New().String()
	}
	if err := h.Validate.Struct(vendor); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid vendor record", err.Error())
		return
	}

	if err := h.Repo.Create(&vendor); err != nil {
		h.Logger.Error("failed to create vendor", zap.String("vendorId", vendor.ID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create vendor", err.Error())
		return
	}
	c.JSON(http.StatusCreated, vendor)
}

// GetVendorHandler fetches a single vendor by id.
func (h *VendorHandler) GetVendorHandler(c *gin.Context) {
	id := c.Param("vendorID")
	vendor, err := h.Repo.GetByID(id)
	if err != nil {
		var notFound vendorRepo.ErrNotFound
		if errors.As(err, &notFound) {
			utils.JSONError(c, http.StatusNotFound, "vendor not found", err.Error())
			return
		}
		h.Logger.Error("failed to fetch vendor", zap.String("vendorId", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch vendor", err.Error())
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// ListVendorsHandler lists the catalog, optionally filtered by category.
func (h *VendorHandler) ListVendorsHandler(c *gin.Context) {
	var (
		vendors []models.VendorRecord
		err     error
	)
	if raw := c.Query("category"); raw != "" {
		category := models.Category(raw)
		if !category.IsValid() {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "unknown category: "+raw)
			return
		}
		vendors, err = h.Repo.GetByCategory(category)
	} else {
		vendors, err = h.Repo.GetAll()
	}
	if err != nil {
		h.Logger.Error("failed to list vendors", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list vendors", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendors": vendors, "count": len(vendors)})
}

// UpdateVendorHandler replaces a vendor record.
func (h *VendorHandler) UpdateVendorHandler(c *gin.Context) {
	id := c.Param("vendorID")
	var vendor models.VendorRecord
	if err := c.ShouldBindJSON(&vendor); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	vendor.ID = id
	if err := h.Validate.Struct(vendor); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid vendor record", err.Error())
		return
	}

	if err := h.Repo.Update(&vendor); err != nil {
		var notFound vendorRepo.ErrNotFound
		if errors.As(err, &notFound) {
			utils.JSONError(c, http.StatusNotFound, "vendor not found", err.Error())
			return
		}
		h.Logger.Error("failed to update vendor", zap.String("vendorId", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to update vendor", err.Error())
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// DeleteVendorHandler removes a vendor from the catalog.
func (h *VendorHandler) DeleteVendorHandler(c *gin.Context) {
	id := c.Param("vendorID")
	if err := h.Repo.Delete(id); err != nil {
		var notFound vendorRepo.ErrNotFound
		if errors.As(err, &notFound) {
			utils.JSONError(c, http.StatusNotFound, "vendor not found", err.Error())
			return
		}
		h.Logger.Error("failed to delete vendor", zap.String("vendorId", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete vendor", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendorId": id, "deleted": true})
}
