package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"poultryfarm/internal/domain/models"
	"poultryfarm/internal/service/registry"
)

// RegistryHandler adapts the entity CRUD service to HTTP.
type RegistryHandler struct {
	svc    *registry.Service
	logger *zap.Logger
}

// NewRegistryHandler constructs the HTTP handler adapter.
func NewRegistryHandler(svc *registry.Service, logger *zap.Logger) *RegistryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistryHandler{svc: svc, logger: logger}
}

// --- Farms ---

func (h *RegistryHandler) CreateFarm(c *gin.Context) {
	var in models.FarmInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badPayload(c, h.logger, err)
		return
	}
	farm, err := h.svc.CreateFarm(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, farm)
}

func (h *RegistryHandler) GetFarm(c *gin.Context) {
	farm, err := h.svc.GetFarm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, farm)
}

func (h *RegistryHandler) ListFarms(c *gin.Context) {
	farms, err := h.svc.ListFarms(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, farms)
}

func (h *RegistryHandler) UpdateFarm(c *gin.Context) {
	var patch models.FarmPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badPayload(c, h.logger, err)
		return
	}
	farm, err := h.svc.UpdateFarm(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, farm)
}

func (h *RegistryHandler) DeleteFarm(c *gin.Context) {
	if err := h.svc.DeleteFarm(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Birds ---

func (h *RegistryHandler) CreateBird(c *gin.Context) {
	var in models.BirdInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badPayload(c, h.logger, err)
		return
	}
	bird, err := h.svc.CreateBird(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, bird)
}

func (h *RegistryHandler) GetBird(c *gin.Context) {
	bird, err := h.svc.GetBird(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, bird)
}

func (h *RegistryHandler) ListBirds(c *gin.Context) {
	birds, err := h.svc.ListBirds(c.Request.Context(), c.Query("farmId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, birds)
}

func (h *RegistryHandler) UpdateBird(c *gin.Context) {
	var patch models.BirdPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badPayload(c, h.logger, err)
		return
	}
	bird, err := h.svc.UpdateBird(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, bird)
}

func (h *RegistryHandler) DeleteBird(c *gin.Context) {
	if err := h.svc.DeleteBird(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Inventory ---

func (h *RegistryHandler) CreateInventoryItem(c *gin.Context) {
	var in models.InventoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badPayload(c, h.logger, err)
		return
	}
	item, err := h.svc.CreateInventoryItem(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *RegistryHandler) GetInventoryItem(c *gin.Context) {
	item, err := h.svc.GetInventoryItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *RegistryHandler) ListInventory(c *gin.Context) {
	items, err := h.svc.ListInventory(c.Request.Context(), c.Query("farmId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *RegistryHandler) UpdateInventoryItem(c *gin.Context) {
	var patch models.InventoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badPayload(c, h.logger, err)
		return
	}
	item, err := h.svc.UpdateInventoryItem(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *RegistryHandler) DeleteInventoryItem(c *gin.Context) {
	if err := h.svc.DeleteInventoryItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Products ---

func (h *RegistryHandler) CreateProduct(c *gin.Context) {
	var in models.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badPayload(c, h.logger, err)
		return
	}
	product, err := h.svc.CreateProduct(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *RegistryHandler) GetProduct(c *gin.Context) {
	product, err := h.svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *RegistryHandler) ListProducts(c *gin.Context) {
	products, err := h.svc.ListProducts(c.Request.Context(), c.Query("farmId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *RegistryHandler) UpdateProduct(c *gin.Context) {
	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badPayload(c, h.logger, err)
		return
	}
	product, err := h.svc.UpdateProduct(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *RegistryHandler) DeleteProduct(c *gin.Context) {
	if err := h.svc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Transactions ---

func (h *RegistryHandler) CreateTransaction(c *gin.Context) {
	var in models.TransactionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badPayload(c, h.logger, err)
		return
	}
	tx, err := h.svc.CreateTransaction(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (h *RegistryHandler) GetTransaction(c *gin.Context) {
	tx, err := h.svc.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *RegistryHandler) ListTransactions(c *gin.Context) {
	txs, err := h.svc.ListTransactions(c.Request.Context(), c.Query("farmId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (h *RegistryHandler) UpdateTransaction(c *gin.Context) {
	var patch models.TransactionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badPayload(c, h.logger, err)
		return
	}
	tx, err := h.svc.UpdateTransaction(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *RegistryHandler) DeleteTransaction(c *gin.Context) {
	if err := h.svc.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Health records ---

func (h *RegistryHandler) CreateHealthRecord(c *gin.Context) {
	var in models.HealthRecordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badPayload(c, h.logger, err)
		return
	}
	record, err := h.svc.CreateHealthRecord(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *RegistryHandler) GetHealthRecord(c *gin.Context) {
	record, err := h.svc.GetHealthRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *RegistryHandler) ListHealthRecords(c *gin.Context) {
	records, err := h.svc.ListHealthRecords(c.Request.Context(), c.Query("farmId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *RegistryHandler) UpdateHealthRecord(c *gin.Context) {
	var patch models.HealthRecordPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badPayload(c, h.logger, err)
		return
	}
	record, err := h.svc.UpdateHealthRecord(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *RegistryHandler) DeleteHealthRecord(c *gin.Context) {
	if err := h.svc.DeleteHealthRecord(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
