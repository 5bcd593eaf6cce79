// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/catalogadmin/backend/internal/errs"
	"github.com/catalogadmin/backend/internal/i18n"
	"github.com/catalogadmin/backend/internal/middleware"
	"github.com/catalogadmin/backend/internal/services"
	"github.com/catalogadmin/backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// POST /api/products/addProduct
func (h *ProductHandler) AddProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	adminID, _ := utils.GetAdminIDFromContext(c)

	var req services.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.HandleError(c, errs.Wrap(errs.KindValidation, i18n.KeyValidationInvalid, err).WithArgs("input"))
		return
	}

	product, err := h.productService.Create(c.Request.Context(), adminID, &req, middleware.UploadedImages(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// GET /api/products/allProducts
func (h *ProductHandler) AllProducts(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	adminID, _ := utils.GetAdminIDFromContext(c)

	list, err := h.productService.List(c.Request.Context(), adminID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":       i18n.T(lang, i18n.KeyProductFetched),
		"totalProducts": list.TotalProducts,
		"products":      list.Products,
	})
}

// PUT /api/products/product/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	adminID, _ := utils.GetAdminIDFromContext(c)

	var req services.UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.HandleError(c, errs.Wrap(errs.KindValidation, i18n.KeyValidationInvalid, err).WithArgs("input"))
		return
	}

	product, err := h.productService.Update(c.Request.Context(), adminID, c.Param("id"), &req, middleware.UploadedImages(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// DELETE /api/products/deleteProduct/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	adminID, _ := utils.GetAdminIDFromContext(c)

	if err := h.productService.Delete(c.Request.Context(), adminID, c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}
