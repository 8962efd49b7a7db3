package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kutanig/explore-with-me/internal/service"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req service.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	catID, ok := parseIDParam(c, "catId")
	if !ok {
		return
	}

	var req service.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), catID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	catID, ok := parseIDParam(c, "catId")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), catID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	catID, ok := parseIDParam(c, "catId")
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), catID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	from, size, ok := parsePagination(c)
	if !ok {
		return
	}

	categories, err := h.categoryService.GetCategories(c.Request.Context(), from, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}
