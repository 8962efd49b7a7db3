package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kutanig/explore-with-me/internal/service"
)

type CompilationHandler struct {
	compilationService service.CompilationService
}

func NewCompilationHandler(compilationService service.CompilationService) *CompilationHandler {
	return &CompilationHandler{compilationService: compilationService}
}

func (h *CompilationHandler) CreateCompilation(c *gin.Context) {
	var req service.NewCompilationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	compilation, err := h.compilationService.CreateCompilation(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, compilation)
}

func (h *CompilationHandler) UpdateCompilation(c *gin.Context) {
	compID, ok := parseIDParam(c, "compId")
	if !ok {
		return
	}

	var req service.UpdateCompilationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	compilation, err := h.compilationService.UpdateCompilation(c.Request.Context(), compID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, compilation)
}

func (h *CompilationHandler) DeleteCompilation(c *gin.Context) {
	compID, ok := parseIDParam(c, "compId")
	if !ok {
		return
	}

	if err := h.compilationService.DeleteCompilation(c.Request.Context(), compID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CompilationHandler) GetCompilation(c *gin.Context) {
	compID, ok := parseIDParam(c, "compId")
	if !ok {
		return
	}

	compilation, err := h.compilationService.GetCompilation(c.Request.Context(), compID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, compilation)
}

func (h *CompilationHandler) GetCompilations(c *gin.Context) {
	from, size, ok := parsePagination(c)
	if !ok {
		return
	}
	pinned, ok := parseBoolQuery(c, "pinned")
	if !ok {
		return
	}

	compilations, err := h.compilationService.GetCompilations(c.Request.Context(), pinned, from, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, compilations)
}
