package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe-server/entities"
	"recipe-server/middleware"
	"recipe-server/usecases"
)

// AttributeHandler serves the list+create surface shared by tags and
// ingredients; the entity type and its presenter are parameters.
type AttributeHandler[T any] struct {
	useCase *usecases.AttributeUseCase[T]
	present func(T) attributeResponse
}

func NewTagHandler(useCase *usecases.AttributeUseCase[entities.Tag]) *AttributeHandler[entities.Tag] {
	return &AttributeHandler[entities.Tag]{
		useCase: useCase,
		present: newTagResponse,
	}
}

func NewIngredientHandler(useCase *usecases.AttributeUseCase[entities.Ingredient]) *AttributeHandler[entities.Ingredient] {
	return &AttributeHandler[entities.Ingredient]{
		useCase: useCase,
		present: newIngredientResponse,
	}
}

type attributeRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/v1/tags and GET /api/v1/ingredients
func (h *AttributeHandler[T]) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	assignedOnly := c.Query("assigned_only") == "1"

	items, err := h.useCase.List(user.ID, assignedOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve items",
		})
		return
	}

	data := make([]attributeResponse, 0, len(items))
	for _, item := range items {
		data = append(data, h.present(item))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  data,
		"count": len(data),
	})
}

// Create handles POST /api/v1/tags and POST /api/v1/ingredients
func (h *AttributeHandler[T]) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req attributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	item, err := h.useCase.Create(user.ID, req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": h.present(*item),
	})
}
