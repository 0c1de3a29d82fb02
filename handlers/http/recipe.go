package httpHandler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"recipe-server/middleware"
	"recipe-server/repositories"
	"recipe-server/storage"
	"recipe-server/usecases"
)

type RecipeHandler struct {
	useCase  *usecases.RecipeUseCase
	mediaDir string
}

func NewRecipeHandler(useCase *usecases.RecipeUseCase, mediaDir string) *RecipeHandler {
	return &RecipeHandler{
		useCase:  useCase,
		mediaDir: mediaDir,
	}
}

type recipeRequest struct {
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	Tags        []uint  `json:"tags"`
	Ingredients []uint  `json:"ingredients"`
}

type recipePatchRequest struct {
	Title       *string  `json:"title"`
	TimeMinutes *int     `json:"time_minutes"`
	Price       *float64 `json:"price"`
	Link        *string  `json:"link"`
	Tags        *[]uint  `json:"tags"`
	Ingredients *[]uint  `json:"ingredients"`
}

// parseIDList splits a comma-separated query value into IDs. A malformed
// entry is the caller's error, not an empty filter.
func parseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func parseRecipeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Recipe not found",
		})
		return 0, false
	}
	return uint(id), true
}

// List handles GET /api/v1/recipes
func (h *RecipeHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	tagIDs, err := parseIDList(c.Query("tags"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid tags filter: IDs must be integers",
		})
		return
	}
	ingredientIDs, err := parseIDList(c.Query("ingredients"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ingredients filter: IDs must be integers",
		})
		return
	}

	recipes, err := h.useCase.List(user.ID, repositories.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve recipes",
		})
		return
	}

	data := make([]recipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		data = append(data, newRecipeResponse(recipe))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  data,
		"count": len(data),
	})
}

// Get handles GET /api/v1/recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	recipe, err := h.useCase.Get(user.ID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Recipe not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": newRecipeDetailResponse(*recipe),
	})
}

// Create handles POST /api/v1/recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	recipe, err := h.useCase.Create(user.ID, usecases.RecipeInput{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Recipe created successfully",
		"data":    newRecipeResponse(*recipe),
	})
}

// Update handles PUT /api/v1/recipes/:id
func (h *RecipeHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	recipe, err := h.useCase.Update(user.ID, id, usecases.RecipeInput{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe updated successfully",
		"data":    newRecipeResponse(*recipe),
	})
}

// Patch handles PATCH /api/v1/recipes/:id
func (h *RecipeHandler) Patch(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	var req recipePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	recipe, err := h.useCase.Patch(user.ID, id, usecases.RecipePatch{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe updated successfully",
		"data":    newRecipeResponse(*recipe),
	})
}

// Delete handles DELETE /api/v1/recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	if err := h.useCase.Delete(user.ID, id); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
	})
}

// UploadImage handles POST /api/v1/recipes/:id/upload-image
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	// Ownership gate first so a foreign recipe stays a 404, not a 400
	if _, err := h.useCase.Get(user.ID, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Recipe not found",
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": gin.H{"image": "no image provided"},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": gin.H{"image": "no image provided"},
		})
		return
	}
	defer file.Close()

	rel, err := storage.SaveRecipeImage(h.mediaDir, file)
	if err != nil {
		if errors.Is(err, storage.ErrNotImage) {
			c.JSON(http.StatusBadRequest, gin.H{
				"errors": gin.H{"image": "uploaded file is not a valid image"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store image",
		})
		return
	}

	recipe, old, err := h.useCase.SetImage(user.ID, id, rel)
	if err != nil {
		storage.RemoveImage(h.mediaDir, rel)
		h.writeError(c, err)
		return
	}
	storage.RemoveImage(h.mediaDir, old)

	c.JSON(http.StatusOK, gin.H{
		"message": "Image uploaded successfully",
		"data":    newRecipeDetailResponse(*recipe),
	})
}

func (h *RecipeHandler) writeError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Recipe not found",
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"error": err.Error(),
	})
}
