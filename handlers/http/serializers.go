package httpHandler

import "recipe-server/entities"

// Wire representations. Writes accept flat ID lists; the recipe detail
// view nests tag/ingredient objects instead.

type attributeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type recipeResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	Image       string  `json:"image"`
	Tags        []uint  `json:"tags"`
	Ingredients []uint  `json:"ingredients"`
}

type recipeDetailResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       float64             `json:"price"`
	Link        string              `json:"link"`
	Image       string              `json:"image"`
	Tags        []attributeResponse `json:"tags"`
	Ingredients []attributeResponse `json:"ingredients"`
}

func newTagResponse(t entities.Tag) attributeResponse {
	return attributeResponse{ID: t.ID, Name: t.Name}
}

func newIngredientResponse(i entities.Ingredient) attributeResponse {
	return attributeResponse{ID: i.ID, Name: i.Name}
}

func newRecipeResponse(r entities.Recipe) recipeResponse {
	tags := make([]uint, 0, len(r.Tags))
	for _, t := range r.Tags {
		tags = append(tags, t.ID)
	}
	ingredients := make([]uint, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		ingredients = append(ingredients, i.ID)
	}
	return recipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Image:       r.Image,
		Tags:        tags,
		Ingredients: ingredients,
	}
}

func newRecipeDetailResponse(r entities.Recipe) recipeDetailResponse {
	tags := make([]attributeResponse, 0, len(r.Tags))
	for _, t := range r.Tags {
		tags = append(tags, newTagResponse(t))
	}
	ingredients := make([]attributeResponse, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		ingredients = append(ingredients, newIngredientResponse(i))
	}
	return recipeDetailResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Image:       r.Image,
		Tags:        tags,
		Ingredients: ingredients,
	}
}
