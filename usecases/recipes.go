package usecases

import (
	"errors"
	"strings"

	"recipe-server/entities"
	"recipe-server/repositories"
)

// RecipeInput carries a full write payload; tag/ingredient references are
// flat ID lists the way the API accepts them.
type RecipeInput struct {
	Title         string
	TimeMinutes   int
	Price         float64
	Link          string
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipePatch carries a partial update; nil fields are left untouched.
type RecipePatch struct {
	Title         *string
	TimeMinutes   *int
	Price         *float64
	Link          *string
	TagIDs        *[]uint
	IngredientIDs *[]uint
}

type RecipeUseCase struct {
	RecipeRepo     repositories.RecipeRepository
	TagRepo        repositories.AttributeRepository[entities.Tag]
	IngredientRepo repositories.AttributeRepository[entities.Ingredient]
}

func NewRecipeUseCase(recipeRepo repositories.RecipeRepository, tagRepo repositories.AttributeRepository[entities.Tag], ingredientRepo repositories.AttributeRepository[entities.Ingredient]) *RecipeUseCase {
	return &RecipeUseCase{
		RecipeRepo:     recipeRepo,
		TagRepo:        tagRepo,
		IngredientRepo: ingredientRepo,
	}
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// resolveTags loads the referenced tags; every ID must belong to the
// caller, otherwise the write fails validation.
func (uc *RecipeUseCase) resolveTags(userID uint, ids []uint) ([]entities.Tag, error) {
	ids = dedupeIDs(ids)
	tags, err := uc.TagRepo.GetByIDs(userID, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, errors.New("invalid tag id")
	}
	return tags, nil
}

func (uc *RecipeUseCase) resolveIngredients(userID uint, ids []uint) ([]entities.Ingredient, error) {
	ids = dedupeIDs(ids)
	ingredients, err := uc.IngredientRepo.GetByIDs(userID, ids)
	if err != nil {
		return nil, err
	}
	if len(ingredients) != len(ids) {
		return nil, errors.New("invalid ingredient id")
	}
	return ingredients, nil
}

// List returns the caller's recipes, newest first, narrowed by the filter.
func (uc *RecipeUseCase) List(userID uint, filter repositories.RecipeFilter) ([]entities.Recipe, error) {
	return uc.RecipeRepo.GetByUser(userID, filter)
}

// Get returns one owned recipe with tags and ingredients loaded.
func (uc *RecipeUseCase) Get(userID, id uint) (*entities.Recipe, error) {
	return uc.RecipeRepo.GetByID(userID, id)
}

// Create persists a recipe owned by the caller.
func (uc *RecipeUseCase) Create(userID uint, in RecipeInput) (*entities.Recipe, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errors.New("recipe title is required")
	}

	tags, err := uc.resolveTags(userID, in.TagIDs)
	if err != nil {
		return nil, err
	}
	ingredients, err := uc.resolveIngredients(userID, in.IngredientIDs)
	if err != nil {
		return nil, err
	}

	recipe := &entities.Recipe{
		Title:       in.Title,
		TimeMinutes: in.TimeMinutes,
		Price:       in.Price,
		Link:        in.Link,
		UserID:      userID,
		Tags:        tags,
		Ingredients: ingredients,
	}
	if err := uc.RecipeRepo.Create(recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Update replaces every scalar field and both relation sets.
func (uc *RecipeUseCase) Update(userID, id uint, in RecipeInput) (*entities.Recipe, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errors.New("recipe title is required")
	}

	recipe, err := uc.RecipeRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	tags, err := uc.resolveTags(userID, in.TagIDs)
	if err != nil {
		return nil, err
	}
	ingredients, err := uc.resolveIngredients(userID, in.IngredientIDs)
	if err != nil {
		return nil, err
	}

	recipe.Title = in.Title
	recipe.TimeMinutes = in.TimeMinutes
	recipe.Price = in.Price
	recipe.Link = in.Link
	if err := uc.RecipeRepo.Update(recipe); err != nil {
		return nil, err
	}
	if err := uc.RecipeRepo.ReplaceTags(recipe, tags); err != nil {
		return nil, err
	}
	if err := uc.RecipeRepo.ReplaceIngredients(recipe, ingredients); err != nil {
		return nil, err
	}

	recipe.Tags = tags
	recipe.Ingredients = ingredients
	return recipe, nil
}

// Patch updates only the provided fields; relation lists replace when present.
func (uc *RecipeUseCase) Patch(userID, id uint, p RecipePatch) (*entities.Recipe, error) {
	recipe, err := uc.RecipeRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return nil, errors.New("recipe title is required")
		}
		recipe.Title = *p.Title
	}
	if p.TimeMinutes != nil {
		recipe.TimeMinutes = *p.TimeMinutes
	}
	if p.Price != nil {
		recipe.Price = *p.Price
	}
	if p.Link != nil {
		recipe.Link = *p.Link
	}

	// Resolve references before writing anything so a bad ID leaves the
	// recipe untouched.
	var tags []entities.Tag
	if p.TagIDs != nil {
		if tags, err = uc.resolveTags(userID, *p.TagIDs); err != nil {
			return nil, err
		}
	}
	var ingredients []entities.Ingredient
	if p.IngredientIDs != nil {
		if ingredients, err = uc.resolveIngredients(userID, *p.IngredientIDs); err != nil {
			return nil, err
		}
	}

	if err := uc.RecipeRepo.Update(recipe); err != nil {
		return nil, err
	}
	if p.TagIDs != nil {
		if err := uc.RecipeRepo.ReplaceTags(recipe, tags); err != nil {
			return nil, err
		}
		recipe.Tags = tags
	}
	if p.IngredientIDs != nil {
		if err := uc.RecipeRepo.ReplaceIngredients(recipe, ingredients); err != nil {
			return nil, err
		}
		recipe.Ingredients = ingredients
	}

	return recipe, nil
}

// Delete removes an owned recipe and its join rows.
func (uc *RecipeUseCase) Delete(userID, id uint) error {
	return uc.RecipeRepo.Delete(userID, id)
}

// SetImage records the stored image path and returns the previous one so
// the caller can remove the stale file.
func (uc *RecipeUseCase) SetImage(userID, id uint, path string) (*entities.Recipe, string, error) {
	recipe, err := uc.RecipeRepo.GetByID(userID, id)
	if err != nil {
		return nil, "", err
	}
	old := recipe.Image
	recipe.Image = path
	if err := uc.RecipeRepo.Update(recipe); err != nil {
		return nil, "", err
	}
	return recipe, old, nil
}
