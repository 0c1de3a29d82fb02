package repositories

import (
	"recipe-server/db"
	"recipe-server/entities"
)

type recipePgRepository struct {
	db db.Database
}

func NewRecipePgRepository(database db.Database) RecipeRepository {
	return &recipePgRepository{db: database}
}

func (r *recipePgRepository) Create(recipe *entities.Recipe) error {
	// Omit keeps gorm from upserting the referenced tag/ingredient rows;
	// only the join rows are written.
	return r.db.GetDB().Omit("Tags.*", "Ingredients.*").Create(recipe).Error
}

func (r *recipePgRepository) GetByID(userID, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	err := r.db.GetDB().
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ? AND id = ?", userID, id).
		First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipePgRepository) GetByUser(userID uint, filter RecipeFilter) ([]entities.Recipe, error) {
	query := r.db.GetDB().
		Preload("Tags").
		Preload("Ingredients").
		Where("recipes.user_id = ?", userID)

	if len(filter.TagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs)
	}
	if len(filter.TagIDs) > 0 || len(filter.IngredientIDs) > 0 {
		query = query.Distinct("recipes.*")
	}

	var recipes []entities.Recipe
	err := query.Order("recipes.id DESC").Find(&recipes).Error
	return recipes, err
}

func (r *recipePgRepository) Update(recipe *entities.Recipe) error {
	return r.db.GetDB().Omit("Tags", "Ingredients").Save(recipe).Error
}

func (r *recipePgRepository) ReplaceTags(recipe *entities.Recipe, tags []entities.Tag) error {
	return r.db.GetDB().Model(recipe).Association("Tags").Replace(tags)
}

func (r *recipePgRepository) ReplaceIngredients(recipe *entities.Recipe, ingredients []entities.Ingredient) error {
	return r.db.GetDB().Model(recipe).Association("Ingredients").Replace(ingredients)
}

func (r *recipePgRepository) Delete(userID, id uint) error {
	recipe, err := r.GetByID(userID, id)
	if err != nil {
		return err
	}
	if err := r.db.GetDB().Model(recipe).Association("Tags").Clear(); err != nil {
		return err
	}
	if err := r.db.GetDB().Model(recipe).Association("Ingredients").Clear(); err != nil {
		return err
	}
	return r.db.GetDB().Delete(recipe).Error
}
