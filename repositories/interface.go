package repositories

import "recipe-server/entities"

type UserRepository interface {
	Create(user *entities.User) error
	GetByID(id uint) (*entities.User, error)
	GetByEmail(email string) (*entities.User, error)
	GetAll() ([]entities.User, error)
	Update(user *entities.User) error
	Delete(id uint) error
}

type TokenRepository interface {
	Create(token *entities.ApiToken) error
	GetByKey(key string) (*entities.ApiToken, error)
}

// AttributeRepository is shared by tags and ingredients; every query is
// scoped to the owning user passed in explicitly.
type AttributeRepository[T any] interface {
	Create(item *T) error
	GetByUser(userID uint, assignedOnly bool) ([]T, error)
	GetByIDs(userID uint, ids []uint) ([]T, error)
}

// RecipeFilter narrows a listing to recipes linked to any of the given
// tag IDs and any of the given ingredient IDs.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

type RecipeRepository interface {
	Create(recipe *entities.Recipe) error
	GetByID(userID, id uint) (*entities.Recipe, error)
	GetByUser(userID uint, filter RecipeFilter) ([]entities.Recipe, error)
	Update(recipe *entities.Recipe) error
	ReplaceTags(recipe *entities.Recipe, tags []entities.Tag) error
	ReplaceIngredients(recipe *entities.Recipe, ingredients []entities.Ingredient) error
	Delete(userID, id uint) error
}
