package usecases

import (
	"fmt"
	"strings"

	"recipe-server/entities"
	"recipe-server/repositories"
)

// AttributeUseCase covers the list+create contract shared by tags and
// ingredients. The entity type is a parameter, not a subclass: the two
// constructors below are the only places that differ.
type AttributeUseCase[T any] struct {
	Repo  repositories.AttributeRepository[T]
	kind  string
	build func(userID uint, name string) T
}

func NewTagUseCase(repo repositories.AttributeRepository[entities.Tag]) *AttributeUseCase[entities.Tag] {
	return &AttributeUseCase[entities.Tag]{
		Repo: repo,
		kind: "tag",
		build: func(userID uint, name string) entities.Tag {
			return entities.Tag{Name: name, UserID: userID}
		},
	}
}

func NewIngredientUseCase(repo repositories.AttributeRepository[entities.Ingredient]) *AttributeUseCase[entities.Ingredient] {
	return &AttributeUseCase[entities.Ingredient]{
		Repo: repo,
		kind: "ingredient",
		build: func(userID uint, name string) entities.Ingredient {
			return entities.Ingredient{Name: name, UserID: userID}
		},
	}
}

// List returns the caller's rows, name descending. With assignedOnly the
// result is restricted to rows linked to at least one recipe.
func (uc *AttributeUseCase[T]) List(userID uint, assignedOnly bool) ([]T, error) {
	return uc.Repo.GetByUser(userID, assignedOnly)
}

// Create persists a new row owned by the caller.
func (uc *AttributeUseCase[T]) Create(userID uint, name string) (*T, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%s name is required", uc.kind)
	}
	item := uc.build(userID, name)
	if err := uc.Repo.Create(&item); err != nil {
		return nil, err
	}
	return &item, nil
}
