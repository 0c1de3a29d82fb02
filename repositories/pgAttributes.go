package repositories

import (
	"fmt"

	"recipe-server/db"
	"recipe-server/entities"
)

// attributePgRepository implements the shared tag/ingredient contract
// once; the join-table names are the only difference between the two.
type attributePgRepository[T any] struct {
	db        db.Database
	table     string
	joinTable string
	joinKey   string
}

func NewTagPgRepository(database db.Database) AttributeRepository[entities.Tag] {
	return &attributePgRepository[entities.Tag]{
		db:        database,
		table:     "tags",
		joinTable: "recipe_tags",
		joinKey:   "tag_id",
	}
}

func NewIngredientPgRepository(database db.Database) AttributeRepository[entities.Ingredient] {
	return &attributePgRepository[entities.Ingredient]{
		db:        database,
		table:     "ingredients",
		joinTable: "recipe_ingredients",
		joinKey:   "ingredient_id",
	}
}

func (r *attributePgRepository[T]) Create(item *T) error {
	return r.db.GetDB().Create(item).Error
}

func (r *attributePgRepository[T]) GetByUser(userID uint, assignedOnly bool) ([]T, error) {
	query := r.db.GetDB().Model(new(T)).Where(r.table+".user_id = ?", userID)

	if assignedOnly {
		// Only rows linked to at least one recipe, deduplicated
		join := fmt.Sprintf("JOIN %s ON %s.%s = %s.id", r.joinTable, r.joinTable, r.joinKey, r.table)
		query = query.Joins(join).Distinct(r.table + ".*")
	}

	var items []T
	err := query.Order(r.table + ".name DESC").Find(&items).Error
	return items, err
}

func (r *attributePgRepository[T]) GetByIDs(userID uint, ids []uint) ([]T, error) {
	var items []T
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.GetDB().Where("user_id = ? AND id IN ?", userID, ids).Find(&items).Error
	return items, err
}
