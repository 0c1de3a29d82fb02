package repositories

import (
	"recipe-server/db"
	"recipe-server/entities"
)

type tokenPgRepository struct {
	db db.Database
}

func NewTokenPgRepository(database db.Database) TokenRepository {
	return &tokenPgRepository{db: database}
}

func (r *tokenPgRepository) Create(token *entities.ApiToken) error {
	return r.db.GetDB().Create(token).Error
}

func (r *tokenPgRepository) GetByKey(key string) (*entities.ApiToken, error) {
	var token entities.ApiToken
	err := r.db.GetDB().Where("key = ?", key).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}
