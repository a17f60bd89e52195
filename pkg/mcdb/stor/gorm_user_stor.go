package stor

import (
	"github.com/gosimple/slug"
	"github.com/hashicorp/go-uuid"
	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
	"gorm.io/gorm"
)

type GormUserStor struct {
	db *gorm.DB
}

func NewGormUserStor(db *gorm.DB) *GormUserStor {
	return &GormUserStor{db: db}
}

func (s *GormUserStor) CreateUser(user *mcmodel.User) (*mcmodel.User, error) {
	var err error

	if user.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	user.Slug = slug.Make(user.Name)

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByAPIToken preloads the user's team because the permission checks
// need the team relationship resolved.
func (s *GormUserStor) GetUserByAPIToken(apitoken string) (*mcmodel.User, error) {
	var user mcmodel.User
	if err := s.db.Preload("Team").Where("api_token = ?", apitoken).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
