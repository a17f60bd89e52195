package stor

import (
	"fmt"

	"github.com/materials-commons/mceln/pkg/mcdb/mcmodel"
)

type InMemoryUserStor struct {
	users []mcmodel.User
}

func NewInMemoryUserStor(users []mcmodel.User) *InMemoryUserStor {
	return &InMemoryUserStor{users: users}
}

func (s *InMemoryUserStor) CreateUser(user *mcmodel.User) (*mcmodel.User, error) {
	user.ID = len(s.users) + 1
	s.users = append(s.users, *user)
	return user, nil
}

func (s *InMemoryUserStor) GetUserByAPIToken(apitoken string) (*mcmodel.User, error) {
	for _, u := range s.users {
		if u.ApiToken == apitoken {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("no user with that api token")
}
