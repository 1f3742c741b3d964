package accounts

import "sync"

type userRepository struct {
	mu    sync.RWMutex
	users map[ID]*User
}

func NewUserRepository() Repository {
	return &userRepository{users: map[ID]*User{}}
}

func (repo *userRepository) FindByID(id ID) (*User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if u, ok := repo.users[id]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func (repo *userRepository) FindByEmail(email string) (*User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, v := range repo.users {
		if v.Email == email {
			return v, nil
		}
	}
	return nil, ErrNotFound
}

func (repo *userRepository) Store(u *User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.users[u.ID] = u
	return nil
}

func (repo *userRepository) Update(u *User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.users[u.ID] = u
	return nil
}

func (repo *userRepository) Delete(id ID) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.users[id]; !ok {
		return ErrNotFound
	}
	delete(repo.users, id)
	return nil
}
