package auth

import (
	"context"

	"github.com/userhub/userhub-backend/model"
)

// mockUserStore implements UserStore with overridable function fields.
// Unset fields behave like an empty store.
type mockUserStore struct {
	findByEmailFn    func(ctx context.Context, email string) (*model.User, error)
	findByKeyFn      func(ctx context.Context, key string) (*model.User, error)
	createFn         func(ctx context.Context, user *model.User) error
	ensureExternalFn func(ctx context.Context, user *model.User) (*model.User, error)
	deleteFn         func(ctx context.Context, key string) error
	listFn           func(ctx context.Context) ([]*model.User, error)
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserStore) FindByKey(ctx context.Context, key string) (*model.User, error) {
	if m.findByKeyFn != nil {
		return m.findByKeyFn(ctx, key)
	}
	return nil, nil
}

func (m *mockUserStore) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) EnsureExternal(ctx context.Context, user *model.User) (*model.User, error) {
	if m.ensureExternalFn != nil {
		return m.ensureExternalFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserStore) Delete(ctx context.Context, key string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

func (m *mockUserStore) List(ctx context.Context) ([]*model.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

var _ UserStore = (*mockUserStore)(nil)

// testUser builds a credential user with a hashed password.
func testUser(key, email, role, password string) *model.User {
	user := model.NewUser(email, role)
	user.Key = key
	user.FirstName = "Test"
	user.LastName = "User"
	if password != "" {
		hash, err := HashPassword(password)
		if err != nil {
			panic(err)
		}
		user.PasswordHash = hash
	}
	return user
}
