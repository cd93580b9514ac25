package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uracard.link/models"
	"uracard.link/repositories"
)

// fakeUserRepo bellek içi IUserRepository.
type fakeUserRepo struct {
	users   map[uint]*models.User
	nextID  uint
	findErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return errFakeDuplicate
		}
	}
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) FindByShareCode(ctx context.Context, code string) (*models.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, user := range r.users {
		if user.ShareCode == code {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, id uint, data map[string]interface{}, updatedBy uint) error {
	if _, ok := r.users[id]; !ok {
		return repositories.ErrNotFound
	}
	return nil
}

var _ repositories.IUserRepository = (*fakeUserRepo)(nil)

// fakeFriendRepo bellek içi IFriendRepository. Unique (user_id, friend_id)
// kısıtı duplicate hatasıyla taklit edilir.
type fakeFriendRepo struct {
	friends   []models.Friend
	nextID    uint
	createErr error
	users     *fakeUserRepo
}

func newFakeFriendRepo(users *fakeUserRepo) *fakeFriendRepo {
	return &fakeFriendRepo{nextID: 1, users: users}
}

func (r *fakeFriendRepo) Create(ctx context.Context, friend *models.Friend) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, f := range r.friends {
		if f.UserID == friend.UserID && f.FriendID == friend.FriendID {
			return errFakeDuplicate
		}
	}
	friend.ID = r.nextID
	r.nextID++
	r.friends = append(r.friends, *friend)
	return nil
}

func (r *fakeFriendRepo) FindPair(ctx context.Context, userID, friendID uint) (*models.Friend, error) {
	for _, f := range r.friends {
		if f.UserID == userID && f.FriendID == friendID {
			copied := f
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeFriendRepo) FindAllByUser(ctx context.Context, userID uint) ([]models.Friend, error) {
	var out []models.Friend
	for _, f := range r.friends {
		if f.UserID == userID {
			if user, ok := r.users.users[f.FriendID]; ok {
				f.FriendUser = *user
			}
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFriendRepo) DeletePair(ctx context.Context, userID, friendID uint) error {
	for i, f := range r.friends {
		if f.UserID == userID && f.FriendID == friendID {
			r.friends = append(r.friends[:i], r.friends[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeFriendRepo) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	for _, f := range r.friends {
		if f.UserID == userID {
			count++
		}
	}
	return count, nil
}

var _ repositories.IFriendRepository = (*fakeFriendRepo)(nil)

func newTestFriendService() (IFriendService, *fakeFriendRepo, *fakeUserRepo) {
	users := newFakeUserRepo()
	friends := newFakeFriendRepo(users)
	return NewFriendService(friends, users), friends, users
}

func seedUser(users *fakeUserRepo, name, shareCode string) *models.User {
	user := &models.User{Name: name, Email: name + "@test.dev", ShareCode: shareCode, IsActive: true}
	_ = users.Create(context.Background(), user)
	return user
}

func TestAddFriendByShareCode(t *testing.T) {
	svc, _, users := newTestFriendService()
	me := seedUser(users, "ahmet", "code-ahmet")
	other := seedUser(users, "zeynep", "code-zeynep")

	view, err := svc.AddFriendByShareCode(context.Background(), me.ID, "code-zeynep")
	require.NoError(t, err)

	assert.Equal(t, me.ID, view.UserID)
	assert.Equal(t, other.ID, view.FriendID)
	assert.Equal(t, "zeynep", view.FriendName)
}

func TestAddFriendUnknownCode(t *testing.T) {
	svc, _, users := newTestFriendService()
	me := seedUser(users, "ahmet", "code-ahmet")

	_, err := svc.AddFriendByShareCode(context.Background(), me.ID, "olmayan-kod")
	assert.ErrorIs(t, err, ErrFriendUserNotFound)
}

func TestAddFriendSelfRejected(t *testing.T) {
	svc, _, users := newTestFriendService()
	me := seedUser(users, "ahmet", "code-ahmet")

	_, err := svc.AddFriendByShareCode(context.Background(), me.ID, "code-ahmet")
	assert.ErrorIs(t, err, ErrFriendSelf)
}

func TestAddFriendDuplicateRejected(t *testing.T) {
	svc, _, users := newTestFriendService()
	me := seedUser(users, "ahmet", "code-ahmet")
	seedUser(users, "zeynep", "code-zeynep")

	_, err := svc.AddFriendByShareCode(context.Background(), me.ID, "code-zeynep")
	require.NoError(t, err)

	_, err = svc.AddFriendByShareCode(context.Background(), me.ID, "code-zeynep")
	assert.ErrorIs(t, err, ErrFriendExists)
}

func TestAddFriendRaceSurfacesAsExists(t *testing.T) {
	svc, friends, users := newTestFriendService()
	me := seedUser(users, "ahmet", "code-ahmet")
	seedUser(users, "zeynep", "code-zeynep")

	// Kontrol geçti ama insert unique kısıta takıldı (eşzamanlı ekleme).
	friends.createErr = errFakeDuplicate

	_, err := svc.AddFriendByShareCode(context.Background(), me.ID, "code-zeynep")
	assert.ErrorIs(t, err, ErrFriendExists)
}

func TestAddFriendRequiresAuth(t *testing.T) {
	svc, _, _ := newTestFriendService()
	_, err := svc.AddFriendByShareCode(context.Background(), 0, "code")
	assert.ErrorIs(t, err, ErrFriendAuthRequired)
}

func TestGetFriendsWithProfiles(t *testing.T) {
	svc, _, users := newTestFriendService()
	me := seedUser(users, "ahmet", "code-ahmet")
	seedUser(users, "zeynep", "code-zeynep")
	seedUser(users, "mehmet", "code-mehmet")

	_, err := svc.AddFriendByShareCode(context.Background(), me.ID, "code-zeynep")
	require.NoError(t, err)
	_, err = svc.AddFriendByShareCode(context.Background(), me.ID, "code-mehmet")
	require.NoError(t, err)

	views := svc.GetFriends(context.Background(), me.ID)
	require.Len(t, views, 2)
	assert.Equal(t, int64(2), svc.GetFriendCount(context.Background(), me.ID))
}

func TestRemoveFriendIdempotent(t *testing.T) {
	svc, _, users := newTestFriendService()
	me := seedUser(users, "ahmet", "code-ahmet")
	other := seedUser(users, "zeynep", "code-zeynep")

	_, err := svc.AddFriendByShareCode(context.Background(), me.ID, "code-zeynep")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFriend(context.Background(), me.ID, other.ID))
	assert.False(t, svc.IsFriend(context.Background(), me.ID, other.ID))

	// Zaten silinmiş çifti silmek hata değildir.
	assert.NoError(t, svc.RemoveFriend(context.Background(), me.ID, other.ID))
}

func TestFriendshipIsDirectional(t *testing.T) {
	svc, _, users := newTestFriendService()
	me := seedUser(users, "ahmet", "code-ahmet")
	other := seedUser(users, "zeynep", "code-zeynep")

	_, err := svc.AddFriendByShareCode(context.Background(), me.ID, "code-zeynep")
	require.NoError(t, err)

	assert.True(t, svc.IsFriend(context.Background(), me.ID, other.ID))
	assert.False(t, svc.IsFriend(context.Background(), other.ID, me.ID))
}
