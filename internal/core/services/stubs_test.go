package services

import (
	"context"

	"trip-planner/internal/adapters/persistence/models"
	"trip-planner/internal/core/authz"

	"gorm.io/gorm"
)

// In-memory repository stubs. They reproduce the lookup semantics the
// services rely on, including gorm.ErrRecordNotFound on missing rows.

type stubUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *stubUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	var all []*models.User
	for id := uint(1); id < r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			all = append(all, user)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(context.Background(), username)
	return err == nil, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) AddRole(_ context.Context, user *models.User, role *models.Role) error {
	for _, existing := range user.Roles {
		if existing.ID == role.ID {
			return nil
		}
	}
	user.Roles = append(user.Roles, *role)
	return nil
}

func (r *stubUserRepo) RemoveRole(_ context.Context, user *models.User, role *models.Role) error {
	for i, existing := range user.Roles {
		if existing.ID == role.ID {
			user.Roles = append(user.Roles[:i], user.Roles[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubUserRepo) CountWithRole(_ context.Context, roleID uint) (int64, error) {
	var count int64
	for _, user := range r.users {
		for _, role := range user.Roles {
			if role.ID == roleID {
				count++
				break
			}
		}
	}
	return count, nil
}

type stubRoleRepo struct {
	roles  map[uint]*models.Role
	nextID uint
}

func newStubRoleRepo(names ...string) *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[uint]*models.Role), nextID: 1}
	for _, name := range names {
		_ = r.Create(context.Background(), &models.Role{Name: name})
	}
	return r
}

func (r *stubRoleRepo) Create(_ context.Context, role *models.Role) error {
	role.ID = r.nextID
	r.nextID++
	r.roles[role.ID] = role
	return nil
}

func (r *stubRoleRepo) GetByID(_ context.Context, id uint) (*models.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return role, nil
}

func (r *stubRoleRepo) GetByName(_ context.Context, name string) (*models.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRoleRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	_, err := r.GetByName(context.Background(), name)
	return err == nil, nil
}

func (r *stubRoleRepo) Update(_ context.Context, role *models.Role) error {
	if _, ok := r.roles[role.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.roles[role.ID] = role
	return nil
}

func (r *stubRoleRepo) Delete(_ context.Context, id uint) error {
	delete(r.roles, id)
	return nil
}

func (r *stubRoleRepo) List(_ context.Context) ([]*models.Role, error) {
	var all []*models.Role
	for id := uint(1); id < r.nextID; id++ {
		if role, ok := r.roles[id]; ok {
			all = append(all, role)
		}
	}
	return all, nil
}

type stubTripRepo struct {
	trips         map[uint]*models.Trip
	collaborators map[uint][]uint
	nextID        uint
}

func newStubTripRepo() *stubTripRepo {
	return &stubTripRepo{
		trips:         make(map[uint]*models.Trip),
		collaborators: make(map[uint][]uint),
		nextID:        1,
	}
}

func (r *stubTripRepo) Create(_ context.Context, trip *models.Trip) error {
	trip.ID = r.nextID
	r.nextID++
	r.trips[trip.ID] = trip
	return nil
}

func (r *stubTripRepo) GetByID(_ context.Context, id uint) (*models.Trip, error) {
	trip, ok := r.trips[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return trip, nil
}

func (r *stubTripRepo) GetDetailed(ctx context.Context, id uint) (*models.Trip, error) {
	return r.GetByID(ctx, id)
}

func (r *stubTripRepo) GetAccess(_ context.Context, id uint) (authz.TripAccess, error) {
	trip, ok := r.trips[id]
	if !ok {
		return authz.TripAccess{}, gorm.ErrRecordNotFound
	}
	return authz.TripAccess{
		OwnerID:         trip.OwnerID,
		CollaboratorIDs: r.collaborators[id],
	}, nil
}

func (r *stubTripRepo) List(_ context.Context) ([]*models.Trip, error) {
	var all []*models.Trip
	for id := uint(1); id < r.nextID; id++ {
		if trip, ok := r.trips[id]; ok {
			all = append(all, trip)
		}
	}
	return all, nil
}

func (r *stubTripRepo) ListForUser(ctx context.Context, userID uint) ([]*models.Trip, error) {
	all, _ := r.List(ctx)
	var visible []*models.Trip
	for _, trip := range all {
		if trip.OwnerID == userID {
			visible = append(visible, trip)
			continue
		}
		for _, id := range r.collaborators[trip.ID] {
			if id == userID {
				visible = append(visible, trip)
				break
			}
		}
	}
	return visible, nil
}

func (r *stubTripRepo) Update(_ context.Context, trip *models.Trip) error {
	if _, ok := r.trips[trip.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.trips[trip.ID] = trip
	return nil
}

func (r *stubTripRepo) Delete(_ context.Context, id uint) error {
	delete(r.trips, id)
	delete(r.collaborators, id)
	return nil
}

func (r *stubTripRepo) AddCollaborator(_ context.Context, trip *models.Trip, user *models.User) error {
	for _, id := range r.collaborators[trip.ID] {
		if id == user.ID {
			return nil
		}
	}
	r.collaborators[trip.ID] = append(r.collaborators[trip.ID], user.ID)
	return nil
}

func (r *stubTripRepo) RemoveCollaborator(_ context.Context, trip *models.Trip, user *models.User) error {
	ids := r.collaborators[trip.ID]
	for i, id := range ids {
		if id == user.ID {
			r.collaborators[trip.ID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

type stubItineraryRepo struct {
	items      map[uint]*models.ItineraryItem
	activities map[uint]*models.Activity
	nextID     uint
}

func newStubItineraryRepo() *stubItineraryRepo {
	return &stubItineraryRepo{
		items:      make(map[uint]*models.ItineraryItem),
		activities: make(map[uint]*models.Activity),
		nextID:     1,
	}
}

func (r *stubItineraryRepo) Create(_ context.Context, item *models.ItineraryItem) error {
	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item
	return nil
}

func (r *stubItineraryRepo) GetByID(_ context.Context, id uint) (*models.ItineraryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *stubItineraryRepo) List(_ context.Context, tripID uint) ([]*models.ItineraryItem, error) {
	var all []*models.ItineraryItem
	for id := uint(1); id < r.nextID; id++ {
		if item, ok := r.items[id]; ok && item.TripID == tripID {
			all = append(all, item)
		}
	}
	return all, nil
}

func (r *stubItineraryRepo) Update(_ context.Context, item *models.ItineraryItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[item.ID] = item
	return nil
}

func (r *stubItineraryRepo) Delete(_ context.Context, id uint) error {
	delete(r.items, id)
	for activityID, activity := range r.activities {
		if activity.ItineraryItemID == id {
			delete(r.activities, activityID)
		}
	}
	return nil
}

func (r *stubItineraryRepo) AddActivity(_ context.Context, activity *models.Activity) error {
	activity.ID = r.nextID
	r.nextID++
	r.activities[activity.ID] = activity
	return nil
}

func (r *stubItineraryRepo) GetActivity(_ context.Context, id uint) (*models.Activity, error) {
	activity, ok := r.activities[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return activity, nil
}

func (r *stubItineraryRepo) UpdateActivity(_ context.Context, activity *models.Activity) error {
	if _, ok := r.activities[activity.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.activities[activity.ID] = activity
	return nil
}

func (r *stubItineraryRepo) DeleteActivity(_ context.Context, id uint) error {
	delete(r.activities, id)
	return nil
}
