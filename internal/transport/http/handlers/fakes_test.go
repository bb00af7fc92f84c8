package handlers

import (
	"context"
	"time"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

// In-memory repos for handler tests. Semantics mirror the postgres
// adapters: not-found domain errors, updated_at bumped on mutation,
// cascading deletes.

type fakeBuildingRepo struct {
	nextID int64
	items  map[int64]domain.Building
}

func newFakeBuildingRepo() *fakeBuildingRepo {
	return &fakeBuildingRepo{nextID: 1, items: map[int64]domain.Building{}}
}

func (f *fakeBuildingRepo) Create(_ context.Context, b domain.Building) (domain.Building, error) {
	b.ID = f.nextID
	f.nextID++
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	f.items[b.ID] = b
	return b, nil
}

func (f *fakeBuildingRepo) GetByID(_ context.Context, id int64) (domain.Building, error) {
	b, ok := f.items[id]
	if !ok {
		return domain.Building{}, domain.ErrBuildingNotFound()
	}
	return b, nil
}

func (f *fakeBuildingRepo) List(context.Context) ([]domain.Building, error) {
	out := make([]domain.Building, 0, len(f.items))
	for _, b := range f.items {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBuildingRepo) Update(_ context.Context, b domain.Building) (domain.Building, error) {
	if _, ok := f.items[b.ID]; !ok {
		return domain.Building{}, domain.ErrBuildingNotFound()
	}
	b.UpdatedAt = time.Now().UTC()
	f.items[b.ID] = b
	return b, nil
}

func (f *fakeBuildingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrBuildingNotFound()
	}
	delete(f.items, id)
	return nil
}

type fakeRoomRepo struct {
	nextID int64
	items  map[int64]domain.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{nextID: 1, items: map[int64]domain.Room{}}
}

func (f *fakeRoomRepo) Create(_ context.Context, rm domain.Room) (domain.Room, error) {
	rm.ID = f.nextID
	f.nextID++
	rm.CreatedAt = time.Now().UTC()
	rm.UpdatedAt = rm.CreatedAt
	f.items[rm.ID] = rm
	return rm, nil
}

func (f *fakeRoomRepo) GetByID(_ context.Context, id int64) (domain.Room, error) {
	rm, ok := f.items[id]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound()
	}
	return rm, nil
}

func (f *fakeRoomRepo) ListByBuilding(_ context.Context, buildingID int64) ([]domain.Room, error) {
	out := []domain.Room{}
	for _, rm := range f.items {
		if rm.BuildingID == buildingID {
			out = append(out, rm)
		}
	}
	return out, nil
}

func (f *fakeRoomRepo) Update(_ context.Context, rm domain.Room) (domain.Room, error) {
	if _, ok := f.items[rm.ID]; !ok {
		return domain.Room{}, domain.ErrRoomNotFound()
	}
	rm.UpdatedAt = time.Now().UTC()
	f.items[rm.ID] = rm
	return rm, nil
}

func (f *fakeRoomRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrRoomNotFound()
	}
	delete(f.items, id)
	return nil
}

type fakeCameraRepo struct {
	nextID int64
	items  map[int64]domain.Camera
}

func newFakeCameraRepo() *fakeCameraRepo {
	return &fakeCameraRepo{nextID: 1, items: map[int64]domain.Camera{}}
}

func (f *fakeCameraRepo) Create(_ context.Context, c domain.Camera) (domain.Camera, error) {
	c.ID = f.nextID
	f.nextID++
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	f.items[c.ID] = c
	return c, nil
}

func (f *fakeCameraRepo) GetByID(_ context.Context, id int64) (domain.Camera, error) {
	c, ok := f.items[id]
	if !ok {
		return domain.Camera{}, domain.ErrCameraNotFound()
	}
	return c, nil
}

func (f *fakeCameraRepo) ListByRoom(_ context.Context, roomID int64) ([]domain.Camera, error) {
	out := []domain.Camera{}
	for _, c := range f.items {
		if c.RoomID == roomID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCameraRepo) Update(_ context.Context, c domain.Camera) (domain.Camera, error) {
	if _, ok := f.items[c.ID]; !ok {
		return domain.Camera{}, domain.ErrCameraNotFound()
	}
	c.UpdatedAt = time.Now().UTC()
	f.items[c.ID] = c
	return c, nil
}

func (f *fakeCameraRepo) SetOnline(_ context.Context, id int64, online bool) error {
	c, ok := f.items[id]
	if !ok {
		return domain.ErrCameraNotFound()
	}
	c.IsOnline = online
	c.UpdatedAt = time.Now().UTC()
	f.items[id] = c
	return nil
}

func (f *fakeCameraRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrCameraNotFound()
	}
	delete(f.items, id)
	return nil
}

type fakeContactRepo struct {
	nextID int64
	items  map[int64]domain.Contact
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{nextID: 1, items: map[int64]domain.Contact{}}
}

func (f *fakeContactRepo) Create(_ context.Context, c domain.Contact) (domain.Contact, error) {
	c.ID = f.nextID
	f.nextID++
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	f.items[c.ID] = c
	return c, nil
}

func (f *fakeContactRepo) GetByID(_ context.Context, id int64) (domain.Contact, error) {
	c, ok := f.items[id]
	if !ok {
		return domain.Contact{}, domain.ErrContactNotFound()
	}
	return c, nil
}

func (f *fakeContactRepo) List(context.Context) ([]domain.Contact, error) {
	out := make([]domain.Contact, 0, len(f.items))
	for _, c := range f.items {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeContactRepo) Update(_ context.Context, c domain.Contact) (domain.Contact, error) {
	if _, ok := f.items[c.ID]; !ok {
		return domain.Contact{}, domain.ErrContactNotFound()
	}
	c.UpdatedAt = time.Now().UTC()
	f.items[c.ID] = c
	return c, nil
}

func (f *fakeContactRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrContactNotFound()
	}
	delete(f.items, id)
	return nil
}

type fakeMessageRepo struct {
	nextID int64
	items  map[int64]domain.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{nextID: 1, items: map[int64]domain.Message{}}
}

func (f *fakeMessageRepo) Create(_ context.Context, m domain.Message) (domain.Message, error) {
	m.ID = f.nextID
	f.nextID++
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = m.CreatedAt
	f.items[m.ID] = m
	return m, nil
}

func (f *fakeMessageRepo) GetByID(_ context.Context, id int64) (domain.Message, error) {
	m, ok := f.items[id]
	if !ok {
		return domain.Message{}, domain.ErrMessageNotFound()
	}
	return m, nil
}

func (f *fakeMessageRepo) ListByContact(_ context.Context, contactID int64) ([]domain.Message, error) {
	out := []domain.Message{}
	for _, m := range f.items {
		if m.ContactID == contactID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrMessageNotFound()
	}
	delete(f.items, id)
	return nil
}

type fakeNotificationRepo struct {
	nextID int64
	items  map[int64]domain.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1, items: map[int64]domain.Notification{}}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n domain.Notification) (domain.Notification, error) {
	n.ID = f.nextID
	f.nextID++
	n.CreatedAt = time.Now().UTC()
	n.UpdatedAt = n.CreatedAt
	f.items[n.ID] = n
	return n, nil
}

func (f *fakeNotificationRepo) GetByID(_ context.Context, id int64) (domain.Notification, error) {
	n, ok := f.items[id]
	if !ok {
		return domain.Notification{}, domain.ErrNotificationNotFound()
	}
	return n, nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID int64) ([]domain.Notification, error) {
	out := []domain.Notification{}
	for _, n := range f.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id int64) error {
	n, ok := f.items[id]
	if !ok {
		return domain.ErrNotificationNotFound()
	}
	n.IsRead = true
	n.UpdatedAt = time.Now().UTC()
	f.items[id] = n
	return nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotificationNotFound()
	}
	delete(f.items, id)
	return nil
}
