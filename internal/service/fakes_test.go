package service

import (
	"context"

	"book-commons/internal/domain"
	"book-commons/internal/errs"
)

type fakeUsers struct {
	byID map[string]*domain.User

	createErr error
	attachErr error
	deleteErr error
}

var _ domain.UserRepository = (*fakeUsers)(nil)

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[string]*domain.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, ex := range f.byID {
		if ex.Email == u.Email {
			return errs.ErrAlreadyExists
		}
	}
	cpy := *u
	f.byID[u.ID] = &cpy
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Update(_ context.Context, u *domain.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return errs.ErrNotFound
	}
	cpy := *u
	f.byID[u.ID] = &cpy
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeUsers) AttachWishlist(_ context.Context, userID, listID string) error {
	if f.attachErr != nil {
		return f.attachErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return errs.ErrNotFound
	}
	if u.Wishlists.Contains(listID) {
		return nil
	}
	u.Wishlists = append(u.Wishlists, listID)
	return nil
}

func (f *fakeUsers) DetachWishlist(_ context.Context, userID, listID string) error {
	u, ok := f.byID[userID]
	if !ok {
		return errs.ErrNotFound
	}
	u.Wishlists = u.Wishlists.Without(listID)
	return nil
}

func (f *fakeUsers) FindOwner(_ context.Context, listID string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Wishlists.Contains(listID) {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

type fakeWishlists struct {
	byID map[string]*domain.Wishlist

	createErr error
	deleteErr map[string]error // listID -> err
}

var _ domain.WishlistRepository = (*fakeWishlists)(nil)

func newFakeWishlists() *fakeWishlists {
	return &fakeWishlists{byID: map[string]*domain.Wishlist{}, deleteErr: map[string]error{}}
}

func (f *fakeWishlists) Create(_ context.Context, w *domain.Wishlist) error {
	if f.createErr != nil {
		return f.createErr
	}
	cpy := *w
	f.byID[w.ID] = &cpy
	return nil
}

func (f *fakeWishlists) FindByID(_ context.Context, id string) (*domain.Wishlist, error) {
	w, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	c := *w
	return &c, nil
}

func (f *fakeWishlists) FindByIDs(_ context.Context, ids []string) ([]domain.Wishlist, error) {
	out := []domain.Wishlist{}
	for _, id := range ids {
		if w, ok := f.byID[id]; ok {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (f *fakeWishlists) Rename(_ context.Context, id, title string) (*domain.Wishlist, error) {
	w, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	w.Title = title
	c := *w
	return &c, nil
}

func (f *fakeWishlists) Delete(_ context.Context, id string) error {
	if err := f.deleteErr[id]; err != nil {
		return err
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeWishlists) AddItem(_ context.Context, listID, bookID string) (*domain.Wishlist, bool, error) {
	w, ok := f.byID[listID]
	if !ok {
		return nil, false, errs.ErrNotFound
	}
	if w.Items.Contains(bookID) {
		c := *w
		return &c, false, nil
	}
	w.Items = append(w.Items, bookID)
	c := *w
	return &c, true, nil
}

func (f *fakeWishlists) RemoveItem(_ context.Context, listID, bookID string) (*domain.Wishlist, error) {
	w, ok := f.byID[listID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	w.Items = w.Items.Without(bookID)
	c := *w
	return &c, nil
}

type fakeEbooks struct {
	byID map[string]*domain.Ebook
}

var _ domain.EbookRepository = (*fakeEbooks)(nil)

func newFakeEbooks() *fakeEbooks { return &fakeEbooks{byID: map[string]*domain.Ebook{}} }

func (f *fakeEbooks) Create(_ context.Context, e *domain.Ebook) error {
	cpy := *e
	f.byID[e.ID] = &cpy
	return nil
}

func (f *fakeEbooks) FindByID(_ context.Context, id string) (*domain.Ebook, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	c := *e
	return &c, nil
}

func (f *fakeEbooks) FindByIDs(_ context.Context, ids []string) ([]domain.Ebook, error) {
	out := []domain.Ebook{}
	for _, id := range ids {
		if e, ok := f.byID[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEbooks) List(_ context.Context) ([]domain.Ebook, error) {
	out := []domain.Ebook{}
	for _, e := range f.byID {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEbooks) FindDuplicate(_ context.Context, title string, formats domain.StringList, location string) (*domain.Ebook, error) {
	for _, e := range f.byID {
		if e.Title == title && e.Location == location && sameList(e.Formats, formats) {
			c := *e
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeEbooks) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func sameList(a, b domain.StringList) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
