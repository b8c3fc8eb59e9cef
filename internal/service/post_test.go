package service

import (
	"context"
	"errors"
	"testing"

	"github.com/tanvir/blog-api/internal/apperror"
	"github.com/tanvir/blog-api/internal/model"
	"github.com/tanvir/blog-api/internal/repository"
)

// ============================================================
// Fakes
// ============================================================

// fakePostRepo records the arguments of the last call so tests can
// assert what the service passed down.
type fakePostRepo struct {
	posts  map[int64]*model.Post
	nextID int64

	lastListOpts repository.ListOptions
	failWith     error // when set, every call fails with this
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[int64]*model.Post), nextID: 1}
}

func (f *fakePostRepo) Create(_ context.Context, post *model.Post) error {
	if f.failWith != nil {
		return f.failWith
	}
	post.ID = f.nextID
	f.nextID++
	copied := *post
	f.posts[post.ID] = &copied
	return nil
}

func (f *fakePostRepo) GetByIDForOwner(_ context.Context, id, ownerID int64) (*model.Post, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	post, ok := f.posts[id]
	if !ok || post.UserID != ownerID {
		return nil, &apperror.AppError{Err: apperror.ErrNotFound, Message: "Post not found"}
	}
	copied := *post
	return &copied, nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id int64) (*model.Post, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	post, ok := f.posts[id]
	if !ok {
		return nil, &apperror.AppError{Err: apperror.ErrNotFound, Message: "Post not found"}
	}
	copied := *post
	return &copied, nil
}

func (f *fakePostRepo) ListByOwner(_ context.Context, ownerID int64) ([]model.Post, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []model.Post{}
	for _, p := range f.posts {
		if p.UserID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) ListPageByOwner(_ context.Context, ownerID int64, opts repository.ListOptions) ([]model.Post, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.lastListOpts = opts
	return f.ListByOwner(context.Background(), ownerID)
}

func (f *fakePostRepo) Update(_ context.Context, id, ownerID int64, title, content string) error {
	if f.failWith != nil {
		return f.failWith
	}
	if post, ok := f.posts[id]; ok && post.UserID == ownerID {
		post.Title, post.Content = title, content
	}
	return nil
}

func (f *fakePostRepo) Delete(_ context.Context, id, ownerID int64) error {
	if f.failWith != nil {
		return f.failWith
	}
	if post, ok := f.posts[id]; ok && post.UserID == ownerID {
		delete(f.posts, id)
	}
	return nil
}

// ============================================================
// Dashboard
// ============================================================

func TestDashboardPaging(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		wantOffset int
	}{
		{"page 1", 1, 0},
		{"page 2", 2, 5},
		{"page 4", 4, 15},
		{"page 0 clamps to 1", 0, 0},
		{"negative page clamps to 1", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakePostRepo()
			svc := NewPostService(repo, discardLogger())

			if _, err := svc.Dashboard(context.Background(), 1, tt.page, "query"); err != nil {
				t.Fatalf("Dashboard() error = %v", err)
			}

			if repo.lastListOpts.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", repo.lastListOpts.Offset, tt.wantOffset)
			}
			if repo.lastListOpts.Limit != DashboardPageSize {
				t.Errorf("Limit = %d, want %d", repo.lastListOpts.Limit, DashboardPageSize)
			}
			if repo.lastListOpts.Search != "query" {
				t.Errorf("Search = %q, want %q", repo.lastListOpts.Search, "query")
			}
		})
	}
}

// ============================================================
// Create / Get / Update / Delete
// ============================================================

func TestPostCreateNoValidation(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostService(repo, discardLogger())

	// Empty title and content are accepted; there is no field validation
	// on posts.
	post, err := svc.Create(context.Background(), 1, "", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if post.ID == 0 {
		t.Error("Create() did not assign an ID")
	}
	if post.UserID != 1 {
		t.Errorf("UserID = %d, want 1", post.UserID)
	}
}

func TestPostGetScopedToOwner(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostService(repo, discardLogger())

	created, err := svc.Create(context.Background(), 1, "Mine", "content")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := svc.Get(context.Background(), 1, created.ID); err != nil {
		t.Errorf("Get() as owner error = %v", err)
	}

	_, err = svc.Get(context.Background(), 2, created.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Get() as non-owner error = %v, want ErrNotFound", err)
	}
}

func TestPostUpdateDeleteNoOp(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostService(repo, discardLogger())

	created, err := svc.Create(context.Background(), 1, "Mine", "content")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Writes against other users' posts succeed without effect.
	if err := svc.Update(context.Background(), 2, created.ID, "Stolen", "nope"); err != nil {
		t.Errorf("Update() as non-owner error = %v, want nil", err)
	}
	if err := svc.Delete(context.Background(), 2, created.ID); err != nil {
		t.Errorf("Delete() as non-owner error = %v, want nil", err)
	}

	post, err := svc.Get(context.Background(), 1, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if post.Title != "Mine" {
		t.Errorf("Title = %q, non-owner writes must not change the row", post.Title)
	}
}

func TestPostServicePropagatesRepoFailure(t *testing.T) {
	repo := newFakePostRepo()
	repo.failWith = errors.New("disk full")
	svc := NewPostService(repo, discardLogger())

	if _, err := svc.Create(context.Background(), 1, "t", "c"); err == nil {
		t.Error("Create() should propagate the repository error")
	}
	if _, err := svc.List(context.Background(), 1); err == nil {
		t.Error("List() should propagate the repository error")
	}
	if err := svc.Update(context.Background(), 1, 1, "t", "c"); err == nil {
		t.Error("Update() should propagate the repository error")
	}
}
