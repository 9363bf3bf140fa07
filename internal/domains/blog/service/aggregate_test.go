package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tattoo-backend/internal/domains/blog"
	"tattoo-backend/internal/domains/category"
	"tattoo-backend/internal/domains/profile"
	"tattoo-backend/pkg/swr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== STUBS =====

type stubRepo struct {
	posts     []blog.Post
	listCalls int
}

func (s *stubRepo) Create(ctx context.Context, p *blog.Post) error { return nil }
func (s *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	return nil, blog.ErrPostNotFound
}
func (s *stubRepo) GetBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	for i := range s.posts {
		if s.posts[i].Slug == slug {
			return &s.posts[i], nil
		}
	}
	return nil, blog.ErrPostNotFound
}
func (s *stubRepo) List(ctx context.Context, filter blog.PostFilter) ([]blog.Post, int64, error) {
	s.listCalls++
	return s.posts, int64(len(s.posts)), nil
}
func (s *stubRepo) Update(ctx context.Context, p *blog.Post) error { return nil }
func (s *stubRepo) Publish(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	return nil, blog.ErrPostNotFound
}
func (s *stubRepo) SetCover(ctx context.Context, id uuid.UUID, coverURL string) error { return nil }

type stubCategories struct {
	data   map[uuid.UUID]category.Category
	err    error
	calls  int
	gotIDs []uuid.UUID
}

func (s *stubCategories) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]category.Category, error) {
	s.calls++
	s.gotIDs = ids
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

type stubAuthors struct {
	data   map[uuid.UUID]profile.Profile
	err    error
	calls  int
	gotIDs []uuid.UUID
}

func (s *stubAuthors) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]profile.Profile, error) {
	s.calls++
	s.gotIDs = ids
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

func ptr(id uuid.UUID) *uuid.UUID { return &id }

func makePost(title string, catID, authorID *uuid.UUID) blog.Post {
	now := time.Now()
	return blog.Post{
		ID:          uuid.New(),
		Title:       title,
		Slug:        title,
		CategoryID:  catID,
		AuthorID:    authorID,
		PublishedAt: &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func newTestService(repo *stubRepo, cats *stubCategories, authors *stubAuthors) blog.BlogService {
	return NewBlogService(repo, cats, authors, nil, nil, swr.Options{
		FreshFor: time.Minute,
		IdleTTL:  10 * time.Minute,
	})
}

// ===== TESTS =====

func TestListPostsIssuesOneFetchPerRelation(t *testing.T) {
	catA, catB := uuid.New(), uuid.New()
	authorX, authorY, authorZ := uuid.New(), uuid.New(), uuid.New()

	// Ten posts spread over two categories and three authors.
	posts := []blog.Post{}
	catIDs := []*uuid.UUID{ptr(catA), ptr(catB)}
	authorIDs := []*uuid.UUID{ptr(authorX), ptr(authorY), ptr(authorZ)}
	for i := 0; i < 10; i++ {
		posts = append(posts, makePost("post", catIDs[i%2], authorIDs[i%3]))
	}

	repo := &stubRepo{posts: posts}
	cats := &stubCategories{data: map[uuid.UUID]category.Category{
		catA: {ID: catA, Name: "Old School", Slug: "old-school"},
		catB: {ID: catB, Name: "Cuidados", Slug: "cuidados"},
	}}
	authors := &stubAuthors{data: map[uuid.UUID]profile.Profile{
		authorX: {ID: authorX, FirstName: "Ana", LastName: "Lima"},
		authorY: {ID: authorY, FirstName: "Rafael", LastName: "Costa"},
		authorZ: {ID: authorZ, FirstName: "Bia", LastName: "Souza"},
	}}

	svc := newTestService(repo, cats, authors)
	defer svc.Close()

	page, err := svc.ListPosts(context.Background(), blog.PostFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Posts, 10)

	// One posts query, then one batch fetch per relation type, regardless
	// of row count.
	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, 1, cats.calls)
	assert.Equal(t, 1, authors.calls)
	assert.ElementsMatch(t, []uuid.UUID{catA, catB}, cats.gotIDs)
	assert.ElementsMatch(t, []uuid.UUID{authorX, authorY, authorZ}, authors.gotIDs)

	for _, row := range page.Posts {
		assert.NotEmpty(t, row.CategoryName)
		assert.NotEmpty(t, row.AuthorName)
		assert.NotEqual(t, category.PlaceholderName, row.CategoryName)
		assert.NotEqual(t, profile.PlaceholderName, row.AuthorName)
	}
}

func TestListPostsServedFromCacheWithinFreshness(t *testing.T) {
	repo := &stubRepo{posts: []blog.Post{makePost("a", nil, nil)}}
	cats := &stubCategories{}
	authors := &stubAuthors{}

	svc := newTestService(repo, cats, authors)
	defer svc.Close()

	filter := blog.PostFilter{Limit: 10}
	_, err := svc.ListPosts(context.Background(), filter)
	require.NoError(t, err)
	_, err = svc.ListPosts(context.Background(), filter)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls, "second read inside the freshness window must not hit the repository")
}

func TestListPostsDegradesToPlaceholdersOnRelationFailure(t *testing.T) {
	catID, authorID := uuid.New(), uuid.New()
	repo := &stubRepo{posts: []blog.Post{makePost("a", ptr(catID), ptr(authorID))}}
	cats := &stubCategories{err: errors.New("categories table unavailable")}
	authors := &stubAuthors{err: errors.New("profiles table unavailable")}

	svc := newTestService(repo, cats, authors)
	defer svc.Close()

	page, err := svc.ListPosts(context.Background(), blog.PostFilter{Limit: 10})
	require.NoError(t, err, "a failed relation fetch must not fail the listing")
	require.Len(t, page.Posts, 1)
	assert.Equal(t, category.PlaceholderName, page.Posts[0].CategoryName)
	assert.Equal(t, profile.PlaceholderName, page.Posts[0].AuthorName)
}

func TestAttachRelationsPlaceholders(t *testing.T) {
	danglingCat, danglingAuthor := uuid.New(), uuid.New()

	posts := []blog.Post{
		makePost("no refs", nil, nil),
		makePost("dangling refs", ptr(danglingCat), ptr(danglingAuthor)),
	}

	rows := attachRelations(posts, nil, nil)
	require.Len(t, rows, 2)

	for _, row := range rows {
		assert.Equal(t, category.PlaceholderName, row.CategoryName)
		assert.Equal(t, "sem-categoria", row.CategorySlug)
		assert.Equal(t, profile.PlaceholderName, row.AuthorName)
		assert.Empty(t, row.AuthorAvatar)
	}
}

func TestAttachRelationsResolvesKnownIDs(t *testing.T) {
	catID, authorID := uuid.New(), uuid.New()
	posts := []blog.Post{makePost("resolved", ptr(catID), ptr(authorID))}

	cats := map[uuid.UUID]category.Category{
		catID: {ID: catID, Name: "Realismo", Slug: "realismo"},
	}
	authors := map[uuid.UUID]profile.Profile{
		authorID: {ID: authorID, FirstName: "João", LastName: "Gonçalves", AvatarURL: "http://cdn/avatar.jpg"},
	}

	rows := attachRelations(posts, cats, authors)
	require.Len(t, rows, 1)
	assert.Equal(t, "Realismo", rows[0].CategoryName)
	assert.Equal(t, "realismo", rows[0].CategorySlug)
	assert.Equal(t, "João Gonçalves", rows[0].AuthorName)
	assert.Equal(t, "http://cdn/avatar.jpg", rows[0].AuthorAvatar)
}

func TestCollectRelationIDsDeduplicates(t *testing.T) {
	catID, authorID := uuid.New(), uuid.New()
	posts := []blog.Post{
		makePost("a", ptr(catID), ptr(authorID)),
		makePost("b", ptr(catID), ptr(authorID)),
		makePost("c", nil, nil),
	}

	catIDs, authorIDs := collectRelationIDs(posts)
	assert.Equal(t, []uuid.UUID{catID}, catIDs)
	assert.Equal(t, []uuid.UUID{authorID}, authorIDs)
}

func TestMutationInvalidatesCachedListings(t *testing.T) {
	repo := &stubRepo{posts: []blog.Post{makePost("a", nil, nil)}}
	svc := newTestService(repo, &stubCategories{}, &stubAuthors{})
	defer svc.Close()

	filter := blog.PostFilter{Limit: 10}
	_, err := svc.ListPosts(context.Background(), filter)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), uuid.New(), blog.CreatePostRequest{
		Title: "Novo estilo",
		Body:  "conteúdo",
	})
	require.NoError(t, err)

	_, err = svc.ListPosts(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls, "a mutation must drop cached listings")
}
