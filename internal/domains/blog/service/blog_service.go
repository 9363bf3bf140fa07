package service

import (
	"context"
	"fmt"
	"time"

	"tattoo-backend/internal/domains/blog"
	"tattoo-backend/internal/domains/blog/job"
	"tattoo-backend/internal/domains/category"
	"tattoo-backend/internal/domains/profile"
	"tattoo-backend/internal/infrastructure/storage"
	"tattoo-backend/internal/shared/utils"
	"tattoo-backend/pkg/logger"
	"tattoo-backend/pkg/swr"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"
)

// CategoryResolver and AuthorResolver are the only two capabilities the
// aggregation layer needs from its sibling domains: one batch lookup each.
type CategoryResolver interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]category.Category, error)
}

type AuthorResolver interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]profile.Profile, error)
}

type blogService struct {
	repo       blog.PostRepository
	categories CategoryResolver
	authors    AuthorResolver
	storage    *storage.MinIOStorage
	queue      *asynq.Client

	listCache *swr.Cache[blog.PostPage]
	postCache *swr.Cache[blog.PostWithRelations]
}

func NewBlogService(
	repo blog.PostRepository,
	categories CategoryResolver,
	authors AuthorResolver,
	store *storage.MinIOStorage,
	queueClient *asynq.Client,
	cacheOpts swr.Options,
) blog.BlogService {
	return &blogService{
		repo:       repo,
		categories: categories,
		authors:    authors,
		storage:    store,
		queue:      queueClient,
		listCache:  swr.New[blog.PostPage](cacheOpts),
		postCache:  swr.New[blog.PostWithRelations](cacheOpts),
	}
}

func (s *blogService) ListPosts(ctx context.Context, filter blog.PostFilter) (*blog.PostPage, error) {
	// Step 1: Normalize pagination so equivalent requests share a cache key
	if filter.Limit <= 0 || filter.Limit > 50 {
		filter.Limit = 10
	}
	if filter.Page < 0 {
		filter.Page = 0
	}

	// Step 2: Serve from the listing cache, loading on miss
	key := swr.Key("posts", filter)
	page, err := s.listCache.Get(ctx, key, func(ctx context.Context) (blog.PostPage, error) {
		return s.loadPage(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// loadPage is the cache loader: one posts query, then exactly one batch
// fetch per relation type, then the pure merge.
func (s *blogService) loadPage(ctx context.Context, filter blog.PostFilter) (blog.PostPage, error) {
	posts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return blog.PostPage{}, err
	}

	cats, authors := s.fetchRelations(ctx, posts)
	return blog.PostPage{
		Posts: attachRelations(posts, cats, authors),
		Total: total,
	}, nil
}

// fetchRelations issues the two relation fetches concurrently and awaits
// both. A failed fetch is logged and degrades to a nil map, which the
// merge turns into placeholders; it never fails the listing.
func (s *blogService) fetchRelations(ctx context.Context, posts []blog.Post) (map[uuid.UUID]category.Category, map[uuid.UUID]profile.Profile) {
	catIDs, authorIDs := collectRelationIDs(posts)

	var (
		cats    map[uuid.UUID]category.Category
		authors map[uuid.UUID]profile.Profile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.categories.GetByIDs(gctx, catIDs)
		if err != nil {
			logger.Error("blog: category fetch failed, using placeholders", err)
			return nil
		}
		cats = m
		return nil
	})
	g.Go(func() error {
		m, err := s.authors.GetByIDs(gctx, authorIDs)
		if err != nil {
			logger.Error("blog: author fetch failed, using placeholders", err)
			return nil
		}
		authors = m
		return nil
	})
	_ = g.Wait()

	return cats, authors
}

func (s *blogService) GetBySlug(ctx context.Context, slug string) (*blog.PostWithRelations, error) {
	key := swr.Key("post", map[string]string{"slug": slug})
	row, err := s.postCache.Get(ctx, key, func(ctx context.Context) (blog.PostWithRelations, error) {
		p, err := s.repo.GetBySlug(ctx, slug)
		if err != nil {
			return blog.PostWithRelations{}, err
		}
		single := []blog.Post{*p}
		cats, authors := s.fetchRelations(ctx, single)
		return attachRelations(single, cats, authors)[0], nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *blogService) Create(ctx context.Context, authorID uuid.UUID, req blog.CreatePostRequest) (*blog.Post, error) {
	// Step 1: Validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Derive slug when the client did not provide one
	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Title)
	}

	now := time.Now()
	p := &blog.Post{
		ID:         uuid.New(),
		Title:      req.Title,
		Slug:       slug,
		Body:       req.Body,
		Excerpt:    req.Excerpt,
		CategoryID: req.CategoryID,
		AuthorID:   &authorID,
		Tags:       req.Tags,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	// Step 3: Persist as draft (published_at stays null)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.InvalidateAll()
	logger.Info("post created: " + p.Slug)
	return p, nil
}

func (s *blogService) Update(ctx context.Context, id uuid.UUID, req blog.UpdatePostRequest) (*blog.Post, error) {
	// Step 1: Validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Load current state
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Step 3: Apply partial update
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Body != nil {
		p.Body = *req.Body
	}
	if req.Excerpt != nil {
		p.Excerpt = *req.Excerpt
	}
	if req.CategoryID != nil {
		p.CategoryID = req.CategoryID
	}
	if req.Tags != nil {
		p.Tags = *req.Tags
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.InvalidateAll()
	return p, nil
}

func (s *blogService) Publish(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	p, err := s.repo.Publish(ctx, id)
	if err != nil {
		return nil, err
	}

	s.InvalidateAll()
	logger.Info("post published: " + p.Slug)
	return p, nil
}

func (s *blogService) UploadCover(ctx context.Context, id uuid.UUID, data []byte, contentType string) (string, error) {
	// Step 1: The post must exist; remember the old cover for cleanup
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	oldKey := s.storage.KeyFromURL(p.CoverURL)

	// Step 2: Upload under a timestamped key so clients never see a
	// half-replaced object
	key := fmt.Sprintf("posts/%s/cover-%d", id, time.Now().Unix())
	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return "", err
	}

	// Step 3: Point the post at the new object
	if err := s.repo.SetCover(ctx, id, url); err != nil {
		return "", err
	}

	// Step 4: Queue removal of the replaced object
	if oldKey != "" && s.queue != nil {
		task, err := job.NewDeleteImagesTask([]string{oldKey})
		if err == nil {
			if _, err := s.queue.EnqueueContext(ctx, task); err != nil {
				logger.Error("blog: failed to enqueue image cleanup", err)
			}
		}
	}

	s.InvalidateAll()
	return url, nil
}

func (s *blogService) InvalidateAll() {
	s.listCache.InvalidatePrefix("posts")
	s.postCache.InvalidatePrefix("post")
}

func (s *blogService) Close() {
	s.listCache.Close()
	s.postCache.Close()
}
