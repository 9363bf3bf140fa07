package service

import (
	"context"
	"fmt"
	"time"

	"tattoo-backend/internal/domains/comment"
	"tattoo-backend/internal/domains/profile"
	"tattoo-backend/pkg/logger"
	"tattoo-backend/pkg/swr"

	"github.com/google/uuid"
)

// AuthorResolver is the one capability needed from the profile domain.
type AuthorResolver interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]profile.Profile, error)
}

type commentService struct {
	repo    comment.CommentRepository
	authors AuthorResolver
	cache   *swr.Cache[comment.CommentPage]
}

func NewCommentService(repo comment.CommentRepository, authors AuthorResolver, cacheOpts swr.Options) comment.CommentService {
	return &commentService{
		repo:    repo,
		authors: authors,
		cache:   swr.New[comment.CommentPage](cacheOpts),
	}
}

func (s *commentService) Create(ctx context.Context, userID, postID uuid.UUID, req comment.CreateCommentRequest) (*comment.Comment, error) {
	// Step 1: Validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: A reply must target an approved top-level comment of the
	// same post
	if req.ParentID != nil {
		parent, err := s.repo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, comment.ErrParentNotFound
		}
		if !parent.IsApproved || parent.ParentID != nil || parent.PostID != postID {
			return nil, comment.ErrParentNotAllowed
		}
	}

	// Step 3: Persist unapproved, whatever the client sent
	now := time.Now()
	c := &comment.Comment{
		ID:         uuid.New(),
		PostID:     postID,
		UserID:     userID,
		ParentID:   req.ParentID,
		Content:    req.Content,
		IsApproved: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	// Pending comments are invisible to readers, so cached threads stay valid.
	logger.Info("comment created (pending): " + c.ID.String())
	return c, nil
}

func (s *commentService) ListByPost(ctx context.Context, postID uuid.UUID, page, limit int) (*comment.CommentPage, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if page < 0 {
		page = 0
	}

	key := swr.Key(s.postPrefix(postID), map[string]int{"page": page, "limit": limit})
	result, err := s.cache.Get(ctx, key, func(ctx context.Context) (comment.CommentPage, error) {
		return s.loadThread(ctx, postID, limit, page*limit)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// loadThread is the cache loader: one parents page, one replies fetch
// scoped to those parents, one batch profile fetch, then the pure merge.
func (s *commentService) loadThread(ctx context.Context, postID uuid.UUID, limit, offset int) (comment.CommentPage, error) {
	parents, total, err := s.repo.ListApprovedTopLevel(ctx, postID, limit, offset)
	if err != nil {
		return comment.CommentPage{}, err
	}

	parentIDs := make([]uuid.UUID, 0, len(parents))
	for _, p := range parents {
		parentIDs = append(parentIDs, p.ID)
	}

	replies, err := s.repo.ListApprovedReplies(ctx, parentIDs)
	if err != nil {
		return comment.CommentPage{}, err
	}

	// A failed profile fetch degrades to placeholder authors.
	authors, err := s.authors.GetByIDs(ctx, collectUserIDs(parents, replies))
	if err != nil {
		logger.Error("comment: author fetch failed, using placeholders", err)
		authors = nil
	}

	return comment.CommentPage{
		Comments: assembleThread(parents, replies, authors),
		Total:    total,
	}, nil
}

func (s *commentService) ListPending(ctx context.Context, page, limit int) ([]comment.Comment, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if page < 0 {
		page = 0
	}
	return s.repo.ListPending(ctx, limit, page*limit)
}

func (s *commentService) Approve(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	c, err := s.repo.Approve(ctx, id)
	if err != nil {
		return nil, err
	}

	// The comment just became visible; drop the post's cached thread.
	s.cache.InvalidatePrefix(s.postPrefix(c.PostID))
	logger.Info("comment approved: " + c.ID.String())
	return c, nil
}

func (s *commentService) Reject(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	c, err := s.repo.Reject(ctx, id)
	if err != nil {
		return nil, err
	}

	// Rejecting an already-visible comment (or a parent with visible
	// replies) changes the thread.
	s.cache.InvalidatePrefix(s.postPrefix(c.PostID))
	logger.Info("comment rejected: " + c.ID.String())
	return c, nil
}

func (s *commentService) Close() {
	s.cache.Close()
}

func (s *commentService) postPrefix(postID uuid.UUID) string {
	return fmt.Sprintf("comments:%s", postID)
}
