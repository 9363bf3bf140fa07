package service

import (
	"context"
	"testing"
	"time"

	"tattoo-backend/internal/domains/comment"
	"tattoo-backend/internal/domains/profile"
	"tattoo-backend/pkg/swr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== STUBS =====

type stubRepo struct {
	byID      map[uuid.UUID]comment.Comment
	parents   []comment.Comment
	replies   []comment.Comment
	created   []comment.Comment
	listCalls int
}

func (s *stubRepo) Create(ctx context.Context, c *comment.Comment) error {
	s.created = append(s.created, *c)
	return nil
}

func (s *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	if c, ok := s.byID[id]; ok {
		return &c, nil
	}
	return nil, comment.ErrCommentNotFound
}

func (s *stubRepo) ListApprovedTopLevel(ctx context.Context, postID uuid.UUID, limit, offset int) ([]comment.Comment, int64, error) {
	s.listCalls++
	return s.parents, int64(len(s.parents)), nil
}

func (s *stubRepo) ListApprovedReplies(ctx context.Context, parentIDs []uuid.UUID) ([]comment.Comment, error) {
	allowed := make(map[uuid.UUID]struct{}, len(parentIDs))
	for _, id := range parentIDs {
		allowed[id] = struct{}{}
	}
	out := []comment.Comment{}
	for _, r := range s.replies {
		if r.ParentID != nil {
			if _, ok := allowed[*r.ParentID]; ok {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (s *stubRepo) ListPending(ctx context.Context, limit, offset int) ([]comment.Comment, int64, error) {
	return nil, 0, nil
}

func (s *stubRepo) Approve(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, comment.ErrCommentNotFound
	}
	c.IsApproved = true
	return &c, nil
}

func (s *stubRepo) Reject(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, comment.ErrCommentNotFound
	}
	now := time.Now()
	c.IsApproved = false
	c.RejectedAt = &now
	return &c, nil
}

func (s *stubRepo) DeleteRejectedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type stubAuthors struct {
	data   map[uuid.UUID]profile.Profile
	calls  int
	gotIDs []uuid.UUID
}

func (s *stubAuthors) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]profile.Profile, error) {
	s.calls++
	s.gotIDs = ids
	return s.data, nil
}

func approved(postID, userID uuid.UUID, parentID *uuid.UUID) comment.Comment {
	return comment.Comment{
		ID:         uuid.New(),
		PostID:     postID,
		UserID:     userID,
		ParentID:   parentID,
		Content:    "olá",
		IsApproved: true,
		CreatedAt:  time.Now(),
	}
}

func newTestService(repo *stubRepo, authors *stubAuthors) comment.CommentService {
	return NewCommentService(repo, authors, swr.Options{
		FreshFor: time.Minute,
		IdleTTL:  10 * time.Minute,
	})
}

// ===== TESTS =====

func TestCreateForcesUnapproved(t *testing.T) {
	repo := &stubRepo{byID: map[uuid.UUID]comment.Comment{}}
	svc := newTestService(repo, &stubAuthors{})
	defer svc.Close()

	c, err := svc.Create(context.Background(), uuid.New(), uuid.New(), comment.CreateCommentRequest{
		Content: "primeira!",
	})
	require.NoError(t, err)
	assert.False(t, c.IsApproved, "new comments must always start unapproved")
	assert.True(t, c.Pending())
	require.Len(t, repo.created, 1)
	assert.False(t, repo.created[0].IsApproved)
}

func TestCreateReplyRequiresApprovedTopLevelParentOfSamePost(t *testing.T) {
	postID := uuid.New()
	otherPost := uuid.New()
	top := approved(postID, uuid.New(), nil)
	pending := approved(postID, uuid.New(), nil)
	pending.IsApproved = false
	nested := approved(postID, uuid.New(), &top.ID)
	foreign := approved(otherPost, uuid.New(), nil)

	repo := &stubRepo{byID: map[uuid.UUID]comment.Comment{
		top.ID:     top,
		pending.ID: pending,
		nested.ID:  nested,
		foreign.ID: foreign,
	}}
	svc := newTestService(repo, &stubAuthors{})
	defer svc.Close()

	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Create(ctx, userID, postID, comment.CreateCommentRequest{Content: "ok", ParentID: &top.ID})
	assert.NoError(t, err)

	_, err = svc.Create(ctx, userID, postID, comment.CreateCommentRequest{Content: "x", ParentID: &pending.ID})
	assert.ErrorIs(t, err, comment.ErrParentNotAllowed, "parent must be approved")

	_, err = svc.Create(ctx, userID, postID, comment.CreateCommentRequest{Content: "x", ParentID: &nested.ID})
	assert.ErrorIs(t, err, comment.ErrParentNotAllowed, "replies nest one level only")

	_, err = svc.Create(ctx, userID, postID, comment.CreateCommentRequest{Content: "x", ParentID: &foreign.ID})
	assert.ErrorIs(t, err, comment.ErrParentNotAllowed, "parent must belong to the same post")

	missing := uuid.New()
	_, err = svc.Create(ctx, userID, postID, comment.CreateCommentRequest{Content: "x", ParentID: &missing})
	assert.ErrorIs(t, err, comment.ErrParentNotFound)
}

func TestListByPostGroupsRepliesAndExcludesOrphans(t *testing.T) {
	postID := uuid.New()
	userA, userB := uuid.New(), uuid.New()

	p1 := approved(postID, userA, nil)
	p2 := approved(postID, userB, nil)
	r1 := approved(postID, userB, &p1.ID)
	r2 := approved(postID, userA, &p1.ID)
	notFetched := uuid.New()
	orphan := approved(postID, userA, &notFetched)

	repo := &stubRepo{
		parents: []comment.Comment{p1, p2},
		replies: []comment.Comment{r1, r2, orphan},
	}
	authors := &stubAuthors{data: map[uuid.UUID]profile.Profile{
		userA: {ID: userA, FirstName: "Ana"},
		userB: {ID: userB, FirstName: "Bia"},
	}}
	svc := newTestService(repo, authors)
	defer svc.Close()

	page, err := svc.ListByPost(context.Background(), postID, 0, 20)
	require.NoError(t, err)
	require.Len(t, page.Comments, 2)

	assert.Len(t, page.Comments[0].Replies, 2)
	assert.Empty(t, page.Comments[1].Replies)

	// One profile fetch covering parents and replies together.
	assert.Equal(t, 1, authors.calls)
	assert.ElementsMatch(t, []uuid.UUID{userA, userB}, authors.gotIDs)

	// The orphan reply never surfaces anywhere in the thread.
	for _, top := range page.Comments {
		assert.NotEqual(t, orphan.ID, top.ID)
		for _, r := range top.Replies {
			assert.NotEqual(t, orphan.ID, r.ID)
		}
	}
}

func TestListByPostUsesPlaceholderForMissingAuthor(t *testing.T) {
	postID := uuid.New()
	ghost := uuid.New()
	repo := &stubRepo{parents: []comment.Comment{approved(postID, ghost, nil)}}
	svc := newTestService(repo, &stubAuthors{})
	defer svc.Close()

	page, err := svc.ListByPost(context.Background(), postID, 0, 20)
	require.NoError(t, err)
	require.Len(t, page.Comments, 1)
	assert.Equal(t, profile.PlaceholderName, page.Comments[0].AuthorName)
}

func TestListByPostCachedWithinWindow(t *testing.T) {
	postID := uuid.New()
	repo := &stubRepo{parents: []comment.Comment{approved(postID, uuid.New(), nil)}}
	svc := newTestService(repo, &stubAuthors{})
	defer svc.Close()

	_, err := svc.ListByPost(context.Background(), postID, 0, 20)
	require.NoError(t, err)
	_, err = svc.ListByPost(context.Background(), postID, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
}

func TestApproveInvalidatesThread(t *testing.T) {
	postID := uuid.New()
	pending := approved(postID, uuid.New(), nil)
	pending.IsApproved = false

	repo := &stubRepo{
		byID:    map[uuid.UUID]comment.Comment{pending.ID: pending},
		parents: []comment.Comment{},
	}
	svc := newTestService(repo, &stubAuthors{})
	defer svc.Close()

	_, err := svc.ListByPost(context.Background(), postID, 0, 20)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), pending.ID)
	require.NoError(t, err)

	_, err = svc.ListByPost(context.Background(), postID, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls, "approval must drop the post's cached thread")
}
