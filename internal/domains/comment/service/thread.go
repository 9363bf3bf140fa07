package service

import (
	"tattoo-backend/internal/domains/comment"
	"tattoo-backend/internal/domains/profile"

	"github.com/google/uuid"
)

// collectUserIDs gathers the distinct commenter ids across parents and
// replies for a single batch profile fetch.
func collectUserIDs(parents, replies []comment.Comment) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, c := range parents {
		if _, ok := seen[c.UserID]; !ok {
			seen[c.UserID] = struct{}{}
			ids = append(ids, c.UserID)
		}
	}
	for _, c := range replies {
		if _, ok := seen[c.UserID]; !ok {
			seen[c.UserID] = struct{}{}
			ids = append(ids, c.UserID)
		}
	}
	return ids
}

// assembleThread is the pure merge step: it attaches resolved authors and
// groups replies onto their parents with one linear partition. Replies
// whose parent is not in the fetched page are dropped, never orphaned at
// the top level. Missing profiles degrade to the studio placeholder.
func assembleThread(parents, replies []comment.Comment, authors map[uuid.UUID]profile.Profile) []comment.CommentWithAuthor {
	withAuthor := func(c comment.Comment) comment.CommentWithAuthor {
		author := profile.Placeholder()
		if resolved, ok := authors[c.UserID]; ok {
			author = resolved
		}
		return comment.CommentWithAuthor{
			Comment:      c,
			AuthorName:   author.FullName(),
			AuthorAvatar: author.AvatarURL,
		}
	}

	byParent := make(map[uuid.UUID][]comment.CommentWithAuthor, len(parents))
	parentSet := make(map[uuid.UUID]struct{}, len(parents))
	for _, p := range parents {
		parentSet[p.ID] = struct{}{}
	}

	for _, r := range replies {
		if r.ParentID == nil {
			continue
		}
		if _, ok := parentSet[*r.ParentID]; !ok {
			continue
		}
		byParent[*r.ParentID] = append(byParent[*r.ParentID], withAuthor(r))
	}

	result := make([]comment.CommentWithAuthor, 0, len(parents))
	for _, p := range parents {
		row := withAuthor(p)
		row.Replies = byParent[p.ID]
		result = append(result, row)
	}
	return result
}
