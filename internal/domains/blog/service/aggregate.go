package service

import (
	"tattoo-backend/internal/domains/blog"
	"tattoo-backend/internal/domains/category"
	"tattoo-backend/internal/domains/profile"

	"github.com/google/uuid"
)

// collectRelationIDs walks the rows once and gathers the distinct,
// non-nil foreign keys. The returned slices drive exactly one batch
// fetch per relation type.
func collectRelationIDs(posts []blog.Post) (categoryIDs, authorIDs []uuid.UUID) {
	seenCats := make(map[uuid.UUID]struct{})
	seenAuthors := make(map[uuid.UUID]struct{})

	for _, p := range posts {
		if p.CategoryID != nil {
			if _, ok := seenCats[*p.CategoryID]; !ok {
				seenCats[*p.CategoryID] = struct{}{}
				categoryIDs = append(categoryIDs, *p.CategoryID)
			}
		}
		if p.AuthorID != nil {
			if _, ok := seenAuthors[*p.AuthorID]; !ok {
				seenAuthors[*p.AuthorID] = struct{}{}
				authorIDs = append(authorIDs, *p.AuthorID)
			}
		}
	}
	return categoryIDs, authorIDs
}

// attachRelations is the pure merge step. It never fails: a nil foreign
// key, an id missing from the maps, or nil maps (failed relation fetch)
// all degrade to the placeholder values.
func attachRelations(
	posts []blog.Post,
	categories map[uuid.UUID]category.Category,
	authors map[uuid.UUID]profile.Profile,
) []blog.PostWithRelations {
	result := make([]blog.PostWithRelations, 0, len(posts))

	for _, p := range posts {
		row := blog.PostWithRelations{Post: p}

		cat := category.Placeholder()
		if p.CategoryID != nil {
			if resolved, ok := categories[*p.CategoryID]; ok {
				cat = resolved
			}
		}
		row.CategoryName = cat.Name
		row.CategorySlug = cat.Slug

		author := profile.Placeholder()
		if p.AuthorID != nil {
			if resolved, ok := authors[*p.AuthorID]; ok {
				author = resolved
			}
		}
		row.AuthorName = author.FullName()
		row.AuthorAvatar = author.AvatarURL

		result = append(result, row)
	}
	return result
}
