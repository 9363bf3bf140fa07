package comment

import "errors"

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrParentNotFound   = errors.New("parent comment not found")
	ErrParentNotAllowed = errors.New("replies can only target an approved top-level comment of the same post")
)
