package domain

import "strings"

// NormalizeComment trims a comment, preserving absence: a nil pointer
// stays nil, a present value is trimmed in place. An explicitly
// supplied empty string survives as "" so a patch can clear a comment.
func NormalizeComment(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	return &trimmed
}

// NormalizeCommentNonNil trims a comment and guarantees a non-nil
// result, mapping absence to the empty string.
func NormalizeCommentNonNil(raw *string) *string {
	if raw == nil {
		empty := ""
		return &empty
	}
	return NormalizeComment(raw)
}
