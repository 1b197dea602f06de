package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Post
var (
	ErrEmptyPostID      = errors.New("post ID cannot be empty")
	ErrEmptyPostTitle   = errors.New("post title cannot be empty")
	ErrEmptyPostContent = errors.New("post content cannot be empty")
	ErrEmptyPostAuthor  = errors.New("post author cannot be empty")
)

// Post represents a single blog post: a titled, authored piece of text
// with a persisted identifier and creation time.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostPatch carries a partial update for a post. Nil fields are left
// untouched when the patch is applied.
type PostPatch struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Author  *string `json:"author"`
}

// IsEmpty reports whether the patch specifies no fields at all.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Author == nil
}

// NewPost creates a new Post with the given title, content and author.
// It generates a new UUID for the post ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewPost(title, content, author string) (*Post, error) {
	now := time.Now().UTC()
	post := &Post{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks if the Post has valid data.
// Returns an error if any field fails validation.
func (p *Post) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPostID
	}

	if p.Title == "" {
		return ErrEmptyPostTitle
	}

	if p.Content == "" {
		return ErrEmptyPostContent
	}

	if p.Author == "" {
		return ErrEmptyPostAuthor
	}

	return nil
}

// ApplyPatch merges the specified fields of the patch into the post,
// leaving omitted fields untouched, and bumps the UpdatedAt timestamp.
// CreatedAt is never modified. Returns an error if the patched post
// fails validation.
func (p *Post) ApplyPatch(patch PostPatch) error {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Author != nil {
		p.Author = *patch.Author
	}

	if err := p.Validate(); err != nil {
		return err
	}

	p.UpdatedAt = time.Now().UTC()
	return nil
}
