package model

import "time"

// Post represents a blog post. AuthorID is a weak reference to a User;
// it is not enforced as a foreign key and survives author deletion.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null;index"`
	Content   string    `json:"content,omitempty" gorm:"type:text"`
	Published bool      `json:"published" gorm:"default:false;not null;index"`
	AuthorID  *uint     `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostPatch carries a partial post update. Only non-nil fields are applied.
type PostPatch struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Content   *string `json:"content,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

// Apply merges the set fields onto the post. AuthorID is fixed at creation.
func (p *PostPatch) Apply(post *Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.Published != nil {
		post.Published = *p.Published
	}
}
