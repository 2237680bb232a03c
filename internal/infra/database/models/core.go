package models

// User rows are provisioned by the identity provider; quill never writes
// them.
type User struct {
	ID    string `json:"id" gorm:"primaryKey;type:text"`
	Name  string `json:"name" gorm:"type:text;not null;index"`
	Age   *int   `json:"age,omitempty"`
	Email string `json:"email" gorm:"type:text;not null;uniqueIndex"`
}

type Post struct {
	ID      string `json:"id" gorm:"primaryKey;type:text"`
	Title   string `json:"title" gorm:"type:text;not null"`
	Content string `json:"content" gorm:"type:text;not null"`
	Views   int    `json:"views" gorm:"not null;default:0"`
	// unix seconds; CreatedAt is set once, UpdatedAt stays null until the
	// first edit. gorm's automatic timestamp tracking is disabled so the
	// repository controls both explicitly.
	CreatedAt int64  `json:"createdAt" gorm:"<-:create;not null;index;autoCreateTime:false"`
	UpdatedAt *int64 `json:"updatedAt" gorm:"autoUpdateTime:false"`
}

// UserPost is the many-to-many ownership relation: a post may have multiple
// authors and an author multiple posts.
type UserPost struct {
	UserID string `json:"userId" gorm:"type:text;primaryKey"`
	User   User   `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	PostID string `json:"postId" gorm:"type:text;primaryKey"`
	Post   Post   `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}
