package model

import "time"

// Comment is a reader comment attached to a post. Comments are insert-only:
// nothing in the system updates or deletes them.
//
// Username is not a column on the comments table — it is populated by the
// join against the user table when comments are read per post, so the
// client can show who wrote each comment without a second lookup.
type Comment struct {
	ID        int64     `json:"id"         db:"id"`
	Content   string    `json:"content"    db:"content"`
	UserID    int64     `json:"user_id"    db:"user_id"`
	PostID    int64     `json:"post_id"    db:"post_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Username  string    `json:"username,omitempty" db:"username"`
}
