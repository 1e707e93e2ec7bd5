package sqlite

import "time"

// Movie is a row of the movies table.
type Movie struct {
	MovieID  int64  `gorm:"column:movie_id;primaryKey;autoIncrement"`
	Title    string `gorm:"column:title"`
	Overview string `gorm:"column:overview"`
}

// TableName implements gorm's tabler.
func (Movie) TableName() string { return TableMovies }

// User is a row of the users table. Not used by the search flow.
type User struct {
	UserID   int64  `gorm:"column:user_id;primaryKey;autoIncrement"`
	Username string `gorm:"column:username"`
	// Password is stored as provided by whoever populates the table.
	Password string `gorm:"column:password" json:"-"`
	Email    string `gorm:"column:email"`
}

// TableName implements gorm's tabler.
func (User) TableName() string { return TableUsers }

// Comment is a row of the comments table. Not used by the search flow.
type Comment struct {
	CommentID int64     `gorm:"column:comment_id;primaryKey;autoIncrement"`
	MovieID   int64     `gorm:"column:movie_id"`
	UserID    int64     `gorm:"column:user_id"`
	Comment   string    `gorm:"column:comment"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName implements gorm's tabler.
func (Comment) TableName() string { return TableComments }
