package post

import (
	"time"

	"github.com/pranayharishchandra/RevaMedia/internal/user"
)

type Post struct {
	ID        string          `json:"_id"`
	User      user.PublicUser `json:"user"`
	Text      string          `json:"text"`
	Img       string          `json:"img"`
	Likes     []string        `json:"likes"`
	Comments  []Comment       `json:"comments"`
	CreatedAt time.Time       `json:"createdAt"`
}

type Comment struct {
	ID        string          `json:"_id"`
	User      user.PublicUser `json:"user"`
	Text      string          `json:"text"`
	CreatedAt time.Time       `json:"createdAt"`
}
