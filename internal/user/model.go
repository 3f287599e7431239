package user

import "time"

// User is the full account record. Password holds the bcrypt hash and is
// never serialized.
type User struct {
	ID         string    `json:"_id"`
	FullName   string    `json:"fullName"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Password   string    `json:"-"` // never return
	ProfileImg string    `json:"profileImg"`
	CoverImg   string    `json:"coverImg"`
	Bio        string    `json:"bio"`
	Link       string    `json:"link"`
	Followers  []string  `json:"followers"`
	Following  []string  `json:"following"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PublicUser is the subset of User safe to return to any caller. Keeping it a
// separate type means the password can never leak through field enumeration.
type PublicUser struct {
	ID         string    `json:"_id"`
	FullName   string    `json:"fullName"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	ProfileImg string    `json:"profileImg"`
	CoverImg   string    `json:"coverImg"`
	Bio        string    `json:"bio"`
	Link       string    `json:"link"`
	Followers  []string  `json:"followers"`
	Following  []string  `json:"following"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Public projects the record onto its public view.
func (u *User) Public() PublicUser {
	followers := u.Followers
	if followers == nil {
		followers = []string{}
	}
	following := u.Following
	if following == nil {
		following = []string{}
	}
	return PublicUser{
		ID:         u.ID,
		FullName:   u.FullName,
		Username:   u.Username,
		Email:      u.Email,
		ProfileImg: u.ProfileImg,
		CoverImg:   u.CoverImg,
		Bio:        u.Bio,
		Link:       u.Link,
		Followers:  followers,
		Following:  following,
		CreatedAt:  u.CreatedAt,
	}
}
