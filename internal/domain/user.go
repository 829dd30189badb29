package domain

// User is the signed-in identity supplied by the identity provider.
// Components read it, never mutate it.
type User struct {
	UID         string `json:"uid"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	IDToken     string `json:"-"`
}

// CanUpload reports whether the user carries the uid an upload needs.
func (u *User) CanUpload() bool {
	return u != nil && u.UID != ""
}

// CanComment reports whether the user carries the bearer credential a comment needs.
func (u *User) CanComment() bool {
	return u != nil && u.IDToken != ""
}
