package dto

// GoogleLoginResponse represents the response for Google login initiation
type GoogleLoginResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}

// GoogleUserInfo is the subset of the userinfo payload used for sign-in.
type GoogleUserInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Verified bool   `json:"verified_email"`
}
