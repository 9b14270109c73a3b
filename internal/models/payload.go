package models

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type SignUpRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	IsBlocked bool   `json:"is_blocked"`
}

type LinkRequest struct {
	URL string `json:"url"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// HashResponse is returned by the per-user link endpoint.
type HashResponse struct {
	Hash string `json:"hash"`
}

// ShortURLResponse is returned by the public link endpoint.
type ShortURLResponse struct {
	ShortURL string `json:"short_url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
