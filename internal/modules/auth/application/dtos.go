package application

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /create. ArtisticName is only read
// when an administrator creates an artist.
type RegisterRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	ArtisticName string `json:"artistic_name"`
	Address      string `json:"address"`
	BirthDate    string `json:"birth_date"`
	Contact      string `json:"contact"`
}

type CreateAdminRequest struct {
	Username string
	Password string
	Name     string
}
