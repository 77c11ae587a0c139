package entity

// TokenPair is the access/refresh pair issued by the backend's token
// endpoint. Both are opaque to the console.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Valid reports whether the pair can authenticate requests.
func (t TokenPair) Valid() bool {
	return t.Access != "" && t.Refresh != ""
}
