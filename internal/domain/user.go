package domain

// User represents an identity provisioned by the external identity provider.
// Quill reads users, it never mutates them.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Age   *int   `json:"age,omitempty"`
	Email string `json:"email"`
}
