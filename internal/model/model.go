// Package model defines domain entities used by services and repositories.
package model

// Book is a catalog entry stored as a Book node in the graph. ID is the
// caller-supplied key, distinct from the graph store's internal node
// identifier.
type Book struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
	Cover  string `json:"cover"`
}

// User is a reader stored as a User node in the graph. Its ID is
// caller-supplied and independent of the credential store's row id.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Credential is an account row in the relational store. PasswordHash and
// Salt are scrubbed before the record leaves the service layer.
type Credential struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash []byte `json:"password_hash"`
	Salt         []byte `json:"salt"`
}

// AccountInfo is the public projection of a Credential. It has no hash or
// salt fields, so listing accounts cannot leak them.
type AccountInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
