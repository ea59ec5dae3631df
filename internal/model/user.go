// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

// User represents the identity and display data of an account.
//
// WHY Bio string (not *string)?
// The bio is optional — a user may never write one. We use an empty string as
// the zero value rather than a nullable pointer — simpler to work with and
// safe to display. The 160-character limit is enforced at edit time by the
// service, not here: the model holds data, mutators own validation.
type User struct {
	ID     string `json:"id"`     // Opaque unique identifier, immutable once created
	Name   string `json:"name"`   // Non-empty display name
	Avatar string `json:"avatar"` // URI of the profile image
	Bio    string `json:"bio"`    // Optional biography (may be empty)
}
