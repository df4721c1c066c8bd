// Package models defines the core domain models for the family recipe book.
//
// # Models
//
//   - User: registered account, optionally a member of one Family
//   - Family: the membership boundary; owned by exactly one keeper
//   - Recipe: optionally scoped to the author's family at creation time
//   - Comment: attached to a recipe, not scoped on its own
//   - Notification: one row per recipient, produced by the fan-out engine
//
// # Legacy records
//
// Users and recipes created before families existed carry no family. The
// models represent that with nil pointers (User.Membership, Recipe.FamilyID)
// and never with empty strings, so "absent" and "null" read the same way.
//
// # Timestamps
//
// All timestamps are UTC strings in a fixed-width ISO-8601 layout (see
// Timestamp), assigned by the server at write time. The fixed width keeps
// lexical order equal to chronological order in the store.
package models
