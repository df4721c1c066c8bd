package models

// Metadata keys understood by the family update operation.
const (
	MetaDescription = "description"
	MetaCoverImage  = "cover_image"
)

// Family is the membership and visibility boundary for recipes.
type Family struct {
	// ID is the unique identifier for the family (UUID format).
	ID string

	// Name is the display name of the family (e.g., "Smiths").
	Name string

	// OwnerID is the user id of the current keeper.
	OwnerID string

	// InviteCode is the 8-character uppercase code used to join.
	InviteCode string

	// Metadata holds optional free-form fields such as description and
	// cover image. Nil when nothing was ever set.
	Metadata map[string]string

	// CreatedAt is the creation timestamp.
	CreatedAt string
}

// FamilyUpdate carries a keeper's edit. Name replaces the current name when
// non-nil; Metadata keys are merged into the existing metadata.
type FamilyUpdate struct {
	Name     *string
	Metadata map[string]string
}

// Apply merges u into f.
func (u FamilyUpdate) Apply(f *Family) {
	if u.Name != nil {
		f.Name = *u.Name
	}
	if len(u.Metadata) == 0 {
		return
	}
	merged := make(map[string]string, len(f.Metadata)+len(u.Metadata))
	for k, v := range f.Metadata {
		merged[k] = v
	}
	for k, v := range u.Metadata {
		merged[k] = v
	}
	f.Metadata = merged
}
