package dto

// UpdateEntryRequestDTO carries manual edits to an entry's text fields.
// Empty fields keep the stored value.
type UpdateEntryRequestDTO struct {
	EntryTitle   string `json:"entry_title"`
	CleanedEntry string `json:"cleaned_entry"`
}
