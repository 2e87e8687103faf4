package view

// Data is the view model for the profile page. It mirrors the editor snapshot
// as plain values for rendering.
type Data struct {
	Name       string
	Email      string
	AvatarURL  string
	Saving     bool
	DialogOpen bool
	Deleting   bool
}
