package ui

// DraftBinding is the composer text owned by the host page. The
// conversation view reads it on every render and writes it on every edit.
type DraftBinding interface {
	Text() string
	Set(text string)
}

// Draft is the page's DraftBinding.
type Draft struct {
	text string
}

// NewDraft returns an empty draft
func NewDraft() *Draft {
	return &Draft{}
}

// Text returns the current composer text
func (d *Draft) Text() string {
	return d.text
}

// Set replaces the composer text
func (d *Draft) Set(text string) {
	d.text = text
}
