package panel

// Display receives the panel's UI updates. Every hook is optional in the sense
// that an implementation may ignore it. Implementations must not call back
// into the Controller.
type Display interface {
	// SetSectionVisible hides the whole citation section when false.
	SetSectionVisible(visible bool)
	// SetPreview shows the rendered citation.
	SetPreview(text string)
	// SetPreviewError replaces the preview with an error message.
	SetPreviewError(msg string)
	// SetFormatError shows an inline note next to the preview; "" clears it.
	SetFormatError(msg string)
	// SetCopyFeedback toggles the "copied" indicator.
	SetCopyFeedback(visible bool)
	// PromptManualCopy asks the user to copy the text by hand.
	PromptManualCopy(msg string)
}

type nopDisplay struct{}

func (nopDisplay) SetSectionVisible(bool)  {}
func (nopDisplay) SetPreview(string)       {}
func (nopDisplay) SetPreviewError(string)  {}
func (nopDisplay) SetFormatError(string)   {}
func (nopDisplay) SetCopyFeedback(bool)    {}
func (nopDisplay) PromptManualCopy(string) {}

// Recorder is a Display that keeps the latest value of every hook. It backs
// headless shells and tests.
type Recorder struct {
	SectionHidden bool
	Preview       string
	PreviewError  string
	FormatError   string
	CopyFeedback  bool
	CopyPrompt    string
}

func (r *Recorder) SetSectionVisible(v bool) { r.SectionHidden = !v }
func (r *Recorder) SetPreview(text string) {
	r.Preview = text
	r.PreviewError = ""
}
func (r *Recorder) SetPreviewError(msg string) {
	r.PreviewError = msg
	r.Preview = ""
}
func (r *Recorder) SetFormatError(msg string)   { r.FormatError = msg }
func (r *Recorder) SetCopyFeedback(v bool)      { r.CopyFeedback = v }
func (r *Recorder) PromptManualCopy(msg string) { r.CopyPrompt = msg }
