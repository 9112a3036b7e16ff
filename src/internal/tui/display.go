package tui

import "sync"

// panelView mirrors the citation panel's display hooks. Load runs in a
// command goroutine, so access is locked.
type panelView struct {
	mu         sync.Mutex
	hidden     bool
	preview    string
	previewErr string
	formatErr  string
	copied     bool
	copyPrompt string
}

func (v *panelView) SetSectionVisible(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hidden = !visible
}

func (v *panelView) SetPreview(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.preview = text
	v.previewErr = ""
}

func (v *panelView) SetPreviewError(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.previewErr = msg
	v.preview = ""
}

func (v *panelView) SetFormatError(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.formatErr = msg
}

func (v *panelView) SetCopyFeedback(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.copied = visible
	if visible {
		v.copyPrompt = ""
	}
}

func (v *panelView) PromptManualCopy(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.copyPrompt = msg
}

type panelSnapshot struct {
	hidden     bool
	preview    string
	previewErr string
	formatErr  string
	copied     bool
	copyPrompt string
}

func (v *panelView) snapshot() panelSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return panelSnapshot{
		hidden:     v.hidden,
		preview:    v.preview,
		previewErr: v.previewErr,
		formatErr:  v.formatErr,
		copied:     v.copied,
		copyPrompt: v.copyPrompt,
	}
}

// pageView mirrors the viewer's display hooks. Only Update touches it.
type pageView struct {
	src   string
	index int
	prev  string
	next  string
}

func (v *pageView) ShowPage(src string, index int) {
	v.src = src
	v.index = index
}

func (v *pageView) SetLabels(prev, next string) {
	v.prev = prev
	v.next = next
}
