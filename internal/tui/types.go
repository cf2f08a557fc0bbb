package tui

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	transcriptIndent          = "  "
)

const (
	composerPendingPlaceholder = "Atlas is answering…"
	composerCharLimit          = 500
)
