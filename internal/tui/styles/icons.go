package styles

const (
	CheckIcon    string = "✓"
	ErrorIcon    string = "✗"
	WarningIcon  string = "⚠"
	InfoIcon     string = "ℹ"
	ModifiedIcon string = "●"
	LockIcon     string = "🔒"
	FolderIcon   string = "📁"

	ToggleOn  string = "[x]"
	ToggleOff string = "[ ]"

	ChoicePrev string = "‹"
	ChoiceNext string = "›"
)
