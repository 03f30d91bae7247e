package styles

const (
	AppIcon string = "⧉"

	CheckIcon   string = "✓"
	ErrorIcon   string = "✖"
	WarningIcon string = "⚠"
	InfoIcon    string = "ℹ"
	LinkIcon    string = "⇄"
	RadioOn     string = "◉"
	RadioOff    string = "○"
	ChipOn      string = "●"
	ChipOff     string = "○"
	DropdownArr string = "▾"
)
