package scene

const (
	// default width of dialogue line in east asian width.
	DefaultDialogueWidth = 28

	// default gravity for Jump, in pixels per second squared.
	DefaultJumpGravity = 1500.0
)
