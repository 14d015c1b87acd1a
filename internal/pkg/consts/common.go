package consts

const (
	MimePrefixImage = "image"
)

const (
	TaskStatusPending = "pending"
	TaskStatusRunning = "running"
	TaskStatusDone    = "done"
	TaskStatusFailed  = "failed"
)

const (
	DefaultAvatarURL = "default_avatar.png"
)
