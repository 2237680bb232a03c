package domain

const (
	SessionTokenCtxKey = "quill-sessionToken"
	RequesterIdCtxKey  = "quill-requesterId"
)
