package constants

const (
	MaxNameLen = 100
)
