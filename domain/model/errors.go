package model

import "errors"

var (
	// ErrChannelNotFound is returned when a channel id has no matching channel.
	ErrChannelNotFound = errors.New("channel not found")
	// ErrFetchFailed wraps any failure of the YouTube API call itself.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrInvalidArgument reports a caller error such as an empty id.
	ErrInvalidArgument = errors.New("invalid argument")
)
