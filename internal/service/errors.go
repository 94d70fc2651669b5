package service

import "errors"

var (
	ErrProfileNotFound        = errors.New("flatmate profile not found")
	ErrInvalidProfile         = errors.New("invalid flatmate profile")
	ErrUserNotFound           = errors.New("user not found")
	ErrRateLimited            = errors.New("rate limited")
	ErrSelfConnection         = errors.New("cannot connect with yourself")
	ErrAlreadyConnected       = errors.New("already connected")
	ErrRequestAlreadySent     = errors.New("connection request already sent")
	ErrRequestAlreadyReceived = errors.New("connection request already received")
	ErrRequestNotFound        = errors.New("connection request not found")
	ErrNotRecipient           = errors.New("not the recipient of this request")
	ErrRequestProcessed       = errors.New("connection request already processed")
)
