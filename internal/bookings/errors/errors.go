package errors

import "errors"

var (
	ErrSlotTaken = errors.New("slot already booked for that staff member")

	ErrStorageRead = errors.New("booking storage unreadable")

	ErrStorageWrite = errors.New("booking storage write failed")

	ErrStoreClosed = errors.New("booking store is closed")
)
