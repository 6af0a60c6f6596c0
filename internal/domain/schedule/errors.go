package schedule

import "errors"

var (
	ErrEmptyShift             = errors.New("standard start and end must differ")
	ErrEmptyNightWindow       = errors.New("night window start and end must differ")
	ErrInvalidStandardMinutes = errors.New("standard daily minutes must be between 1 and 1440")
	ErrBreakTooLong           = errors.New("break must be shorter than the standard shift")
)
