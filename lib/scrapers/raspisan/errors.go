package raspisan

import "errors"

// fetch-level failures, mirroring the portal's known failure modes
var (
	ErrServersDown  = errors.New("portal servers down")
	ErrBadResponse  = errors.New("malformed response from portal")
	ErrRetrieve     = errors.New("request failed on our side")
	ErrDataMismatch = errors.New("surname does not match pin code")
)

// structural parse failures, these abort the whole table parse since
// wrong geometry would silently misalign every cell after it
var (
	ErrScheduleRows  = errors.New("failed to parse schedules (rows)")
	ErrScheduleDate  = errors.New("failed to parse schedules (dates)")
	ErrGradeRow      = errors.New("malformed grade row")
	ErrSemesterRange = errors.New("grade table count exceeds semester slots")
)
