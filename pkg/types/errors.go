package types

import "errors"

// Expected-absence conditions surface as sentinels so callers can translate
// them without string matching. Anything else coming out of the store is
// wrapped and propagated unchanged.
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrProjectNotFound       = errors.New("project not found")
	ErrNeedNotFound          = errors.New("need not found")
	ErrParticipationNotFound = errors.New("participation not found")
	ErrTokenNotFound         = errors.New("token not found")
	ErrSchoolNotFound        = errors.New("school not found")

	ErrDuplicate     = errors.New("duplicated resource")
	ErrValidation    = errors.New("validation failed")
	ErrInvalidUpload = errors.New("unsupported upload type")
)
