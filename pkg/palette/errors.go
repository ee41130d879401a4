package palette

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSetting is matched by every *SettingError.
	ErrInvalidSetting = errors.New("invalid palette setting")

	// ErrUnknownSetting is returned by ParseSettings for keys outside the
	// settings contract.
	ErrUnknownSetting = errors.New("unknown palette setting")

	// ErrUnknownKind is returned for a Kind outside Kinds.
	ErrUnknownKind = errors.New("unknown palette kind")
)

// SettingError reports a rejected palette parameter.
type SettingError struct {
	Key     string
	Message string
	// Err is ErrUnknownSetting for unknown keys, otherwise nil.
	Err error
}

// Error implements the error interface.
func (e *SettingError) Error() string {
	return fmt.Sprintf("palette setting %q: %s", e.Key, e.Message)
}

// Unwrap returns the underlying cause.
func (e *SettingError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidSetting.
func (e *SettingError) Is(target error) bool {
	return target == ErrInvalidSetting
}

func badSetting(key, format string, args ...any) *SettingError {
	return &SettingError{Key: key, Message: fmt.Sprintf(format, args...)}
}
