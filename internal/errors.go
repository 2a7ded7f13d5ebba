package internal

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/wal-g/tracelog"
)

// UnsetEnvVarError is used to indicate required settings that are not set.
type UnsetEnvVarError struct {
	error
}

func NewUnsetEnvVarError(names []string) UnsetEnvVarError {
	msg := "Did not set the following environment variables:\n"
	for _, v := range names {
		msg = msg + v + "\n"
	}
	return UnsetEnvVarError{errors.New(msg)}
}

func (err UnsetEnvVarError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// InvalidSettingError is returned when a setting cannot be parsed.
type InvalidSettingError struct {
	error
}

func NewInvalidSettingError(setting string, value string, cause error) InvalidSettingError {
	return InvalidSettingError{errors.Wrapf(cause, "invalid value '%s' of %s", value, setting)}
}

func (err InvalidSettingError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// ChunkIndexError is returned when a requested chunk is past the end of the container.
type ChunkIndexError struct {
	error
}

func NewChunkIndexError(index int, count int) ChunkIndexError {
	return ChunkIndexError{errors.Errorf("chunk %d requested, but the container holds %d chunks", index, count)}
}

func (err ChunkIndexError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// TornTailError is returned when appending to a container whose last chunk is incomplete.
type TornTailError struct {
	error
}

func NewTornTailError(path string, validLength int64, cause error) TornTailError {
	return TornTailError{errors.Wrapf(cause,
		"%s ends with an incomplete chunk after offset %d, run 'sdf repair' before appending", path, validLength)}
}

func (err TornTailError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

func (err TornTailError) Unwrap() error {
	return err.error
}
