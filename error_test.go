package pagedata_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/pagedata"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := pagedata.Errorf(pagedata.EINVALID, "query %q is empty", "")

	assert.Equal(t, pagedata.EINVALID, pagedata.ErrorCode(err))
	assert.Equal(t, "query \"\" is empty", pagedata.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading: %w", pagedata.Errorf(pagedata.ENOTFOUND, "file missing"))

	assert.Equal(t, pagedata.ENOTFOUND, pagedata.ErrorCode(err))
	assert.Equal(t, "file missing", pagedata.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, pagedata.EINTERNAL, pagedata.ErrorCode(err))
	assert.Equal(t, "Internal error.", pagedata.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pagedata.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pagedata.ErrorMessage(nil))
}
