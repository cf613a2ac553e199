package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lambdalisten/lambdalisten/internal/errors"
)

func TestErrorRegistryCoversEveryMTCCode(t *testing.T) {
	for i := 1; i <= 18; i++ {
		code := fmtCode(i)
		info, ok := errors.GetErrorInfo(code)
		if !assert.True(t, ok, "missing registry entry for %s", code) {
			continue
		}
		assert.Equal(t, "typecheck", info.Phase)
		assert.NotEmpty(t, info.Description)
	}
}

func TestGetErrorInfoUnknownCode(t *testing.T) {
	_, ok := errors.GetErrorInfo("MTC999")
	assert.False(t, ok)
}

func fmtCode(n int) string {
	digits := [3]byte{byte('0' + n/100), byte('0' + (n/10)%10), byte('0' + n%10)}
	return "MTC" + string(digits[:])
}
