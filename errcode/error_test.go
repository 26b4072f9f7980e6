package errcode

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreErrString(t *testing.T) {
	tests := []struct {
		in   StoreErr
		want string
	}{
		{ErrorCorruptCoinRecord, "coin record failed to decode"},
		{ErrorCorruptNameRecord, "name record failed to decode"},
		{ErrorCorruptNameHistory, "name history record failed to decode"},
		{ErrorNotExistInStoreMap, "Unknown code (" + strconv.Itoa(int(ErrorNotExistInStoreMap)) + ")"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, test.in.String())
	}
}

func TestNewAndIsErrorCode(t *testing.T) {
	err := New(ErrorCorruptCoinRecord)
	assert.True(t, IsErrorCode(err, ErrorCorruptCoinRecord))
	assert.False(t, IsErrorCode(err, ErrorCorruptNameRecord))

	pe, ok := err.(ProjectError)
	assert.True(t, ok)
	assert.Equal(t, "store", pe.Module)
}
