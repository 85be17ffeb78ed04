package xlog

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	assert.Equal(t, KeyError, attr.Key)
	assert.Equal(t, "boom", attr.Value.String())

	assert.Equal(t, "", Err(nil).Value.String())
}

func TestAttrBuilders(t *testing.T) {
	assert.Equal(t, "engine", Component("engine").Value.String())
	assert.Equal(t, time.Second, Duration(time.Second).Value.Duration())
	assert.Equal(t, int64(42), Count(42).Value.Int64())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: " INFO ", want: LevelInfo},
		{in: "warning", want: LevelWarn},
		{in: "Error", want: LevelError},
		{in: "verbose", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLevelTextRoundTrip(t *testing.T) {
	data, err := LevelWarn.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "WARN", string(data))

	var l Level
	assert.NoError(t, l.UnmarshalText([]byte("error")))
	assert.Equal(t, LevelError, l)
}
