package sysinfo_test

import (
	"testing"
	"time"

	"github.com/NitishVankina/ServerPet/internal/sysinfo"
	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00 B"},
		{512, "512.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sysinfo.FormatBytes(tt.in))
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "5m", sysinfo.FormatDuration(5*time.Minute))
	assert.Equal(t, "2h 30m", sysinfo.FormatDuration(2*time.Hour+30*time.Minute))
	assert.Equal(t, "1d 1h 1m", sysinfo.FormatDuration(25*time.Hour+time.Minute))
	assert.Equal(t, "0m", sysinfo.FormatDuration(10*time.Second))
}
