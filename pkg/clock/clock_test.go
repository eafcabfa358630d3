package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 3, 7, 0, 5, 0, 0, time.UTC), "12:05 AM 03/07/2024"},
		{time.Date(2024, 3, 7, 9, 30, 0, 0, time.UTC), "09:30 AM 03/07/2024"},
		{time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC), "12:00 AM 03/07/2024"},
		{time.Date(2024, 3, 7, 13, 5, 0, 0, time.UTC), "01:05 PM 03/07/2024"},
		{time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), "11:59 PM 12/31/2024"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Format(c.in), "Format(%v)", c.in)
	}
}
