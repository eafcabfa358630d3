package store

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonrobin/taskpad/pkg/model"
)

func TestEncodeDecode_roundTrip(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	tasks := []model.Task{
		{Name: "Buy milk", Status: model.INCOMPLETE, CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 987654321, time.UTC)},
		{Name: "Call \"mom\"", Status: model.COMPLETE, CreatedAt: time.Date(2023, 12, 31, 23, 59, 59, 1, loc)},
	}

	raw, err := Encode(tasks)
	require.NoError(t, err)

	got, err := Decode(raw)
	require.NoError(t, err)

	if diff := cmp.Diff(tasks, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	for i := range tasks {
		assert.True(t, tasks[i].Equal(got[i]))
		assert.Equal(t, tasks[i].CreatedAt.UnixNano(), got[i].CreatedAt.UnixNano())
	}
}

func TestEncode_format(t *testing.T) {
	raw, err := Encode([]model.Task{{
		Name:      "a",
		Status:    model.COMPLETE,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"a","status":"complete","createdAt":"2024-01-02T03:04:05Z"}]`, raw)

	raw, err = Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestDecode_legacyState(t *testing.T) {
	raw := `[{"name":"Buy milk","state":"complete","createdAt":"2024-02-03T10:11:12.345Z"}]`

	got, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.COMPLETE, got[0].Status)
	assert.True(t, got[0].CreatedAt.Equal(time.Date(2024, 2, 3, 10, 11, 12, 345000000, time.UTC)))
}

func TestDecode_invalid(t *testing.T) {
	for _, raw := range []string{
		`{"name":"a"}`,
		`[{"name":"a","status":"pending","createdAt":"2024-01-02T03:04:05Z"}]`,
		`[{"name":"","status":"complete","createdAt":"2024-01-02T03:04:05Z"}]`,
		`[{"name":"a","status":"complete","createdAt":"yesterday"}]`,
	} {
		_, err := Decode(raw)
		assert.Error(t, err, "Decode(%s)", raw)
	}

	got, err := Decode("")
	assert.NoError(t, err)
	assert.Empty(t, got)
}
