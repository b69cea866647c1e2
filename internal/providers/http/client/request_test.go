package client

import (
	"encoding/json"
	"testing"

	"github.com/GriffinCanCode/appwrite-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringify(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "abc", "abc"},
		{"bool", true, "true"},
		{"int", 25, "25"},
		{"int64", int64(-7), "-7"},
		{"float", 1.5, "1.5"},
		{"whole float", float64(3), "3"},
		{"json number", json.Number("9007199254740993"), "9007199254740993"},
		{"value", types.String("v"), "v"},
		{"map", map[string]any{"a": 1}, `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stringify(tt.value))
		})
	}
}

func TestSequence(t *testing.T) {
	items, ok := sequence([]int{1, 2})
	assert.True(t, ok)
	assert.Equal(t, []any{1, 2}, items)

	items, ok = sequence(types.Array(types.String("x"), types.Int(2)))
	assert.True(t, ok)
	assert.Len(t, items, 2)

	_, ok = sequence([]byte("raw"))
	assert.False(t, ok)

	_, ok = sequence("scalar")
	assert.False(t, ok)
}

func TestQueryValues(t *testing.T) {
	values := queryValues(map[string]any{
		"limit":   25,
		"queries": []any{`equal("a", 1)`, "limit(5)"},
		"skip":    nil,
	})

	assert.Equal(t, "25", values.Get("limit"))
	assert.Equal(t, []string{`equal("a", 1)`, "limit(5)"}, values["queries[]"])
	assert.NotContains(t, values, "skip")
}

func TestJSONBodyOmitsNil(t *testing.T) {
	body, err := jsonBody(map[string]any{"name": "a", "search": nil})
	require.NoError(t, err)
	assert.Equal(t, mimeJSON, body.contentType)
	assert.JSONEq(t, `{"name":"a"}`, string(body.data))

	body, err = jsonBody(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(body.data))
}

func TestMultipartBodyPointerFile(t *testing.T) {
	body, err := multipartBody(map[string]any{
		"file": &FilePart{Filename: "a.bin", Data: []byte{1}},
	})
	assert.NoError(t, err)
	assert.Contains(t, body.contentType, "multipart/form-data; boundary=")
	assert.Contains(t, string(body.data), `filename="a.bin"`)
	assert.Contains(t, string(body.data), "Content-Type: application/octet-stream")

	_, err = multipartBody(map[string]any{"file": (*FilePart)(nil)})
	assert.ErrorIs(t, err, ErrInvalidFileParam)
}
