package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObject(t *testing.T) {
	doc := []byte(`{
		"$id": "abc",
		"chunksTotal": 3,
		"sizeOriginal": 9007199254740993,
		"ratio": 0.5,
		"signed": true,
		"mimeType": null,
		"tags": ["a", "b"],
		"nested": {"k": "v"}
	}`)

	obj, err := ParseObject(doc)
	require.NoError(t, err)

	t.Run("scalars", func(t *testing.T) {
		assert.Equal(t, "abc", obj.String("$id"))
		assert.Equal(t, int64(3), obj.Int("chunksTotal"))
		assert.Equal(t, 0.5, obj.Float("ratio"))
		assert.True(t, obj.Bool("signed"))
		assert.True(t, obj["mimeType"].IsNull())
	})

	t.Run("large integers stay exact", func(t *testing.T) {
		assert.Equal(t, int64(9007199254740993), obj.Int("sizeOriginal"))
	})

	t.Run("containers", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b"}, obj.Strings("tags"))
		assert.Equal(t, "v", obj.Object("nested").String("k"))
		assert.Equal(t, KindArray, obj["tags"].Kind())
	})

	t.Run("absent members default", func(t *testing.T) {
		assert.Equal(t, "", obj.String("missing"))
		assert.Equal(t, int64(0), obj.Int("missing"))
		assert.Nil(t, obj.Array("missing"))
	})

	t.Run("wrong kind defaults", func(t *testing.T) {
		assert.Equal(t, int64(0), obj.Int("$id"))
		assert.Equal(t, "", obj.String("chunksTotal"))
	})
}

func TestParseObjectRejectsNonObject(t *testing.T) {
	_, err := ParseObject([]byte(`[1,2,3]`))
	assert.Error(t, err)

	_, err = ParseObject([]byte(`not json`))
	assert.Error(t, err)
}

func TestValueText(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Null(), ""},
		{"bool", Bool(true), "true"},
		{"int", Int(25), "25"},
		{"float", Float(1.5), "1.5"},
		{"string", String("hello"), "hello"},
		{"array", Array(String("a"), Int(1)), `["a",1]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Text())
		})
	}
}

func TestFromInterface(t *testing.T) {
	v, err := FromInterface(map[string]interface{}{
		"n":    json.Number("12"),
		"f":    2.25,
		"list": []interface{}{"x", int64(7)},
	})
	require.NoError(t, err)

	obj, ok := v.AsObject()
	require.True(t, ok)
	assert.Equal(t, int64(12), obj.Int("n"))
	assert.Equal(t, 2.25, obj.Float("f"))

	list := obj.Array("list")
	require.Len(t, list, 2)
	s, _ := list[0].AsString()
	assert.Equal(t, "x", s)
	n, _ := list[1].AsInt()
	assert.Equal(t, int64(7), n)

	_, err = FromInterface(struct{}{})
	assert.Error(t, err)
}

func TestValueJSONRoundTrip(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`{"a":[1,"two",null]}`), &v))

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":[1,"two",null]}`, string(data))
}
