package jsonvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeObject(t *testing.T) {
	v, ok := Decode([]byte(`{"id":"u1","age":31,"admin":false,"tags":["a","b"],"extra":null}`))
	require.True(t, ok)

	obj, ok := v.AsObject()
	require.True(t, ok)

	id, ok := obj.String("id")
	assert.True(t, ok)
	assert.Equal(t, "u1", id)

	age, ok := obj["age"].AsNumber()
	assert.True(t, ok)
	assert.Equal(t, float64(31), age)

	admin, ok := obj["admin"].AsBool()
	assert.True(t, ok)
	assert.False(t, admin)

	tags, ok := obj["tags"].AsArray()
	require.True(t, ok)
	assert.Len(t, tags, 2)

	assert.True(t, obj["extra"].IsNull())
	_, ok = obj.String("age")
	assert.False(t, ok, "number must not be read as string")
}

func TestDecodeRejectsInvalidPayloads(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"whitespace":   "   \n",
		"garbage":      "<html>oops</html>",
		"truncated":    `{"id":`,
		"trailing":     `{"id":"1"} {"id":"2"}`,
		"trailingText": `[1,2] nope`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := Decode([]byte(body))
			assert.False(t, ok)
		})
	}
}

func TestDecodeScalarDocuments(t *testing.T) {
	v, ok := Decode([]byte(`"hello"`))
	require.True(t, ok)
	s, _ := v.AsString()
	assert.Equal(t, "hello", s)

	v, ok = Decode([]byte(`null`))
	require.True(t, ok)
	assert.Equal(t, KindNull, v.Kind())
}

func TestEncodeDecodeObjectEquality(t *testing.T) {
	params := Object{
		"user_id": StringValue("u1"),
		"limit":   NumberValue(25),
		"active":  BoolValue(true),
		"filter":  ObjectValue(Object{"city": StringValue("Pune")}),
		"ids":     ArrayValue(NumberValue(1), NumberValue(2)),
		"cursor":  NullValue(),
	}

	body, err := Encode(ObjectValue(params))
	require.NoError(t, err)

	decoded, ok := Decode(body)
	require.True(t, ok)
	assert.True(t, decoded.Equal(ObjectValue(params)), "round trip mismatch: %s", body)
}

func TestEncodeSortsObjectKeys(t *testing.T) {
	body, err := Encode(ObjectValue(Object{"b": NumberValue(2), "a": NumberValue(1)}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"b":2}`, string(body))
	assert.Equal(t, `{"a":1,"b":2}`, string(body))
}

func TestEncodeNilObjectAsEmpty(t *testing.T) {
	body, err := Encode(ObjectValue(nil))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(body))
}

func TestStringRepresentation(t *testing.T) {
	cases := []struct {
		name string
		in   Value
		want string
	}{
		{"string", StringValue("u 1"), "u 1"},
		{"integer", NumberValue(42), "42"},
		{"fraction", NumberValue(1.5), "1.5"},
		{"bool", BoolValue(true), "true"},
		{"null", NullValue(), "<null>"},
		{"array", ArrayValue(NumberValue(1), StringValue("x")), `[1, "x"]`},
		{"empty object", ObjectValue(Object{}), "[:]"},
		{"object", ObjectValue(Object{"b": BoolValue(false), "a": StringValue("x")}), `["a": "x", "b": false]`},
		{"nested", ObjectValue(Object{"in": ArrayValue(ObjectValue(Object{"k": NullValue()}))}), `["in": [["k": <null>]]]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.String())
		})
	}
}

func TestFromNative(t *testing.T) {
	v, err := From(map[string]any{
		"n":    7,
		"list": []any{"a", true, nil},
	})
	require.NoError(t, err)

	want := ObjectValue(Object{
		"n":    NumberValue(7),
		"list": ArrayValue(StringValue("a"), BoolValue(true), NullValue()),
	})
	assert.True(t, v.Equal(want))

	_, err = From(struct{}{})
	assert.Error(t, err)
}

func TestEqualDistinguishesKinds(t *testing.T) {
	assert.False(t, StringValue("1").Equal(NumberValue(1)))
	assert.False(t, ArrayValue(NumberValue(1)).Equal(ArrayValue(NumberValue(1), NumberValue(2))))
	assert.False(t, ObjectValue(Object{"a": NullValue()}).Equal(ObjectValue(Object{"b": NullValue()})))
	assert.True(t, NullValue().Equal(Value{}))
}
