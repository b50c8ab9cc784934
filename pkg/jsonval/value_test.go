package jsonval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbridge/noderpc/pkg/jsonval"
)

func TestValueKinds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, jsonval.KindNull, jsonval.Null().Kind())
	assert.Equal(t, jsonval.KindBool, jsonval.Bool(true).Kind())
	assert.Equal(t, jsonval.KindNumber, jsonval.Int(42).Kind())
	assert.Equal(t, jsonval.KindString, jsonval.String("x").Kind())
	assert.Equal(t, jsonval.KindArray, jsonval.Array().Kind())
	assert.Equal(t, jsonval.KindObject, jsonval.ObjectValue(jsonval.NewObject()).Kind())

	// The zero Value is null.
	var zero jsonval.Value
	assert.True(t, zero.IsNull())

	b, ok := jsonval.Bool(true).BoolVal()
	assert.True(t, ok)
	assert.True(t, b)

	num, ok := jsonval.Number("0.00000001").NumberText()
	assert.True(t, ok)
	assert.Equal(t, "0.00000001", num)

	_, ok = jsonval.String("nope").NumberText()
	assert.False(t, ok)
}

func TestObjectInsertionOrder(t *testing.T) {
	t.Parallel()

	obj := jsonval.NewObject().
		Set("zeta", jsonval.Int(1)).
		Set("alpha", jsonval.Int(2)).
		Set("mid", jsonval.Int(3))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())

	// Overwriting keeps the original position.
	obj.Set("alpha", jsonval.Int(99))
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())
	v, ok := obj.Get("alpha")
	require.True(t, ok)
	num, _ := v.NumberText()
	assert.Equal(t, "99", num)
}

func TestValueEqual(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name  string
		a, b  jsonval.Value
		equal bool
	}{
		{name: "nulls", a: jsonval.Null(), b: jsonval.Null(), equal: true},
		{name: "bools", a: jsonval.Bool(true), b: jsonval.Bool(true), equal: true},
		{name: "bool mismatch", a: jsonval.Bool(true), b: jsonval.Bool(false), equal: false},
		{name: "kind mismatch", a: jsonval.String("1"), b: jsonval.Number("1"), equal: false},
		{
			name:  "numbers compare textually",
			a:     jsonval.Number("1.0"),
			b:     jsonval.Number("1"),
			equal: false,
		},
		{
			name:  "arrays",
			a:     jsonval.Array(jsonval.Int(1), jsonval.String("a")),
			b:     jsonval.Array(jsonval.Int(1), jsonval.String("a")),
			equal: true,
		},
		{
			name:  "objects ignore key order",
			a:     jsonval.ObjectValue(jsonval.NewObject().Set("a", jsonval.Int(1)).Set("b", jsonval.Int(2))),
			b:     jsonval.ObjectValue(jsonval.NewObject().Set("b", jsonval.Int(2)).Set("a", jsonval.Int(1))),
			equal: true,
		},
		{
			name:  "objects differ by value",
			a:     jsonval.ObjectValue(jsonval.NewObject().Set("a", jsonval.Int(1))),
			b:     jsonval.ObjectValue(jsonval.NewObject().Set("a", jsonval.Int(2))),
			equal: false,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.equal, tc.a.Equal(tc.b))
		})
	}
}

func TestFrom(t *testing.T) {
	t.Parallel()

	v, err := jsonval.From("hello")
	require.NoError(t, err)
	assert.True(t, v.Equal(jsonval.String("hello")))

	v, err = jsonval.From(int64(7))
	require.NoError(t, err)
	assert.True(t, v.Equal(jsonval.Number("7")))

	v, err = jsonval.From(nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())

	// Struct fallback goes through encoding/json.
	type point struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	v, err = jsonval.From(point{X: 1, Y: 2})
	require.NoError(t, err)
	want := jsonval.ObjectValue(jsonval.NewObject().
		Set("x", jsonval.Int(1)).
		Set("y", jsonval.Int(2)))
	assert.True(t, v.Equal(want))

	_, err = jsonval.From(make(chan int))
	require.Error(t, err)
}
