package typeinfo

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

const packageName = "github.com/nieomylnieja/docwalk/internal/typeinfo"

type customString string

type customStruct struct{}

type customMap map[string]int

type customSlice []customMap

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected Info
	}{
		{
			name:     "int",
			value:    0,
			expected: Info{Name: "int", Kind: "int"},
		},
		{
			name:     "pointer to int",
			value:    new(int),
			expected: Info{Name: "int", Kind: "int"},
		},
		{
			name:     "slice of int",
			value:    []int{},
			expected: Info{Name: "[]int", Kind: "[]int"},
		},
		{
			name:     "slice of named type",
			value:    []customString{},
			expected: Info{Name: "[]customString", Package: packageName, Kind: "[]string"},
		},
		{
			name:     "map of string to int",
			value:    map[string]int{},
			expected: Info{Name: "map[string]int", Kind: "map[string]int"},
		},
		{
			name:     "named string",
			value:    customString(""),
			expected: Info{Name: "customString", Package: packageName, Kind: "string"},
		},
		{
			name:     "named struct",
			value:    customStruct{},
			expected: Info{Name: "customStruct", Package: packageName, Kind: "struct"},
		},
		{
			name:     "pointer to named struct",
			value:    &customStruct{},
			expected: Info{Name: "customStruct", Package: packageName, Kind: "struct"},
		},
		{
			name:     "named map",
			value:    customMap{},
			expected: Info{Name: "customMap", Package: packageName, Kind: "map[string]int"},
		},
		{
			name:     "named slice of named maps",
			value:    customSlice{},
			expected: Info{Name: "customSlice", Package: packageName, Kind: "[]map[string]int"},
		},
		{
			name:     "slice of pointers to named struct",
			value:    []*customStruct{},
			expected: Info{Name: "[]customStruct", Package: packageName, Kind: "[]struct"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Get(reflect.TypeOf(tc.value)))
		})
	}
}

func TestGetNil(t *testing.T) {
	assert.Equal(t, Info{}, Get(nil))
}
