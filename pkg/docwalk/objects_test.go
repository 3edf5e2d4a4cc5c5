package docwalk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nieomylnieja/docwalk/pkg/obj"
)

func TestSignatureString(t *testing.T) {
	tests := []struct {
		name      string
		signature Signature
		expected  string
	}{
		{
			name:      "empty",
			signature: Signature{},
			expected:  "()",
		},
		{
			name: "annotated parameters and return",
			signature: Signature{
				Params: []obj.Param{
					{Name: "self", Kind: obj.ParamPositionalOrKeyword},
					{Name: "name", Kind: obj.ParamPositionalOrKeyword, Annotation: "str", Default: `"Rex"`},
				},
				Return: "Animal",
			},
			expected: `(self, name: str = "Rex") -> Animal`,
		},
		{
			name: "variadic",
			signature: Signature{
				Params: []obj.Param{{Name: "parts", Kind: obj.ParamVariadic, Annotation: "string"}},
			},
			expected: "(...parts: string)",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.signature.String())
		})
	}
}
