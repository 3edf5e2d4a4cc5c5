package docwalk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nieomylnieja/docwalk/pkg/obj"
)

func TestClassify(t *testing.T) {
	arena := &nodeArena{}
	cls := obj.NewClass("Thing")
	cls.Define("fetch", &obj.StaticMethod{Func: &obj.Func{Name: "fetch"}})
	cls.Define("count", &obj.ClassMethod{Func: &obj.Func{Name: "count"}})
	cls.Define("run", &obj.Func{Name: "run"})
	clsNode := arena.add(cls, "Thing", -1)

	childOfClass := func(name string) node {
		v, _ := cls.GetAttr(name)
		return arena.add(v, name, clsNode.idx)
	}

	tests := []struct {
		name     string
		node     node
		expected kind
	}{
		{"module", arena.add(obj.NewModule("pkg"), "pkg", -1), kindModule},
		{"class", clsNode, kindClass},
		{"staticmethod by declaration wrapper", childOfClass("fetch"), kindStaticMethod},
		{"classmethod by declaration wrapper", childOfClass("count"), kindClassMethod},
		{"plain function under a class is a method", childOfClass("run"), kindMethod},
		{"coroutine function", arena.add(&obj.Func{Name: "f", Async: true}, "f", -1), kindCoroutineFunction},
		{"function", arena.add(&obj.Func{Name: "f"}, "f", -1), kindFunction},
		{"property", arena.add(&obj.Property{Get: &obj.Func{Name: "p"}}, "p", clsNode.idx), kindProperty},
		{"anything else is an attribute", arena.add(42, "n", -1), kindAttribute},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, classify(tc.node))
		})
	}
}
