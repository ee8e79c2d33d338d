// Command flexium-render-check mounts a small fixture tree onto a
// headless host and prints how many top-level nodes it mounted and the
// fixture's rendered text; any reconciliation warnings are logged to
// stderr through internal/logx — a quick smoke test of the
// renderer (dom package) without a browser, grounded on the teacher's
// debug/main.go "build a container, mount, inspect" harness but running
// against dom/testhost instead of a live syscall/js document.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/flexium-dev/flexium/dom"
	"github.com/flexium-dev/flexium/dom/testhost"
	"github.com/flexium-dev/flexium/fnode"
	"github.com/flexium-dev/flexium/reactivity"
)

func main() {
	items := flag.Int("items", 3, "number of fixture list items to mount")
	flag.Parse()

	h := testhost.New()
	container := h.CreateElement("div").(*testhost.Node)

	count := reactivity.CreateSignal(*items)
	tree := fixture(count)

	dispose := dom.Render(h, tree, container)
	defer dispose()

	fmt.Printf("mounted %d top-level node(s) under %s\n", len(container.ChildNodes), container)
	fmt.Printf("fixture text: %q\n", container.Text())
	os.Exit(0)
}

func fixture(count reactivity.Signal[int]) *fnode.Node {
	return fnode.F("ul", nil, func() any {
		n := count.Get()
		out := make([]any, n)
		for i := 0; i < n; i++ {
			out[i] = fnode.F("li", fnode.Props{"key": i}, fmt.Sprintf("item %d", i))
		}
		return out
	})
}
