package tui

import (
	"fmt"
	"strings"

	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/domain"
)

// RenderFrame renders a header line for the frame followed by one indented
// line per node of the snapshot.
func (p *Palette) RenderFrame(frame uint64, status domain.Status, nodes []behavior.NodeState) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "frame %d: %s\n", frame, p.Status(status))
	for _, n := range nodes {
		fmt.Fprintf(&sb, "  %s%s #%d %s\n", strings.Repeat("  ", n.Depth), n.Type, n.Index, p.State(n.State))
	}
	return sb.String()
}
