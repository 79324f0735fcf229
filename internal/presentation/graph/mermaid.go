package graph

import (
	"fmt"
	"strings"

	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/domain"
)

// GraphOverlay selects the dynamic state drawn on top of the structure.
type GraphOverlay struct {
	// States styles every node by its lifecycle state.
	States bool
	// Current highlights the node with this construction index, if any.
	Current *int
}

// GenerateMermaid produces a Mermaid flowchart of the tree rooted at root.
// Nodes are numbered in pre-order and shaped by kind:
// - Composite: [[Subroutine]], edges labelled with the child position
// - Decorator: ([Stadium])
// - Leaf: [Rectangle]
// It also applies overlay styles if provided.
func GenerateMermaid(root *behavior.Behavior, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if root == nil {
		return sb.String()
	}

	ids := make(map[*behavior.Behavior]string)
	var order []*behavior.Behavior
	root.Walk(func(node *behavior.Behavior, _ int) bool {
		ids[node] = fmt.Sprintf("n%d", len(order))
		order = append(order, node)
		return true
	})

	for _, node := range order {
		opener, closer := "[", "]"
		switch node.Kind() {
		case domain.KindComposite:
			opener, closer = "[[", "]]"
		case domain.KindDecorator:
			opener, closer = "([", "])"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", ids[node], opener, label(node), closer))
	}

	for _, node := range order {
		children := node.Children()
		for i, child := range children {
			arrow := "-->"
			if node.Kind() == domain.KindComposite && len(children) > 1 {
				arrow = fmt.Sprintf("-- %d -->", i+1)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", ids[node], arrow, ids[child]))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef running fill:#fff8e1,stroke:#f9a825,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef succeeded fill:#e8f5e9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#fbe9e7,stroke:#c62828,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef errored fill:#f3e5f5,stroke:#6a1b9a,stroke-width:3px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		for _, node := range order {
			if overlay.States {
				if class := stateClass(node.State()); class != "" {
					sb.WriteString(fmt.Sprintf("    class %s %s;\n", ids[node], class))
				}
			}
			if overlay.Current != nil && node.Index() == *overlay.Current {
				sb.WriteString(fmt.Sprintf("    class %s current;\n", ids[node]))
			}
		}
	}

	return sb.String()
}

func label(node *behavior.Behavior) string {
	// Escape double quotes for Mermaid labels
	l := strings.ReplaceAll(node.Type(), "\"", "'")
	if node.Index() >= 0 {
		l = fmt.Sprintf("%s #%d", l, node.Index())
	}
	return l
}

func stateClass(s domain.LifecycleState) string {
	switch s {
	case domain.StateStarted:
		return "running"
	case domain.StateSucceeded:
		return "succeeded"
	case domain.StateFailed:
		return "failed"
	case domain.StateErrored:
		return "errored"
	default:
		return ""
	}
}
