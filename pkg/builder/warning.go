package builder

import "fmt"

// Warning reports a tree that builds but is probably not what the author
// meant, such as a composite with a single child.
type Warning struct {
	Index   int    `json:"index"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Type == "" {
		return fmt.Sprintf("node %d: %s", w.Index, w.Message)
	}
	return fmt.Sprintf("node %d (%s): %s", w.Index, w.Type, w.Message)
}
