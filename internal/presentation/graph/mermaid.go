package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/valueprop/pkg/domain"
	"github.com/aretw0/valueprop/pkg/wizard"
)

// Overlay marks progress on the step diagram.
type Overlay struct {
	CurrentStep int
	Complete    bool
}

// GenerateMermaid renders the wizard steps as a Mermaid flowchart (graph LR).
// Forward edges are "next", dotted edges are "back". The last step leads to a done node.
// With an overlay, steps before the current one are styled as visited.
func GenerateMermaid(steps []wizard.Step, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for i, s := range steps {
		fmt.Fprintf(&sb, "    %s[\"%d. %s\"]\n", nodeID(s.Number), s.Number, escape(s.Title))
		if i > 0 {
			prev := nodeID(steps[i-1].Number)
			fmt.Fprintf(&sb, "    %s -- next --> %s\n", prev, nodeID(s.Number))
			fmt.Fprintf(&sb, "    %s -. back .-> %s\n", nodeID(s.Number), prev)
		}
	}
	if len(steps) > 0 {
		fmt.Fprintf(&sb, "    %s -- complete --> done((\"Done\"))\n", nodeID(steps[len(steps)-1].Number))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		for _, s := range steps {
			switch {
			case overlay.Complete || s.Number < overlay.CurrentStep:
				fmt.Fprintf(&sb, "    class %s visited;\n", nodeID(s.Number))
			case s.Number == overlay.CurrentStep:
				fmt.Fprintf(&sb, "    class %s current;\n", nodeID(s.Number))
			}
		}
		if overlay.Complete {
			sb.WriteString("    class done current;\n")
		}
	}

	return sb.String()
}

// FromState builds the overlay for a session state.
func FromState(st domain.SessionState) *Overlay {
	return &Overlay{CurrentStep: st.CurrentStep, Complete: st.IsComplete}
}

func nodeID(n int) string {
	return fmt.Sprintf("step%d", n)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
