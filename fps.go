package arbor

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// NewFPSOverlay creates a node that prints the current FPS and TPS in the
// top-left corner of the scene's draw target. Add it last so it renders on
// top.
func NewFPSOverlay(s *Scene) *Node {
	node := NewNode("fps_overlay")
	node.OnRender = func(*Node) {
		dst := s.Target()
		if dst == nil {
			return
		}
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()), 4, 4)
	}
	return node
}
