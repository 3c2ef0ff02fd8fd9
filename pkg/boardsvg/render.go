package boardsvg

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"github.com/boardgen/boardcore/pkg/boardconfig"
	"github.com/boardgen/boardcore/pkg/placer"
	"github.com/boardgen/boardcore/pkg/router"
	"github.com/boardgen/boardcore/pkg/schematic"
)

// Render produces the SVG document for layout, per §4.4/§6. routes may
// be nil or empty; in that case ratsnest lines are drawn instead (when
// opts.ShowRatsnest), one straight segment between each consecutive
// pair of a net's terminal pin centers.
//
// Coordinates are formatted to at most two decimal places; nothing in
// this package rounds further than that.
func Render(layout *placer.Layout, s *schematic.Schematic, routes []router.RoutedPath, opts boardconfig.RenderCfg) []byte {
	var buf bytes.Buffer

	wi := int(math.Ceil(layout.Width))
	hi := int(math.Ceil(layout.Height))
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%.2fmm" height="%.2fmm" viewBox="0 0 %d %d">`+"\n",
		layout.Width, layout.Height, wi, hi)

	if len(routes) == 0 && opts.ShowRatsnest {
		writeRatsnest(&buf, layout, s)
	}
	writeComponents(&buf, layout, s)
	writeRoutes(&buf, routes)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// writeRatsnest draws a thin gray line between each consecutive pair of
// terminal pin centers of every routable net, per §4.4.
func writeRatsnest(buf *bytes.Buffer, layout *placer.Layout, s *schematic.Schematic) {
	for _, n := range s.RoutableNets() {
		points := terminalCenters(layout, n)
		for i := 0; i+1 < len(points); i++ {
			a, b := points[i], points[i+1]
			fmt.Fprintf(buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="gray" stroke-width="0.2" />`+"\n",
				a.X, a.Y, b.X, b.Y)
		}
	}
}

// terminalCenters resolves a net's ports, in order, to the board-space
// center of each port's parent component.
func terminalCenters(layout *placer.Layout, n *schematic.Net) []schematic.Point {
	var out []schematic.Point
	for _, port := range n.Ports {
		parent, ok := port.Parent()
		if !ok {
			continue
		}
		placed, ok := layout.By(parent)
		if !ok {
			continue
		}
		out = append(out, placed.Center())
	}
	return out
}

// writeComponents draws each placed component's rectangle and, if
// assigned, its refdes label, per §4.4/§6.
func writeComponents(buf *bytes.Buffer, layout *placer.Layout, s *schematic.Schematic) {
	components := append([]placer.PlacedComponent(nil), layout.Components...)
	sort.Slice(components, func(i, j int) bool {
		return schematic.CompareRefs(components[i].Ref, components[j].Ref)
	})

	for _, c := range components {
		b := c.Bounds
		fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="lightblue" stroke="blue" stroke-width="0.5" />`+"\n",
			b.X, b.Y, b.Width, b.Height)

		inst, ok := s.Instances[c.Ref]
		if !ok || inst.ReferenceDesignator == "" {
			continue
		}
		fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" font-size="4px">%s</text>`+"\n",
			b.X+2, b.Y+5, escapeText(inst.ReferenceDesignator))
	}
}

// writeRoutes draws each routed net's polyline in a deterministic
// per-net color, per §4.4/§6.
func writeRoutes(buf *bytes.Buffer, routes []router.RoutedPath) {
	for _, path := range routes {
		if len(path.Points) < 2 {
			continue
		}
		fmt.Fprintf(buf, `<polyline points="%s" fill="none" stroke="%s" stroke-width="0.3" />`+"\n",
			pointsAttr(path.Points), netColor(path.NetName))
	}
}

func pointsAttr(points []schematic.Point) string {
	var b bytes.Buffer
	for i, p := range points {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.2f,%.2f", p.X, p.Y)
	}
	return b.String()
}

// escapeText escapes the minimal set of characters that must not
// appear raw inside SVG text content.
func escapeText(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
