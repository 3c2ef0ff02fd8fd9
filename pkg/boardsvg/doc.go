// Package boardsvg renders a Layout, Schematic, and optional routed
// paths to SVG, per the bit-exact format in spec §4.4/§6: ratsnest
// lines, then component rectangles, then routed polylines, with fixed
// colors and stroke widths and two-decimal-place coordinates.
package boardsvg
