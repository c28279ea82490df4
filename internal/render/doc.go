// Package render turns a frame graph snapshot into Graphviz output.
//
// ToDOT emits deterministic DOT text: nodes and edges follow the snapshot's
// id ordering, so identical graphs always produce identical bytes. The
// start frame gets a heavy outline, absorbing frames a double border, and
// parallel transitions collapse into one edge labeled with its weight.
//
// RenderSVG and RenderPNG lay the DOT text out with the embedded Graphviz
// engine; no external binary is needed.
package render
