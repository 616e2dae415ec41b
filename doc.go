// Package hourglass generates the hourglass layers that put a stable boundary
// in front of an abstract C++ class.
//
// For an interface Name the generator emits:
//
//   - detail::NameBridge, a hidden class that owns the implementation and
//     forwards each operation to it
//   - NameProxy, which implements Name by forwarding to an owned bridge
//   - CreateStableName, a factory wrapping an implementation in both
//
// Packages:
//   - iface: recognizes the first (or a named) abstract class in header text
//   - forwarder: renders the bridge, proxy and factory through a layout registry
//   - output: resolves output paths and writes files atomically
//   - config, logger, watch: ambient support for the CLI
//   - cmd/stablegen: the command-line entry point
//
// See examples/ for sample headers.
package hourglass
