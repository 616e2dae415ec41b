// Package forwarder renders the hourglass forwarding layers for a parsed
// interface.
//
// For an interface X it emits, in this order:
//
//   - detail::XBridge: hidden, owns the real implementation and forwards every
//     operation to it.
//   - XProxy: public, derives from X, owns the bridge and forwards to it.
//   - CreateStableX: takes ownership of an implementation and returns a
//     std::unique_ptr<X> realized through the proxy.
//
// Each forwarding member keeps the source operation's return kind, parameter
// list, const qualifier and exception specification. Void operations forward with a bare
// call; everything else returns the forwarded result.
//
// Output is a pure function of the Interface and Options, so rendering the
// same input twice yields identical bytes.
package forwarder
