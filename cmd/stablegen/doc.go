// Command stablegen generates the hourglass layers for an abstract C++ class.
//
// Given a header such as
//
//	class IWork {
//	public:
//	    virtual void DoWork() const = 0;
//	    virtual ~IWork() = default;
//	};
//
// it writes Stable/IWork.h next to the header. The generated file holds
// detail::IWorkBridge, which owns the implementation and forwards every
// operation to it; IWorkProxy, which implements IWork by forwarding to the
// bridge; and CreateStableIWork, which wraps an implementation in both.
//
// Usage:
//
//	stablegen [flags] <header>
//	stablegen inspect [--format yaml|json] <header>
//	stablegen check <header>
//	stablegen watch <header>
//
// Exit status is 0 on success, 1 on failure (or stale output for check) and
// 2 on a usage error.
package main
