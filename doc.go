/*
Package waitx provides small coordination primitives for waiting on asynchronous events.
It grew out of automation code that kept re-implementing the same three things: wait for the next event that matches a condition, give up after a deadline, and make sure the subscription and timer are torn down no matter which of those happened first.

The root package holds the listener registry and the timed wait [Engine].
The promise package provides the pending-computation primitive used for abort signals and arbitrary async work, and the eventx package provides the in-process event source.
*/
package waitx
