// Package memory holds the per-device state that lives only as long as the
// process: the order feed, the tracker and the open map views.
//
// Every store guards its state with a mutex and hands out copies. No lock is
// held while callers talk to the network.
package memory
