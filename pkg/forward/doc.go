// Package forward hands completed transfers to a downstream consumer.
//
// One transaction yields one Packet; the Manager buffers packets in a
// bounded queue and a single worker goroutine pushes them through a
// Sender, typically the wireless uplink. When the queue is full the
// oldest packet is dropped, recent frames are worth more than stale
// ones on a live tether. Send failures park the manager in ERROR until
// Resume, with the failed packet kept at the head of the queue for
// another attempt.
package forward
