// Package rtprio raises the scheduling priority of audio threads.
package rtprio

// Nice is the niceness Raise asks for. Unprivileged processes usually may
// not go below 0, in which case Raise fails and the thread keeps its priority.
const Nice = -11
