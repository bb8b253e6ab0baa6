/*
Package iteratable implements an insertion-ordered visit-once queue.

Algorithms around grammar analysis and parser table construction are often
more straightforward to describe as worklist constructions: symbols or item
kernels are discovered mid-traversal and enqueued, and every discovered value
must be visited exactly once. Queue provides exactly this contract, which is
distinct from both a FIFO and a set: values are delivered oldest-first, a
value that was ever added is never delivered again, and values may be added
while iteration is in progress.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package iteratable
