// Package signals provides the in-memory primitives that connect the provisioning
// coordinator with its transport listeners.
//
// A Mailbox is a single slot: every write replaces the previous value and readers
// only ever see the latest completed write. A burst of writes before a read
// collapses to the last value. A Broadcast fans one notification out to every
// subscriber registered before Publish; subscribers registered afterwards never
// receive it.
package signals
