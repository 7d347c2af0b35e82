// Saturn decides which aged items to keep.
//
// Given a collection of timestamped items (backup files, snapshots,
// log archives) and a retention rules string like "recent5,days14",
// it partitions the items into the ones worth keeping and the ones
// whose retention window has passed. Saturn only decides; it never
// deletes, moves, or archives anything.
//
// Usage:
//
//	# Print the backups that have aged out of retention
//	saturn filter days14,months6 /var/backups/db/*.tar.gz
//
//	# Feed paths on stdin, null separated
//	find /var/backups -name '*.tar.gz' -print0 | saturn filter days14 --stdin0 --null
//
//	# Explain a rules string
//	saturn rules check recent5,days14,weeks8
//
//	# Audit directories continuously on a schedule
//	saturn watch --config /etc/saturn/config.yaml
//
//	# Show version information
//	saturn version
//
// For complete documentation, see: https://github.com/mercator-hq/saturn
package main

func main() {
	Execute()
}
