/*
Package status manages file storage and outcome tracking for refit.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           | Summary |
	| (Storage) |           | (Report)|
	+-----------+           +---------+

🎯 Purpose:
- Owns every read and write of entity files
- Writes atomically (temp file + rename) so a failed write never leaves a
  half-overwritten source file
- Tracks per-file outcomes (rewritten/unchanged/planned/failed) for the
  end-of-run summary

🔄 Flow:
1. Driver reads the entity file through the manager
2. Driver hands back transformed content for atomic write-back
3. Manager records the outcome and serves summary counts

📝 Design Philosophy:
The rewrite itself is destructive in place with no backup; the atomic
temp-rename only guards against partial-write corruption, it does not keep
the prior content. Anything beyond that is version control's job.
*/
package status
