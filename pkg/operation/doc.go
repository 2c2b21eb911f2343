/*
Package operation implements the driver that retrofits entity files to the
target interface contract.

	+-------------+
	|  Operation  |
	|  (Driver)   |
	+------+------+
	       |
	+------+------+
	|   Rewrite   |
	| (Transform) |
	+------+------+

🎯 Purpose:
- Orchestrates the per-entity rewrite pipeline
- Loads file text, applies the rule table, swaps the builder block
- Delegates file storage to the status package
- Reports progress via the console logger

🔄 Flow:
1. Expands the configured entities (globs resolved, ignores applied)
2. For each entity, in order: read → pattern rules → block replace → write
3. Tracks every outcome with the status package
4. Aborts the whole run on the first read or write failure

⚡ Key Responsibilities:
- Sequencing: strictly one file at a time, no interleaving
- Error policy: no-match is a no-op, I/O failure is fatal, no retries
- Dry-run support: plan runs the full pipeline but never writes

🤝 Interfaces:
- Operation: a runnable unit (apply, plan)
- status.Manager: file I/O and outcome tracking
- log.Logger: user-facing progress lines

📝 Design Philosophy:
The driver stays a thin sequencer. All matching knowledge lives in the
rewrite package; all file system knowledge lives in the status package. A
buffer belongs to exactly one processEntity call and dies when the file is
written back, so entities can never contaminate each other.

🔍 Example:

	op, err := operation.NewApplyOperation(operation.Options{
		Config:    cfg,
		StatusMgr: statusMgr,
		Logger:    logger,
		Rules:     rewrite.MigrationRules(),
		Block:     rewrite.CreateResultBlock(),
	})
	if err != nil {
		return err
	}
	err = operation.NewRunner(&zlog).Run(ctx, op)
*/
package operation
