/*
Package status owns file I/O and outcome tracking for licenserc.

	            +-------------+
	            |   Status    |
	            |  (Manager)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           | Outcome |
	| (Storage) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Reads and atomically writes the files whose headers are updated
- Tracks what happened to every file (inserted, replaced, removed, ...)
- Reports progress and a final summary
- Renders diffs of pending changes for check mode

🔄 Flow:
1. The replacer reads a file through the Manager
2. The new content is written with WriteFileAtomic (temp file + rename)
3. The replacer reports the outcome, which the Manager records and logs
4. The CLI lists the tracked files and prints the summary

🤝 Interfaces:
- replacer.ContentStore: implemented by Manager
- replacer.Reporter: implemented by Manager
- operation.Progress: implemented by Manager
- FileFormatter: formats status messages

🔍 Example:

	mgr := status.New(root, &logger)

	op := operation.New(operation.KindApply, operation.Options{Store: mgr, Reporter: mgr, Progress: mgr})
	err := op.Execute(ctx)

	for _, info := range mgr.ListFiles(ctx) {
		fmt.Println(status.FormatFileLine(info))
	}
*/
package status
