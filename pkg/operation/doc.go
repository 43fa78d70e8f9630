/*
Package operation runs licenserc's header operations over a directory tree.

	+-------------+
	|  Operation  |
	| (add/remove |
	|   /check)   |
	+------+------+
	       |
	+------+------+      +-------------+
	|  Discover   | ---> |  Resolver   |
	| (globs)     |      | (.license-  |
	+------+------+      |  header)    |
	       |             +------+------+
	+------+------+             |
	|  Replacer   | <-----------+
	|  (batch)    |
	+------+------+
	       |
	+------+------+
	|   Status    |
	| (store +    |
	|  reporting) |
	+-------------+

🎯 Purpose:
- Finds the files a project wants headers on
- Resolves the nearest definition file for every directory
- Hands the files to the batch replacer in one go

🔄 Flow:
1. Discover walks the root honoring include/exclude globs
2. Resolver loads the definition that applies to each directory
3. The replacer inserts, replaces or removes headers
4. Outcomes flow to the status manager

🔍 Example:

	op := operation.New(operation.KindApply, operation.Options{Root: ".", Config: cfg, Store: mgr, Reporter: mgr})
	err := operation.NewRunner(logger).Run(ctx, op)
*/
package operation
