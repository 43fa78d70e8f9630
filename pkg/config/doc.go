/*
Package config loads and validates the licenserc project configuration.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+-----------+
	      |           |                       |
	+-----+-----+ +---+-------+         +----+----+
	|   YAML    | |   JSON    |         |   HCL   |
	| Parser    | | Parser    |         | Parser  |
	+-----------+ +-----------+         +---------+

🎯 Purpose:
- Finds the project file (.licenserc.yaml, .yml, .hcl or .json)
- Parses it with the parser registered for its extension
- Validates it and fills in defaults
- Turns it into the pieces the replacer needs: the language registry,
  the keyword list and the user properties

🔄 Flow:
1. Discover looks for a project file in a directory
2. Load reads it and picks a parser with GetParser
3. Validate checks patterns, languages and properties
4. Registry, KeywordList and StaticProperties feed the replacer

🤝 Interfaces:
- Parser: format-specific parsing, registered in init

🔍 Example:

	path, err := config.Discover(".")
	cfg, err := config.Load(ctx, path)

	reg, err := cfg.Registry()
	r, err := replacer.New(replacer.Options{
		Registry: reg,
		Keywords: cfg.KeywordList(),
		Store:    mgr,
	})

HCL files may interpolate the current year:

	properties = {
		Copyright = "2019-${year}"
	}
*/
package config
