/*
Package provider fetches license text that licenserc turns into header
definition files.

	            +-------------+
	            |  Provider   |
	            |  (License)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|  GitHub   |           |   URL   |
	| Licenses  |           |  (HTTP) |
	+-----------+           +---------+

🎯 Purpose:
- Abstracts where license text comes from
- Resolves a license key (e.g. "mit") to its full text
- Lists the licenses a source knows about

🔄 Flow:
1. The init command reads the license block of the configuration
2. Get looks up the provider factory by name
3. GetLicense returns the text
4. template.Generate comments it for every language

🔍 Example:

	p, err := provider.Get(ctx, "github")
	lic, err := p.GetLicense(ctx, "apache-2.0")
	def, _ := template.Generate(lic.Body, language.Default())
*/
package provider
