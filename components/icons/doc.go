// Package icons provides the icon catalog behind the button icon dropdown,
// the option list builder used by the property panel and a small net/http
// handler that returns JSON options for the same list.
//
// The catalog is a JSON (or YAML) document of the form
// {"icons": [{"id": "...", "name": "..."}]}. The default catalog is embedded
// under data/icons-fa.json. A catalog that cannot be parsed is an error;
// callers building the panel treat it as fatal.
package icons
