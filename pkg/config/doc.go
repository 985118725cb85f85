// Package config loads rule tables and runtime settings from TOML or YAML.
//
// A config file starts from a built-in preset and overrides individual
// entries:
//
//	preset = "catalog"
//	two_line_title_threshold = 70
//	enable_image_fallback = false
//
//	[icons.counts]
//	"6" = "Icons 2 x 3 Columns"
//
//	[layouts]
//	contact = "Contact us"
//
// Keys that are omitted keep the preset's value. The result is validated
// before it is returned, so a loaded [Config] always yields a usable
// selector.
package config
