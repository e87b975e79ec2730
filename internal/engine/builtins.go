package engine

// jinjaFilters is the union of Jinja2 built-in filters and the filters Home
// Assistant's template environment adds. Strict template lint flags filters
// outside this set.
var jinjaFilters = map[string]bool{
	// Jinja2 built-ins
	"abs": true, "attr": true, "batch": true, "capitalize": true,
	"center": true, "count": true, "default": true, "d": true,
	"dictsort": true, "escape": true, "e": true, "filesizeformat": true,
	"first": true, "float": true, "forceescape": true, "format": true,
	"groupby": true, "indent": true, "int": true, "items": true,
	"join": true, "last": true, "length": true, "list": true,
	"lower": true, "map": true, "max": true, "min": true, "pprint": true,
	"random": true, "reject": true, "rejectattr": true, "replace": true,
	"reverse": true, "round": true, "safe": true, "select": true,
	"selectattr": true, "slice": true, "sort": true, "string": true,
	"striptags": true, "sum": true, "title": true, "tojson": true,
	"trim": true, "truncate": true, "unique": true, "upper": true,
	"urlencode": true, "urlize": true, "wordcount": true, "wordwrap": true,
	"xmlattr": true,

	// Home Assistant additions
	"add": true, "as_datetime": true, "as_local": true, "as_timedelta": true,
	"as_timestamp": true, "atan2": true, "average": true,
	"base64_decode": true, "base64_encode": true, "bitwise_and": true,
	"bitwise_or": true, "bitwise_xor": true, "bool": true, "contains": true,
	"cos": true, "device_attr": true, "device_entities": true,
	"device_id": true, "expand": true, "from_json": true, "iif": true,
	"is_defined": true, "is_number": true, "log": true, "median": true,
	"multiply": true, "ord": true, "ordinal": true, "pack": true,
	"regex_findall": true, "regex_findall_index": true, "regex_match": true,
	"regex_replace": true, "regex_search": true, "relative_time": true,
	"sin": true, "slugify": true, "sqrt": true, "statistical_mode": true,
	"tan": true, "time_since": true, "time_until": true,
	"timestamp_custom": true, "timestamp_local": true, "timestamp_utc": true,
	"to_json": true, "typeof": true, "unpack": true, "version": true,
}

// jinjaTests is the union of Jinja2 built-in tests and Home Assistant's
// additions, used after `is` / `is not`.
var jinjaTests = map[string]bool{
	// Jinja2 built-ins
	"boolean": true, "callable": true, "defined": true, "divisibleby": true,
	"eq": true, "equalto": true, "escaped": true, "even": true,
	"false": true, "filter": true, "float": true, "ge": true, "gt": true,
	"greaterthan": true, "in": true, "integer": true, "iterable": true,
	"le": true, "lower": true, "lt": true, "lessthan": true,
	"mapping": true, "ne": true, "none": true, "number": true, "odd": true,
	"sameas": true, "sequence": true, "string": true, "test": true,
	"true": true, "undefined": true, "upper": true,

	// Home Assistant additions
	"contains": true, "datetime": true, "is_number": true, "list": true,
	"match": true, "search": true, "set": true,
}

// stateAliases maps display-language state words users commonly write to
// the canonical state string. Consulted before fuzzy matching, and only
// honored when the canonical value is actually in the entity's valid set.
var stateAliases = map[string]string{
	"away":     "not_home",
	"not home": "not_home",
	"open":     "on",
	"opened":   "on",
	"closed":   "off",
	"detected": "on",
	"clear":    "off",
	"true":     "on",
	"false":    "off",
}
