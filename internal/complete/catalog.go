package complete

// Static catalogs. The sandbox API surface is small and fixed; these lists
// are documentation strings, not live service bindings.

type namespace struct {
	prefix  string
	members []Suggestion
}

func method(name, params, detail string) Suggestion {
	return Suggestion{Text: name, Insert: name + params, Detail: detail, Kind: KindMethod}
}

var scriptNamespaces = []namespace{
	{
		prefix: "db.",
		members: []Suggestion{
			method("query", "(sql, params)", "run a SELECT, returns all rows"),
			method("queryOne", "(sql, params)", "run a SELECT, returns the first row or nil"),
			method("page", "(sql, params)", "run a SELECT with automatic paging"),
			method("exec", "(sql, params)", "run INSERT/UPDATE/DELETE, returns affected count"),
			method("insert", "(sql, params)", "run an INSERT, returns the new primary key"),
		},
	},
	{
		prefix: "http.",
		members: []Suggestion{
			method("get", "(url, headers)", "HTTP GET, returns the response body"),
			method("post", "(url, body, headers)", "HTTP POST with a JSON body"),
			method("put", "(url, body, headers)", "HTTP PUT with a JSON body"),
			method("delete", "(url, headers)", "HTTP DELETE"),
		},
	},
	{
		prefix: "cache.",
		members: []Suggestion{
			method("get", "(key)", "read a cached value, nil when missing"),
			method("set", "(key, value, ttlSeconds)", "store a value with a TTL"),
			method("del", "(key)", "evict a key"),
			method("has", "(key)", "report whether a key exists"),
		},
	},
	{
		prefix: "log.",
		members: []Suggestion{
			method("debug", "(msg)", "write a debug log line"),
			method("info", "(msg)", "write an info log line"),
			method("warn", "(msg)", "write a warning log line"),
			method("error", "(msg)", "write an error log line"),
		},
	},
	{
		prefix: "tx.",
		members: []Suggestion{
			method("run", "(fn)", "run fn inside a transaction, rolls back on error"),
			method("exec", "(sql, params)", "run a statement on the current transaction"),
			method("query", "(sql, params)", "run a SELECT on the current transaction"),
		},
	},
}

func global(name, detail string) Suggestion {
	return Suggestion{Text: name, Insert: name, Detail: detail, Kind: KindGlobal}
}

func snippet(name, insert, detail string) Suggestion {
	return Suggestion{Text: name, Insert: insert, Detail: detail, Kind: KindSnippet}
}

var scriptGlobals = []Suggestion{
	global("db", "database handle"),
	global("http", "outbound HTTP client"),
	global("cache", "shared key/value cache"),
	global("log", "request-scoped logger"),
	global("tx", "transaction handle"),
	global("params", "merged query and path parameters"),
	global("body", "parsed request body"),
	global("headers", "request headers"),
	global("result", "value produced by the content step"),
	snippet("let", "let x = ; ", "bind a local name"),
	snippet("rows-map", "map(result, .id)", "project a field from each row"),
	snippet("rows-filter", "filter(result, .active)", "keep matching rows"),
	snippet("guard", "params.id != nil ? db.queryOne(sql, params) : nil", "nil-guard a lookup"),
}

var sqlKeywordSuggestions = func() []Suggestion {
	words := []string{
		"SELECT", "INSERT", "UPDATE", "DELETE", "FROM", "WHERE", "AND", "OR",
		"NOT", "IN", "BETWEEN", "LIKE", "IS", "NULL", "JOIN", "LEFT", "RIGHT",
		"INNER", "OUTER", "ON", "AS", "GROUP", "BY", "ORDER", "HAVING",
		"LIMIT", "OFFSET", "DISTINCT", "UNION", "ALL", "EXISTS", "VALUES",
		"SET", "INTO", "CASE", "WHEN", "THEN", "ELSE", "END", "ASC", "DESC",
		"COUNT", "SUM", "AVG", "MIN", "MAX", "COALESCE", "CAST",
	}
	out := make([]Suggestion, len(words))
	for i, w := range words {
		out[i] = Suggestion{Text: w, Insert: w, Kind: KindKeyword}
	}
	return out
}()
