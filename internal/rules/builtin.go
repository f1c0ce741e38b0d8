package rules

import "patrol/internal/model"

// Builtins returns the built-in rule catalogue. Group and rule order is
// load-bearing: reports present findings in exactly this order.
func Builtins() []Group {
	return []Group{
		{
			APIVersion: APIVersion,
			ID:         "exec",
			Name:       "Command and Code Execution",
			Source:     SourceBuiltin,
			Rules: []Rule{
				{
					ID:       "eval-call",
					Pattern:  `\beval\s*\(`,
					Message:  "eval() executes arbitrary code; remove it or replace with explicit dispatch",
					Severity: model.SeverityCritical,
				},
				{
					ID:       "shell-exec-family",
					Pattern:  `\b(system|exec|passthru|shell_exec|popen|proc_open)\s*\(`,
					Message:  "shell execution function; command injection risk if any argument is attacker-influenced",
					Severity: model.SeverityCritical,
				},
				{
					ID:       "backtick-exec",
					Pattern:  "`[^`]*\\$[A-Za-z_][^`]*`",
					Message:  "backtick operator executes its contents as a shell command",
					Severity: model.SeverityCritical,
				},
				{
					ID:       "assert-variable",
					Pattern:  `\bassert\s*\(\s*\$`,
					Message:  "assert() on a variable behaves like eval() in legacy PHP",
					Severity: model.SeverityCritical,
				},
				{
					ID:       "preg-replace-eval",
					Pattern:  `preg_replace\s*\(.{0,40}/e['"]`,
					Message:  "preg_replace with the /e modifier evaluates the replacement as code",
					Severity: model.SeverityCritical,
				},
				{
					ID:       "unserialize-request-input",
					Pattern:  `\bunserialize\s*\(.{0,40}\$_(GET|POST|REQUEST|COOKIE)`,
					Message:  "unserializing request input enables object injection",
					Severity: model.SeverityCritical,
				},
			},
		},
		{
			APIVersion: APIVersion,
			ID:         "injection",
			Name:       "Output and Query Injection",
			Source:     SourceBuiltin,
			Rules: []Rule{
				{
					ID:       "echo-request-input",
					Pattern:  `\b(echo|print)\b.{0,40}\$_(GET|POST|REQUEST|COOKIE)`,
					Message:  "echoing unescaped request input (XSS); escape with esc_html/esc_attr before output",
					Severity: model.SeverityCritical,
				},
				{
					ID:       "db-query-request-input",
					Pattern:  `\$wpdb->\w+\s*\(.{0,80}\$_(GET|POST|REQUEST|COOKIE)`,
					Message:  "database query built from user input; use $wpdb->prepare with placeholders",
					Severity: model.SeverityCritical,
				},
				{
					ID:       "raw-query-variable",
					Pattern:  `\$wpdb->query\s*\(\s*["']?[^)]*\$`,
					Message:  "raw query containing an unescaped variable; route it through $wpdb->prepare",
					Severity: model.SeverityWarning,
				},
				{
					ID:       "header-request-input",
					Pattern:  `\bheader\s*\(.{0,60}\$_(GET|POST|REQUEST|COOKIE)`,
					Message:  "response header built from request input (header injection / open redirect)",
					Severity: model.SeverityWarning,
				},
				{
					ID:       "innerhtml-assignment",
					Pattern:  `\.(innerHTML|outerHTML)\s*=`,
					Message:  "innerHTML assignment; prefer textContent or a sanitizer",
					Severity: model.SeverityWarning,
				},
				{
					ID:       "document-write",
					Pattern:  `document\.write\s*\(`,
					Message:  "document.write with dynamic content is an XSS sink",
					Severity: model.SeverityWarning,
				},
				{
					ID:       "react-dangerously-set",
					Pattern:  `dangerouslySetInnerHTML`,
					Message:  "dangerouslySetInnerHTML bypasses React escaping; verify the source is sanitized",
					Severity: model.SeverityReview,
				},
			},
		},
		{
			APIVersion: APIVersion,
			ID:         "request",
			Name:       "Request Handling",
			Source:     SourceBuiltin,
			Rules: []Rule{
				{
					ID:       "include-variable",
					Pattern:  `\b(include|require)(_once)?\s*\(?\s*\$`,
					Message:  "include/require from a variable path (local/remote file inclusion)",
					Severity: model.SeverityCritical,
				},
				{
					ID:       "extract-request-input",
					Pattern:  `\bextract\s*\(\s*\$_(GET|POST|REQUEST|COOKIE)`,
					Message:  "extract() on request input overwrites arbitrary variables",
					Severity: model.SeverityWarning,
				},
				{
					ID:       "file-op-request-input",
					Pattern:  `\b(fopen|file_get_contents|file_put_contents|readfile|unlink|copy|rename)\s*\(.{0,60}\$_(GET|POST|REQUEST|COOKIE)`,
					Message:  "filesystem operation on a request-supplied path (path traversal)",
					Severity: model.SeverityWarning,
				},
				{
					ID:       "move-uploaded-file",
					Pattern:  `\bmove_uploaded_file\s*\(`,
					Message:  "file upload handling; verify type, name, and destination are constrained",
					Severity: model.SeverityWarning,
				},
				{
					ID:       "request-input-usage",
					Pattern:  `\$_(GET|POST|REQUEST|COOKIE|FILES|SERVER)\b`,
					Message:  "request-input usage; confirm validation and sanitization at this boundary",
					Severity: model.SeverityReview,
				},
				{
					ID:       "base64-decode",
					Pattern:  `\bbase64_decode\s*\(`,
					Message:  "base64_decode often hides payloads; review what is being decoded",
					Severity: model.SeverityReview,
				},
			},
		},
		{
			APIVersion: APIVersion,
			ID:         "secrets",
			Name:       "Secrets and Transport",
			Source:     SourceBuiltin,
			Rules: []Rule{
				{
					ID:       "define-credential",
					Pattern:  `define\s*\(\s*['"][A-Z_]*(PASSWORD|SECRET|API_?KEY|TOKEN)`,
					Message:  "credential defined as a constant; move it out of version-controlled code",
					Severity: model.SeverityWarning,
				},
				{
					ID:       "credential-assignment",
					Pattern:  `\b(password|passwd|secret|api_?key|auth_?token)\b\s*(=|=>|:)\s*['"][^'"]{4,}`,
					Message:  "hardcoded credential assignment",
					Severity: model.SeverityWarning,
				},
				{
					ID:       "curl-ssl-verify-off",
					Pattern:  `CURLOPT_SSL_VERIFY(PEER|HOST)\s*,\s*(false|0)\b`,
					Message:  "TLS peer verification disabled for curl",
					Severity: model.SeverityWarning,
				},
				{
					ID:       "sslverify-false",
					Pattern:  `['"]?sslverify['"]?\s*=>\s*false`,
					Message:  "TLS verification disabled for a WordPress HTTP request",
					Severity: model.SeverityWarning,
				},
				{
					ID:       "basic-auth-url",
					Pattern:  `https?://[^/\s:@'"]+:[^@\s/'"]+@`,
					Message:  "credentials embedded in a URL",
					Severity: model.SeverityWarning,
				},
			},
		},
		{
			APIVersion: APIVersion,
			ID:         "hygiene",
			Name:       "Debug and Hygiene",
			Source:     SourceBuiltin,
			Rules: []Rule{
				{
					ID:       "debug-dump",
					Pattern:  `\b(var_dump|print_r|var_export)\s*\(`,
					Message:  "debug output call left in the change",
					Severity: model.SeverityReview,
				},
				{
					ID:       "error-display-toggle",
					Pattern:  `(display_errors|error_reporting\s*\(\s*0\s*\))`,
					Message:  "error display/reporting toggled in code; keep this in server config",
					Severity: model.SeverityReview,
				},
				{
					ID:       "wp-debug-enabled",
					Pattern:  `WP_DEBUG['"]?\s*,\s*true`,
					Message:  "WP_DEBUG enabled; must not ship to production",
					Severity: model.SeverityReview,
				},
				{
					ID:       "legacy-mysql-api",
					Pattern:  `\b(mysql_query|mysql_connect|mysql_real_escape_string|create_function)\s*\(`,
					Message:  "removed/deprecated PHP API; use wpdb or mysqli equivalents",
					Severity: model.SeverityReview,
				},
				{
					ID:       "console-log",
					Pattern:  `\bconsole\.(log|debug|trace)\s*\(`,
					Message:  "console logging left in the change",
					Severity: model.SeverityInfo,
				},
				{
					ID:       "alert-call",
					Pattern:  `\balert\s*\(`,
					Message:  "alert() left in the change",
					Severity: model.SeverityInfo,
				},
				{
					ID:       "todo-marker",
					Pattern:  `\b(TODO|FIXME|HACK|XXX)\b`,
					Message:  "unresolved work marker added",
					Severity: model.SeverityInfo,
				},
			},
		},
	}
}
