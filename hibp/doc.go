// Package hibp implements the k-anonymity range-query wire protocol of
// haveibeenpwned-compatible breach-frequency services.
//
// # Wire protocol
//
// One HTTP GET per lookup:
//
//	GET <base-url>/range/<5-hex-prefix>
//
// A 200 response body is a CRLF-or-LF-delimited list of
//
//	<35-hex-suffix>:<decimal-count>
//
// lines for every breached digest sharing the prefix. Counts are parsed
// defensively: non-digit noise is stripped, and an unparsable count defaults
// to 0 instead of failing the lookup. Any other status or transport failure
// is an error the caller maps to an "unavailable" outcome.
//
// # What this package must NOT do
//
//   - Hash passwords. Callers supply the digest; this package never sees
//     plaintext.
//   - Send more than the 5-character prefix on the wire.
//   - Panic on malformed response bodies.
package hibp
