package goPassCheck

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// newMessagePrinter builds a locale-aware printer for count formatting.
// Unparsable tags degrade to English rather than failing engine construction
// paths that bypass Config.Validate (per-call locale overrides).
func newMessagePrinter(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// breachMessage maps a completed or short-circuited check outcome to the
// advisory text published alongside it. Unknown and checking are transient
// states and carry no message; only found carries a count.
func breachMessage(printer *message.Printer, status BreachStatus, count int) string {
	switch status {
	case StatusNotFound:
		return "Good news: this password was not found in any known data breach."
	case StatusFound:
		return printer.Sprintf("This password has appeared %d times in known data breaches. Choose a different one.", count)
	case StatusUnavailable:
		return "Breach check is unavailable right now. You can still use this password."
	case StatusError:
		return "Breach check could not be completed. You can still use this password."
	default:
		return ""
	}
}
